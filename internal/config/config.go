// Package config loads the tunables of both games from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Blocks  Blocks  `yaml:"blocks"`
	Stacker Stacker `yaml:"stacker"`
}

type Blocks struct {
	Rows         int           `yaml:"rows"`
	Cols         int           `yaml:"cols"`
	DropInterval time.Duration `yaml:"drop_interval"`
	// ClearLines removes full rows on lock. Off by default: the game
	// never cleared rows.
	ClearLines bool `yaml:"clear_lines"`
	// Seed for the piece bag; 0 picks one at random.
	Seed uint64 `yaml:"seed"`
}

type Stacker struct {
	BoxHeight      float64    `yaml:"box_height"`
	BoxSize        float64    `yaml:"box_size"`
	TravelBound    float64    `yaml:"travel_bound"`
	StartOffset    float64    `yaml:"start_offset"`
	BaseSpeed      float64    `yaml:"base_speed"` // units per millisecond
	CameraHeight   float64    `yaml:"camera_height"`
	Gravity        float64    `yaml:"gravity"`
	FragmentMass   float64    `yaml:"fragment_mass"`
	SolverSubsteps int        `yaml:"solver_substeps"`
	Difficulty     Difficulty `yaml:"difficulty"`
}

type Difficulty struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Default returns the values both games shipped with.
func Default() Config {
	return Config{
		Blocks: Blocks{
			Rows:         20,
			Cols:         25,
			DropInterval: time.Second,
		},
		Stacker: Stacker{
			BoxHeight:      0.5,
			BoxSize:        2.5,
			TravelBound:    10,
			StartOffset:    -10,
			BaseSpeed:      0.008,
			CameraHeight:   4,
			Gravity:        -10,
			FragmentMass:   5,
			SolverSubsteps: 4,
			Difficulty: Difficulty{
				Min:  1.0,
				Max:  1.4,
				Step: 0.2,
			},
		},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except an empty path yields Default.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	var errs []error
	b, s := c.Blocks, c.Stacker

	if b.Rows < 4 || b.Cols < 4 {
		errs = append(errs, fmt.Errorf("blocks: board must be at least 4x4, got %dx%d", b.Rows, b.Cols))
	}
	if b.DropInterval <= 0 {
		errs = append(errs, fmt.Errorf("blocks: drop_interval must be positive, got %s", b.DropInterval))
	}

	if s.BoxHeight <= 0 || s.BoxSize <= 0 {
		errs = append(errs, errors.New("stacker: box_height and box_size must be positive"))
	}
	if s.TravelBound <= 0 {
		errs = append(errs, errors.New("stacker: travel_bound must be positive"))
	}
	if s.BaseSpeed <= 0 {
		errs = append(errs, errors.New("stacker: base_speed must be positive"))
	}
	if s.FragmentMass <= 0 {
		errs = append(errs, errors.New("stacker: fragment_mass must be positive"))
	}
	if s.SolverSubsteps < 1 {
		errs = append(errs, errors.New("stacker: solver_substeps must be at least 1"))
	}
	if d := s.Difficulty; d.Min <= 0 || d.Max < d.Min || d.Step <= 0 {
		errs = append(errs, fmt.Errorf("stacker: difficulty range [%g, %g] step %g is invalid", d.Min, d.Max, d.Step))
	}

	return errors.Join(errs...)
}
