package stacker

import (
	"github.com/plus3/stackgames/internal/config"
	"github.com/shopspring/decimal"
)

// Difficulty scales the layer speed. It moves in fixed decimal steps so
// that three steps up from 1.0 land exactly on the 1.4 ceiling.
type Difficulty struct {
	value, min, max, step decimal.Decimal
}

func NewDifficulty(cfg config.Difficulty) Difficulty {
	floor := decimal.NewFromFloat(cfg.Min)
	return Difficulty{
		value: floor,
		min:   floor,
		max:   decimal.NewFromFloat(cfg.Max),
		step:  decimal.NewFromFloat(cfg.Step),
	}
}

// Value is the speed multiplier.
func (d Difficulty) Value() float64 {
	return d.value.InexactFloat64()
}

func (d *Difficulty) Harder() {
	d.value = decimal.Min(d.value.Add(d.step), d.max)
}

func (d *Difficulty) Easier() {
	d.value = decimal.Max(d.value.Sub(d.step), d.min)
}

// Label names the level: the floor is Easy, the ceiling Hard, anything
// between Medium.
func (d Difficulty) Label() string {
	switch {
	case d.value.Equal(d.min):
		return "Easy"
	case d.value.LessThan(d.max):
		return "Medium"
	default:
		return "Hard"
	}
}

func (d Difficulty) String() string {
	return d.value.StringFixed(1)
}
