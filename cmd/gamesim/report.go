package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/plus3/stackgames/ecs"
)

type Report struct {
	// Configuration
	Duration    time.Duration
	BlocksBots  int
	StackerBots int

	// Results
	TotalTime      time.Duration
	FrameTime      Stats
	Tally          Tally
	Systems        []ecs.SystemStats
	Entities       int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Game Simulation Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Blocks Bots:** {{.BlocksBots}}
- **Stacker Bots:** {{.StackerBots}}

## Frames
- **Frames:** {{comma .Tally.Frames}} in {{.TotalTime}}
- **Frame Time:** avg {{.FrameTime.Avg}}, min {{.FrameTime.Min}}, max {{.FrameTime.Max}}
- **Live Entities:** {{.Entities}}

| System | Runs | Avg | Max |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{comma .ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Blocks
- **Games Played:** {{.Tally.BlocksGames}}
- **Pieces Locked:** {{comma .Tally.PiecesLocked}}

## Stacker
- **Games Played:** {{.Tally.TowerGames}}
- **Placements:** {{comma .Tally.Placements}}
- **Fragments Dropped:** {{comma .Tally.Fragments}}
- **Best Tower:** {{.Tally.BestTower}}

## Memory
- Heap Alloc:  {{bytes .MemStatsStart.HeapAlloc}} -> {{bytes .MemStatsEnd.HeapAlloc}}
- Total Alloc: {{bytes (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} during the run
- Sys Memory:  {{bytes .MemStatsStart.Sys}} -> {{bytes .MemStatsEnd.Sys}}
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

var reportFuncs = template.FuncMap{
	"comma": func(v any) string {
		switch val := v.(type) {
		case int:
			return humanize.Comma(int64(val))
		case int64:
			return humanize.Comma(val)
		default:
			return "N/A"
		}
	},
	"bytes": humanize.Bytes,
	"bsub": func(a, b uint64) uint64 {
		if a < b {
			return 0
		}
		return a - b
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
