package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats summarises how often and how long systems ran.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// storageBinder is implemented by Query and Singleton.
type storageBinder interface {
	Init(storage *Storage)
}

// queryExecutor is implemented by Query only.
type queryExecutor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []queryExecutor
	stats   *systemStatsInternal
}

// Scheduler runs its systems in registration order against one Storage.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register binds the system's exported Query and Singleton fields to the
// scheduler's storage and appends it to the run order.
func (s *Scheduler) Register(system System) {
	entry := &registeredSystem{
		system: system,
		stats: &systemStatsInternal{
			name:        systemName(system),
			minDuration: time.Duration(1<<63 - 1),
		},
	}

	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() == reflect.Struct {
		for i := 0; i < value.NumField(); i++ {
			field := value.Field(i)
			if !field.CanSet() || field.Kind() != reflect.Struct {
				continue
			}

			binder, ok := field.Addr().Interface().(storageBinder)
			if !ok {
				continue
			}
			binder.Init(s.storage)

			if query, ok := binder.(queryExecutor); ok {
				entry.queries = append(entry.queries, query)
			}
		}
	}

	s.systems = append(s.systems, entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Once runs every system once with dt (seconds) and then flushes the
// frame's commands.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, entry := range s.systems {
		start := time.Now()
		for _, query := range entry.queries {
			query.Execute()
		}
		entry.system.Execute(frame)
		entry.stats.record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
}

func (st *systemStatsInternal) record(d time.Duration) {
	st.executionCount++
	st.lastDuration = d
	st.totalDuration += d
	st.minDuration = min(st.minDuration, d)
	st.maxDuration = max(st.maxDuration, d)
}

// Run calls Once every interval until ctx is done, passing the measured
// wall time since the previous frame.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats returns per-system timings in registration order.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		st := entry.stats
		var avg time.Duration
		if st.executionCount > 0 {
			avg = st.totalDuration / time.Duration(st.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           st.name,
			ExecutionCount: st.executionCount,
			MinDuration:    st.minDuration,
			MaxDuration:    st.maxDuration,
			AvgDuration:    avg,
			LastDuration:   st.lastDuration,
			TotalDuration:  st.totalDuration,
		}
		stats.TotalExecutions += st.executionCount
	}

	return stats
}
