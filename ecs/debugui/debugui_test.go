package debugui

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceStatsAverage(t *testing.T) {
	ps := NewPerformanceStats(4)

	assert.InDelta(t, 2.5, ps.record(0.010), 1e-4)
	assert.InDelta(t, 7.5, ps.record(0.020), 1e-4)

	for range 4 {
		ps.record(0.016)
	}
	assert.InDelta(t, 16, ps.record(0.016), 1e-4)
	assert.Equal(t, 3, ps.frameIndex)
}

func TestReflectionCacheSkipsUnexported(t *testing.T) {
	type sample struct {
		Score  int
		hidden bool
		Label  string
	}

	fields := fieldCache.exported(reflect.TypeFor[sample]())
	assert.Equal(t, []fieldInfo{{Name: "Score", Index: 0}, {Name: "Label", Index: 2}}, fields)

	again := fieldCache.exported(reflect.TypeFor[sample]())
	assert.Equal(t, fields, again)
}
