package debugui

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
)

type fieldInfo struct {
	Name  string
	Index int
}

type reflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]fieldInfo
}

var fieldCache = &reflectionCache{fields: make(map[reflect.Type][]fieldInfo)}

// exported lists t's exported fields.
func (rc *reflectionCache) exported(t reflect.Type) []fieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.IsExported() {
			fields = append(fields, fieldInfo{Name: f.Name, Index: i})
		}
	}

	rc.mu.Lock()
	rc.fields[t] = fields
	rc.mu.Unlock()
	return fields
}

// Inspect draws v as a read-only tree of its exported fields. Values with
// a String method are shown through it.
func Inspect(name string, v any) {
	inspectValue(name, reflect.ValueOf(v), 0)
}

const maxInspectDepth = 4

func inspectValue(name string, val reflect.Value, depth int) {
	if !val.IsValid() {
		imgui.Text(name + ": <nil>")
		return
	}
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			imgui.Text(name + ": nil")
			return
		}
		val = val.Elem()
	}

	if val.CanInterface() {
		if s, ok := val.Interface().(fmt.Stringer); ok {
			imgui.Text(fmt.Sprintf("%s: %s", name, s))
			return
		}
	}

	switch val.Kind() {
	case reflect.Struct:
		if depth >= maxInspectDepth || !imgui.TreeNodeStr(name) {
			return
		}
		for _, f := range fieldCache.exported(val.Type()) {
			inspectValue(f.Name, val.Field(f.Index), depth+1)
		}
		imgui.TreePop()

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Float32, reflect.Float64:
		imgui.Text(fmt.Sprintf("%s: %.3f", name, val.Float()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		}
	}
}
