package task

import "reflect"

// ConditionSet is a DynamicValueList plus a derived aggregate boolean
// used as an execution gate.
//
// Conditions are diagnostic gates: every member always runs, with no
// short-circuit, so a single evaluation surfaces every failing condition
// at once.
type ConditionSet struct {
	DynamicValueList

	// Passed is the aggregate outcome. Defaults to true: a set with zero
	// conditions passes vacuously.
	Passed bool
}

// NewConditionSet creates an empty, vacuously passing set.
func NewConditionSet() *ConditionSet {
	return &ConditionSet{Passed: true}
}

// Evaluate runs every member in insertion order and derives Passed.
// A member counts against the set when it faulted or when its Result is
// falsy by host truthiness (nil, false, zero, empty).
func (s *ConditionSet) Evaluate(ctx *Context) {
	s.Passed = true
	for _, v := range s.values {
		v.Evaluate(ctx)
		if v.Error || !truthy(v.Result) {
			s.Passed = false
		}
	}
}

// truthy reports host truthiness for an evaluated result: nil, false,
// numeric zero, and empty strings/slices/maps are falsy; everything else
// is truthy.
func truthy(v interface{}) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() != 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}
