package query

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/byronanderson/dm-core/internal/validation"
)

// Deferred supplies a condition value on demand. A deferred value is
// evaluated exactly once, at the moment the condition is appended; the
// produced value is what gets stored and merged.
type Deferred interface {
	Value() any
}

// DeferredFunc adapts a plain function to the Deferred interface
type DeferredFunc func() any

// Value evaluates the function
func (f DeferredFunc) Value() any {
	return f()
}

// Range is a two-sided bound on a condition value. ExcludeEnd marks a
// half-open interval: Last itself is outside the range.
type Range struct {
	First      any
	Last       any
	ExcludeEnd bool
}

// String returns the range in interval notation
func (r Range) String() string {
	if r.ExcludeEnd {
		return fmt.Sprintf("[%v,%v)", r.First, r.Last)
	}
	return fmt.Sprintf("[%v,%v]", r.First, r.Last)
}

// compareValues orders two condition values. It reports ok=false when the
// values are of kinds that have no defined ordering relative to each other;
// merge resolution then falls back to its overwrite rule.
func compareValues(a, b any) (int, bool) {
	if at, aok := a.(time.Time); aok {
		bt, bok := b.(time.Time)
		if !bok {
			return 0, false
		}
		switch {
		case at.Before(bt):
			return -1, true
		case at.After(bt):
			return 1, true
		default:
			return 0, true
		}
	}

	if as, aok := a.(string); aok {
		bs, bok := b.(string)
		if !bok {
			return 0, false
		}
		switch {
		case as < bs:
			return -1, true
		case as > bs:
			return 1, true
		default:
			return 0, true
		}
	}

	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr != nil || berr != nil {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

// valueKey renders a value into a stable string usable as a sort or
// dedupe key. Type name is included so 1 and "1" stay distinct.
func valueKey(v any) string {
	return fmt.Sprintf("%T:%v", v, v)
}

// unionValues merges two in-set/not values into one slice, preserving first
// occurrence order and dropping duplicates. Scalar operands contribute a
// single element.
func unionValues(a, b any) []any {
	var out []any
	seen := make(map[string]struct{})

	add := func(v any) {
		key := valueKey(v)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}

	for _, operand := range []any{a, b} {
		if elems, ok := validation.Slice(operand); ok {
			for _, e := range elems {
				add(e)
			}
			continue
		}
		add(operand)
	}
	return out
}
