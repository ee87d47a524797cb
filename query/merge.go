package query

import (
	"github.com/byronanderson/dm-core/internal/validation"
	"github.com/byronanderson/dm-core/schema"
)

// Update merges another descriptor (or a raw option set, converted first)
// into the receiver, in place. Each attribute is adopted only when the
// other descriptor's value differs from that attribute's default; the
// condition sequences are always combined via conflict resolution, never
// replaced wholesale.
//
// Note that an attribute explicitly set to its default value on the other
// descriptor is indistinguishable from one never set, and will not be
// adopted. Both descriptors must share the receiver's repository and model.
//
// Errors are detected before any mutation: a failed Update leaves the
// receiver untouched.
func (q *Query) Update(other any) (*Query, error) {
	oq, err := q.coerce(other)
	if err != nil {
		return nil, err
	}
	if oq.repository.Name != q.repository.Name {
		return nil, &IncompatibleMergeError{Attribute: "repository", Ours: q.repository.Name, Theirs: oq.repository.Name}
	}
	if oq.model != q.model {
		return nil, &IncompatibleMergeError{Attribute: "model", Ours: q.model.Name, Theirs: oq.model.Name}
	}

	if oq.reload {
		q.reload = true
	}
	if oq.unique {
		q.unique = true
	}
	if oq.addReversed {
		q.addReversed = true
	}
	if oq.reload || oq.offset != 0 {
		q.offset = oq.offset
	}
	if oq.limit != nil {
		limit := *oq.limit
		q.limit = &limit
	}
	if !directionsEqual(oq.order, defaultOrder(q.model)) {
		q.order = oq.order
	}
	if !fieldsEqual(oq.fields, q.model.DefaultFields()) {
		q.fields = oq.fields
	}
	if len(oq.links) > 0 {
		q.links = oq.links
	}
	q.conditions = mergeConditions(q.conditions, oq.conditions)

	return q, nil
}

// Merge combines the receiver with another descriptor (or raw option set)
// on a clone, leaving the receiver untouched. This is the combinator to use
// on descriptors that may be read concurrently.
func (q *Query) Merge(other any) (*Query, error) {
	return q.Clone().Update(other)
}

// coerce accepts a *Query or an Options map, building a descriptor from the
// latter in the receiver's schema context.
func (q *Query) coerce(other any) (*Query, error) {
	switch o := other.(type) {
	case *Query:
		return o, nil
	case Options:
		return New(q.repository, q.model, o)
	case map[string]any:
		return New(q.repository, q.model, Options(o))
	default:
		return nil, &InvalidOptionError{Option: "other", Value: other, Reason: "must be a query or an options map"}
	}
}

// conditionKey identifies the conflict-resolution slot of a non-raw
// condition.
type conditionKey struct {
	operator Operator
	field    *schema.Field
}

// mergeConditions combines two condition sequences. Conditions sharing an
// (operator, field) slot are resolved in place by operator-specific policy;
// raw conditions never conflict and new conditions are appended at the end.
func mergeConditions(ours, theirs []Condition) []Condition {
	merged := make([]Condition, len(ours))
	copy(merged, ours)

	index := make(map[conditionKey]int, len(merged))
	for i, c := range merged {
		if c.IsRaw() {
			continue
		}
		index[conditionKey{c.Operator, c.Field}] = i
	}

	for _, c := range theirs {
		if c.IsRaw() {
			merged = append(merged, c)
			continue
		}
		key := conditionKey{c.Operator, c.Field}
		i, found := index[key]
		if !found {
			index[key] = len(merged)
			merged = append(merged, c)
			continue
		}
		merged[i].Value = resolveConflict(c.Operator, merged[i].Value, c.Value)
	}
	return merged
}

// resolveConflict picks the surviving value for two conditions on the same
// (operator, field) slot:
//
//   - eq, like: theirs wins
//   - gt, gte: the minimum (the more permissive lower bound)
//   - lt, lte: the maximum (the more permissive upper bound)
//   - not, in: set union when either side is a set, otherwise theirs wins
//
// Values with no defined ordering fall back to theirs-wins rather than
// guessing a bound.
func resolveConflict(operator Operator, ours, theirs any) any {
	if valuesEqual(ours, theirs) {
		return ours
	}
	switch operator {
	case GreaterThan, GreaterOrEqual:
		if r, ok := compareValues(theirs, ours); ok && r > 0 {
			return ours
		}
		return theirs
	case LessThan, LessOrEqual:
		if r, ok := compareValues(theirs, ours); ok && r < 0 {
			return ours
		}
		return theirs
	case Not, In:
		if isSet(ours) || isSet(theirs) {
			return unionValues(ours, theirs)
		}
		return theirs
	default:
		// eq, like
		return theirs
	}
}

func isSet(v any) bool {
	_, ok := validation.Slice(v)
	return ok
}
