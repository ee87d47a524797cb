package query

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/byronanderson/dm-core/schema"
)

// Equal reports structural equality between two descriptors. Order, fields
// and links are position-sensitive sequences (sort order is semantically
// meaningful), while conditions compare as a set via a stable sort key:
// the order predicates were appended in does not change what they filter.
func (q *Query) Equal(other *Query) bool {
	if q == other {
		return true
	}
	if other == nil {
		return false
	}
	if q.model != other.model || q.repository.Name != other.repository.Name {
		return false
	}
	if q.reload != other.reload || q.unique != other.unique ||
		q.offset != other.offset || q.addReversed != other.addReversed {
		return false
	}
	if (q.limit == nil) != (other.limit == nil) {
		return false
	}
	if q.limit != nil && *q.limit != *other.limit {
		return false
	}
	if !directionsEqual(q.order, other.order) {
		return false
	}
	if !fieldsEqual(q.fields, other.fields) {
		return false
	}
	if !linksEqual(q.links, other.links) {
		return false
	}
	return conditionSetsEqual(q.conditions, other.conditions)
}

func directionsEqual(a, b []Direction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fieldsEqual(a, b []*schema.Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func linksEqual(a, b []*schema.Relationship) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// conditionSetsEqual compares condition sequences insensitive to insertion
// order: both sides are sorted by a stable key, then compared pairwise.
func conditionSetsEqual(a, b []Condition) bool {
	if len(a) != len(b) {
		return false
	}
	as := sortedConditions(a)
	bs := sortedConditions(b)
	for i := range as {
		if !conditionsEqual(as[i], bs[i]) {
			return false
		}
	}
	return true
}

func sortedConditions(conditions []Condition) []Condition {
	sorted := make([]Condition, len(conditions))
	copy(sorted, conditions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return conditionSortKey(sorted[i]) < conditionSortKey(sorted[j])
	})
	return sorted
}

// conditionSortKey is the stable key condition-set comparison sorts by
func conditionSortKey(c Condition) string {
	if c.IsRaw() {
		return fmt.Sprintf("raw|%s|%v", c.Raw, c.Bind)
	}
	return fmt.Sprintf("%s|%s|%s", c.Field, c.Operator, valueKey(c.Value))
}

func conditionsEqual(a, b Condition) bool {
	if a.Operator != b.Operator || a.Field != b.Field || a.Raw != b.Raw {
		return false
	}
	if !reflect.DeepEqual(a.Bind, b.Bind) {
		return false
	}
	return valuesEqual(a.Value, b.Value)
}

// valuesEqual compares condition values; nested descriptors (subquery
// values) compare structurally rather than by pointer graph.
func valuesEqual(a, b any) bool {
	if aq, ok := a.(*Query); ok {
		bq, ok := b.(*Query)
		return ok && aq.Equal(bq)
	}
	return reflect.DeepEqual(a, b)
}
