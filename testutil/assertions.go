package testutil

import (
	"reflect"
	"testing"

	"github.com/byronanderson/dm-core/query"
)

// AssertConditionCount checks that the descriptor holds the expected number
// of conditions
func AssertConditionCount(t *testing.T, q *query.Query, expected int) {
	t.Helper()
	if got := len(q.Conditions()); got != expected {
		t.Errorf("expected %d conditions, got %d: %v", expected, got, q.Conditions())
	}
}

// AssertHasCondition verifies the descriptor contains a condition with the
// given operator, field name and value
func AssertHasCondition(t *testing.T, q *query.Query, operator query.Operator, fieldName string, value any) {
	t.Helper()
	for _, c := range q.Conditions() {
		if c.IsRaw() {
			continue
		}
		if c.Operator == operator && c.Field.Name == fieldName && reflect.DeepEqual(c.Value, value) {
			return
		}
	}
	t.Errorf("condition (%s %s %v) not found in %v", fieldName, operator, value, q.Conditions())
}

// AssertBindValues verifies the descriptor's linearized bind values
func AssertBindValues(t *testing.T, q *query.Query, expected []any) {
	t.Helper()
	got := q.BindValues()
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected bind values %v, got %v", expected, got)
	}
}
