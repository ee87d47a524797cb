package query

import "github.com/byronanderson/dm-core/schema"

// MergeSubquery flattens one level of nested-query representation: the
// condition exactly matching the (operator, field, nested) triple is
// removed and the nested descriptor's own conditions are spliced in at its
// position. Other conditions pass through unchanged; when no condition
// matches, the call is a no-op.
func (q *Query) MergeSubquery(operator Operator, field *schema.Field, nested *Query) {
	flattened := make([]Condition, 0, len(q.conditions))
	for _, c := range q.conditions {
		if c.Operator == operator && c.Field == field {
			if value, ok := c.Value.(*Query); ok && (value == nested || value.Equal(nested)) {
				flattened = append(flattened, nested.conditions...)
				continue
			}
		}
		flattened = append(flattened, c)
	}
	q.conditions = flattened
}
