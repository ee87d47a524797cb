package query

import (
	"fmt"
	"strings"

	"github.com/byronanderson/dm-core/schema"
)

// Direction is one sort key with its ascending/descending sense
type Direction struct {
	Field      *schema.Field
	Descending bool
}

// Reversed returns the direction with its sense flipped
func (d Direction) Reversed() Direction {
	return Direction{Field: d.Field, Descending: !d.Descending}
}

// String returns the direction in "field asc|desc" form
func (d Direction) String() string {
	sense := "asc"
	if d.Descending {
		sense = "desc"
	}
	return fmt.Sprintf("%s %s", d.Field, sense)
}

// Comparison wraps a clause target with an explicit operator. The target is
// a *schema.Field, a Path, or a name (possibly dotted) to be resolved when
// the wrapper is normalized or appended.
type Comparison struct {
	Operator Operator
	Target   any
}

// Convenience constructors for the operator wrappers that appear in
// condition maps and order sequences.

// Eq wraps a target with the equality operator
func Eq(target any) Comparison { return Comparison{Operator: Equal, Target: target} }

// Neq wraps a target with the not operator
func Neq(target any) Comparison { return Comparison{Operator: Not, Target: target} }

// Gt wraps a target with the greater-than operator
func Gt(target any) Comparison { return Comparison{Operator: GreaterThan, Target: target} }

// Gte wraps a target with the greater-or-equal operator
func Gte(target any) Comparison { return Comparison{Operator: GreaterOrEqual, Target: target} }

// Lt wraps a target with the less-than operator
func Lt(target any) Comparison { return Comparison{Operator: LessThan, Target: target} }

// Lte wraps a target with the less-or-equal operator
func Lte(target any) Comparison { return Comparison{Operator: LessOrEqual, Target: target} }

// LikeOp wraps a target with the like operator
func LikeOp(target any) Comparison { return Comparison{Operator: Like, Target: target} }

// InOp wraps a target with the in-set operator
func InOp(target any) Comparison { return Comparison{Operator: In, Target: target} }

// Asc wraps an order target with ascending sense
func Asc(target any) Comparison { return Comparison{Operator: Ascending, Target: target} }

// Desc wraps an order target with descending sense
func Desc(target any) Comparison { return Comparison{Operator: Descending, Target: target} }

// PathSeparator splits the segments of a dotted condition key
const PathSeparator = "."

// Path is a chain of relationship traversals ending at a field. Appending a
// condition through a path registers the crossed relationships as links on
// the descriptor.
type Path struct {
	Relationships []*schema.Relationship
	Field         *schema.Field
}

// String returns the dotted form of the path
func (p Path) String() string {
	segments := make([]string, 0, len(p.Relationships)+1)
	for _, rel := range p.Relationships {
		segments = append(segments, rel.Name)
	}
	if p.Field != nil {
		segments = append(segments, p.Field.Name)
	}
	return strings.Join(segments, PathSeparator)
}

// Condition is one filter predicate. Non-raw conditions are an (operator,
// field, value) triple; raw conditions carry an opaque fragment plus its
// bind values and never participate in conflict resolution.
type Condition struct {
	Operator Operator
	Field    *schema.Field
	Value    any

	// Raw and Bind are set only when Operator == Raw
	Raw  string
	Bind []any
}

// IsRaw reports whether the condition is an opaque passthrough fragment
func (c Condition) IsRaw() bool {
	return c.Operator == Raw
}

// String returns the condition in diagnostic form
func (c Condition) String() string {
	if c.IsRaw() {
		if len(c.Bind) == 0 {
			return fmt.Sprintf("raw(%q)", c.Raw)
		}
		return fmt.Sprintf("raw(%q, %v)", c.Raw, c.Bind)
	}
	return fmt.Sprintf("%s %s %v", c.Field, c.Operator, c.Value)
}
