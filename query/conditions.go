package query

import (
	"sort"
	"strings"

	"github.com/byronanderson/dm-core/internal/validation"
	"github.com/byronanderson/dm-core/schema"
)

// assignConditions applies the conditions option. A map is a set of clause
// key to value pairs, each appended through the builder; a sequence is an
// opaque passthrough fragment whose head is the fragment text and whose
// tail is its bind values.
func (q *Query) assignConditions(raw any) error {
	switch c := raw.(type) {
	case Conditions:
		if len(c) == 0 {
			return &InvalidOptionError{Option: optConditions, Value: raw, Reason: "must not be empty when supplied"}
		}
		// Sorted by rendered key so map iteration cannot reorder the
		// condition sequence between runs.
		type pair struct {
			key    string
			clause any
		}
		pairs := make([]pair, 0, len(c))
		for clause := range c {
			pairs = append(pairs, pair{key: clauseSortKey(clause), clause: clause})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
		for _, p := range pairs {
			if err := q.AppendCondition(p.clause, c[p.clause]); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		if len(c) == 0 {
			return &InvalidOptionError{Option: optConditions, Value: raw, Reason: "must not be empty when supplied"}
		}
		keys := make([]string, 0, len(c))
		for key := range c {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := q.AppendCondition(key, c[key]); err != nil {
				return err
			}
		}
		return nil
	default:
		elems, ok := validation.Slice(raw)
		if !ok {
			return &InvalidOptionError{Option: optConditions, Value: raw, Reason: "must be a map or a sequence"}
		}
		if len(elems) == 0 {
			return &InvalidOptionError{Option: optConditions, Value: raw, Reason: "must not be empty when supplied"}
		}
		text, ok := elems[0].(string)
		if !ok {
			return &InvalidOptionError{Option: optConditions, Value: raw, Reason: "sequence head must be a string fragment"}
		}
		q.conditions = append(q.conditions, Condition{
			Operator: Raw,
			Raw:      text,
			Bind:     append([]any(nil), elems[1:]...),
		})
		return nil
	}
}

// clauseSortKey renders a condition map key for deterministic iteration
func clauseSortKey(clause any) string {
	switch c := clause.(type) {
	case string:
		return c
	case *schema.Field:
		return c.String()
	case Path:
		return c.String()
	case Comparison:
		return clauseSortKey(c.Target) + " " + c.Operator.String()
	default:
		return valueKey(clause)
	}
}

// AppendCondition adds one canonical condition triple for the given clause
// key and value. Dispatch on the clause's shape, in priority order:
// resolved field, path, operator wrapper, bare name, dotted name. A "not"
// wrapper over an empty set is vacuously true and appends nothing.
func (q *Query) AppendCondition(clause, value any) error {
	operator := Equal

	if wrapper, ok := clause.(Comparison); ok {
		if !wrapper.Operator.comparison() {
			return &UnsupportedClauseError{Clause: wrapper}
		}
		operator = wrapper.Operator
		if operator == Not {
			if elems, ok := validation.Slice(value); ok && len(elems) == 0 {
				// not-in-empty-set filters nothing
				return nil
			}
		}
		clause = wrapper.Target
	}

	field, err := q.resolveClause(clause)
	if err != nil {
		return err
	}

	if deferred, ok := value.(Deferred); ok {
		value = deferred.Value()
	}
	if field.Dump != nil {
		value = field.Dump(value)
	}

	q.conditions = append(q.conditions, Condition{Operator: operator, Field: field, Value: value})
	return nil
}

// resolveClause resolves a condition key to its field, registering any
// relationships a path crosses as links.
func (q *Query) resolveClause(clause any) (*schema.Field, error) {
	switch c := clause.(type) {
	case *schema.Field:
		return c, nil
	case Path:
		for _, rel := range c.Relationships {
			q.addLink(rel)
		}
		return c.Field, nil
	case string:
		if strings.Contains(c, PathSeparator) {
			path, err := q.buildPath(c)
			if err != nil {
				return nil, err
			}
			return q.resolveClause(path)
		}
		field, ok := q.model.Field(c)
		if !ok {
			return nil, &UnresolvedReferenceError{Model: q.model.Name, Name: c, Kind: "field"}
		}
		return field, nil
	default:
		return nil, &UnsupportedClauseError{Clause: clause}
	}
}

// buildPath walks the relationship graph by the segments of a dotted name.
// Every segment but the last must be a relationship; the last must be a
// field on the model the walk ends at.
func (q *Query) buildPath(dotted string) (Path, error) {
	segments := strings.Split(dotted, PathSeparator)
	model := q.model
	relationships := make([]*schema.Relationship, 0, len(segments)-1)

	for _, segment := range segments[:len(segments)-1] {
		rel, ok := model.Relationship(segment)
		if !ok {
			return Path{}, &UnresolvedReferenceError{Model: model.Name, Name: segment, Kind: "relationship"}
		}
		relationships = append(relationships, rel)
		model = rel.Target()
	}

	last := segments[len(segments)-1]
	field, ok := model.Field(last)
	if !ok {
		return Path{}, &UnresolvedReferenceError{Model: model.Name, Name: last, Kind: "field"}
	}
	return Path{Relationships: relationships, Field: field}, nil
}

// addLink registers a relationship crossed by a path, once
func (q *Query) addLink(rel *schema.Relationship) {
	for _, existing := range q.links {
		if existing == rel {
			return
		}
	}
	q.links = append(q.links, rel)
}
