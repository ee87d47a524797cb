package query

import (
	"github.com/byronanderson/dm-core/schema"
)

// The normalizers retype raw order/fields/links entries into the canonical
// clause model. They never drop or reorder entries; already-canonical
// entries pass through unchanged.

// normalizeOrder converts a raw order sequence into Directions. Accepted
// entry shapes: Direction, *schema.Field, an Asc/Desc Comparison wrapper,
// or a field name.
func (q *Query) normalizeOrder(entries []any) ([]Direction, error) {
	order := make([]Direction, len(entries))
	for i, entry := range entries {
		switch e := entry.(type) {
		case Direction:
			order[i] = e
		case *schema.Field:
			order[i] = Direction{Field: e}
		case Comparison:
			if !e.Operator.ordering() {
				return nil, &UnsupportedClauseError{Clause: e}
			}
			field, err := q.resolveOrderTarget(e.Target)
			if err != nil {
				return nil, err
			}
			order[i] = Direction{Field: field, Descending: e.Operator == Descending}
		case string:
			field, ok := q.model.Field(e)
			if !ok {
				return nil, &UnresolvedReferenceError{Model: q.model.Name, Name: e, Kind: "field"}
			}
			order[i] = Direction{Field: field}
		default:
			return nil, &UnsupportedClauseError{Clause: entry}
		}
	}
	return order, nil
}

// resolveOrderTarget resolves an order wrapper's target to a field
func (q *Query) resolveOrderTarget(target any) (*schema.Field, error) {
	switch t := target.(type) {
	case *schema.Field:
		return t, nil
	case string:
		field, ok := q.model.Field(t)
		if !ok {
			return nil, &UnresolvedReferenceError{Model: q.model.Name, Name: t, Kind: "field"}
		}
		return field, nil
	default:
		return nil, &UnsupportedClauseError{Clause: target}
	}
}

// normalizeFields converts a raw projection sequence into fields. Accepted
// entry shapes: *schema.Field or a field name.
func (q *Query) normalizeFields(entries []any) ([]*schema.Field, error) {
	fields := make([]*schema.Field, len(entries))
	for i, entry := range entries {
		switch e := entry.(type) {
		case *schema.Field:
			fields[i] = e
		case string:
			field, ok := q.model.Field(e)
			if !ok {
				return nil, &UnresolvedReferenceError{Model: q.model.Name, Name: e, Kind: "field"}
			}
			fields[i] = field
		default:
			return nil, &UnsupportedClauseError{Clause: entry}
		}
	}
	return fields, nil
}

// normalizeLinks converts a raw join sequence into relationships. Accepted
// entry shapes: *schema.Relationship or a relationship name declared on the
// model.
func (q *Query) normalizeLinks(entries []any) ([]*schema.Relationship, error) {
	links := make([]*schema.Relationship, len(entries))
	for i, entry := range entries {
		switch e := entry.(type) {
		case *schema.Relationship:
			links[i] = e
		case string:
			rel, ok := q.model.Relationship(e)
			if !ok {
				return nil, &UnresolvedReferenceError{Model: q.model.Name, Name: e, Kind: "relationship"}
			}
			links[i] = rel
		default:
			return nil, &UnsupportedClauseError{Clause: entry}
		}
	}
	return links, nil
}
