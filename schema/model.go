package schema

// Model is an ordered collection of fields plus the relationships declared
// on it. It also exposes the model-level defaults the descriptor compares
// against when deciding whether an attribute was meaningfully set.
type Model struct {
	// Name identifies the model within its repository
	Name string

	fields     []*Field
	fieldIndex map[string]*Field

	relationships []*Relationship
	relIndex      map[string]*Relationship
}

// Field returns a field by name
func (m *Model) Field(name string) (*Field, bool) {
	f, ok := m.fieldIndex[name]
	return f, ok
}

// Fields returns all fields in declaration order
func (m *Model) Fields() []*Field {
	return m.fields
}

// Relationship returns a declared relationship by name
func (m *Model) Relationship(name string) (*Relationship, bool) {
	r, ok := m.relIndex[name]
	return r, ok
}

// Relationships returns all declared relationships in declaration order
func (m *Model) Relationships() []*Relationship {
	return m.relationships
}

// DefaultFields returns the model's default projection: every non-computed
// field, in declaration order. The returned slice is freshly allocated so
// callers may hold it without aliasing the model's internals.
func (m *Model) DefaultFields() []*Field {
	fields := make([]*Field, 0, len(m.fields))
	for _, f := range m.fields {
		if f.Computed {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// DefaultOrderFields returns the fields that make up the model's default
// ordering: the key fields, or the first non-computed field when no key is
// declared. Ordering sense (ascending) is applied by the descriptor.
func (m *Model) DefaultOrderFields() []*Field {
	var keys []*Field
	for _, f := range m.fields {
		if f.Key {
			keys = append(keys, f)
		}
	}
	if len(keys) > 0 {
		return keys
	}
	for _, f := range m.fields {
		if !f.Computed {
			return []*Field{f}
		}
	}
	return nil
}
