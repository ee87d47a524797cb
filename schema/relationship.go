package schema

// Relationship describes a named traversal from one model to another.
// Relationships are resolved once when the repository is built; descriptor
// code compares them by pointer identity.
type Relationship struct {
	// Name is the identifier used to reference this relationship in
	// options and dotted condition paths
	Name string

	source *Model
	target *Model
}

// Source returns the model this relationship is declared on
func (r *Relationship) Source() *Model {
	return r.source
}

// Target returns the model this relationship traverses to
func (r *Relationship) Target() *Model {
	return r.target
}

// String returns the relationship's name for diagnostics
func (r *Relationship) String() string {
	return r.Name
}
