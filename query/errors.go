package query

import "fmt"

// InvalidOptionError reports a recognized construction option carrying a
// value of the wrong type or out of range.
type InvalidOptionError struct {
	Option string // option name, e.g. "limit"
	Value  any    // the rejected value
	Reason string // what the option requires
}

// Error implements the error interface
func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %q: %s (got %v)", e.Option, e.Reason, e.Value)
}

// UnresolvedReferenceError reports a name that does not map to a field or
// relationship on the model being queried.
type UnresolvedReferenceError struct {
	Model string // model the lookup ran against
	Name  string // the unresolved name
	Kind  string // "field" or "relationship"
}

// Error implements the error interface
func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("no %s %q on model %q", e.Kind, e.Name, e.Model)
}

// UnsupportedClauseError reports a condition key of a shape the builder
// does not recognize.
type UnsupportedClauseError struct {
	Clause any
}

// Error implements the error interface
func (e *UnsupportedClauseError) Error() string {
	return fmt.Sprintf("unsupported condition clause %v (%T)", e.Clause, e.Clause)
}

// IncompatibleMergeError reports an attempt to merge descriptors built for
// different repositories or models.
type IncompatibleMergeError struct {
	Attribute string // "repository" or "model"
	Ours      string
	Theirs    string
}

// Error implements the error interface
func (e *IncompatibleMergeError) Error() string {
	return fmt.Sprintf("cannot merge queries with different %ss: %q vs %q", e.Attribute, e.Ours, e.Theirs)
}
