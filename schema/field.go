package schema

import "fmt"

// Kind identifies the primitive type a field holds
type Kind int

const (
	// String fields hold text values
	String Kind = iota
	// Integer fields hold whole numbers
	Integer
	// Float fields hold fractional numbers
	Float
	// Boolean fields hold true/false values
	Boolean
	// Time fields hold timestamps
	Time
)

// String returns the string representation of the Kind
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case Time:
		return "time"
	default:
		return "unknown"
	}
}

// kindNames maps config file spellings to kinds
var kindNames = map[string]Kind{
	"string":  String,
	"integer": Integer,
	"float":   Float,
	"boolean": Boolean,
	"time":    Time,
}

// KindFromName resolves a config file spelling (e.g. "integer") to a Kind
func KindFromName(name string) (Kind, bool) {
	k, ok := kindNames[name]
	return k, ok
}

// Field describes one column-like attribute of a model.
// Fields are resolved once when the repository is built; descriptor code
// compares them by pointer identity.
type Field struct {
	// Name is the identifier used to reference this field in options
	Name string

	// Kind is the primitive type of the field's values
	Kind Kind

	// Key marks the field as part of the model's natural ordering key
	Key bool

	// Computed marks a derived field: it is excluded from the model's
	// default projection and never participates in default ordering
	Computed bool

	// Dump, when set, transforms a condition value before it is stored on
	// the descriptor (the value-dump hook)
	Dump func(value any) any

	model *Model
}

// Model returns the model this field belongs to
func (f *Field) Model() *Model {
	return f.model
}

// String returns the qualified field name for diagnostics
func (f *Field) String() string {
	if f.model == nil {
		return f.Name
	}
	return fmt.Sprintf("%s.%s", f.model.Name, f.Name)
}
