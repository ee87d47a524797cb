package query

// Operator identifies the comparison semantics of a condition, or the
// direction semantics of an order wrapper. The set is closed: dispatch
// sites switch over it exhaustively.
type Operator int

const (
	// Equal matches values exactly
	Equal Operator = iota
	// Not excludes a value or set of values
	Not
	// GreaterThan matches values above a lower bound
	GreaterThan
	// GreaterOrEqual matches values at or above a lower bound
	GreaterOrEqual
	// LessThan matches values below an upper bound
	LessThan
	// LessOrEqual matches values at or below an upper bound
	LessOrEqual
	// Like matches values against a pattern
	Like
	// In matches values contained in a set
	In
	// Raw marks an opaque passthrough fragment with attached bind values
	Raw
	// Ascending is an order-only operator selecting ascending sort
	Ascending
	// Descending is an order-only operator selecting descending sort
	Descending
)

// String returns the operator's slug
func (o Operator) String() string {
	switch o {
	case Equal:
		return "eq"
	case Not:
		return "not"
	case GreaterThan:
		return "gt"
	case GreaterOrEqual:
		return "gte"
	case LessThan:
		return "lt"
	case LessOrEqual:
		return "lte"
	case Like:
		return "like"
	case In:
		return "in"
	case Raw:
		return "raw"
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "unknown"
	}
}

// comparison reports whether the operator may appear in a condition triple
func (o Operator) comparison() bool {
	switch o {
	case Equal, Not, GreaterThan, GreaterOrEqual, LessThan, LessOrEqual, Like, In:
		return true
	default:
		return false
	}
}

// ordering reports whether the operator may appear in an order entry
func (o Operator) ordering() bool {
	return o == Ascending || o == Descending
}
