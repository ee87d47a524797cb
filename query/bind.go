package query

// BindValues linearizes the descriptor's condition values in the order the
// executor binds them. A half-open range under an equality or not operator
// expands into its two effective endpoints, since the executor translates
// such a filter into a two-sided bound; raw conditions contribute their
// attached bind values verbatim.
func (q *Query) BindValues() []any {
	var values []any
	for _, c := range q.conditions {
		if c.IsRaw() {
			values = append(values, c.Bind...)
			continue
		}
		if r, ok := c.Value.(Range); ok && r.ExcludeEnd && (c.Operator == Equal || c.Operator == Not) {
			values = append(values, r.First, lastIncluded(r.Last))
			continue
		}
		values = append(values, c.Value)
	}
	return values
}

// lastIncluded converts a half-open range's excluded endpoint into the last
// value inside the range. Only integer endpoints are discrete enough to
// step back; any other kind passes through for the executor to translate.
func lastIncluded(v any) any {
	switch n := v.(type) {
	case int:
		return n - 1
	case int8:
		return n - 1
	case int16:
		return n - 1
	case int32:
		return n - 1
	case int64:
		return n - 1
	case uint:
		if n == 0 {
			return n
		}
		return n - 1
	case uint8:
		if n == 0 {
			return n
		}
		return n - 1
	case uint16:
		if n == 0 {
			return n
		}
		return n - 1
	case uint32:
		if n == 0 {
			return n
		}
		return n - 1
	case uint64:
		if n == 0 {
			return n
		}
		return n - 1
	default:
		return v
	}
}
