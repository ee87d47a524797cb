// Package query provides a composable descriptor for read requests:
// filters, ordering, projected fields, join links and pagination, built
// from loosely-typed options and normalized into canonical typed clauses.
//
// A descriptor is constructed once and then either shared read-only
// (equality checks, bind-value extraction) or combined with another
// descriptor. Merge is the sharing-safe combinator: it works on a private
// clone and never mutates the receiver. Update mutates in place and must
// only be used on exclusively-owned descriptors.
//
// The descriptor stops at representation. Turning it into an actual fetch
// is the job of a downstream executor, which consumes Conditions, Order,
// Fields, Links and BindValues.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/byronanderson/dm-core/internal/validation"
	"github.com/byronanderson/dm-core/schema"
)

// Options is the loosely-typed construction input. Recognized keys
// (reload, unique, offset, limit, order, add_reversed, fields, links,
// conditions) configure the descriptor's attributes; any other key is
// shorthand for a condition on the field of that name (dotted keys cross
// relationships).
type Options map[string]any

// Conditions is the typed condition input: clause key to value. Keys may
// be *schema.Field, Comparison wrappers, or names (possibly dotted). Path
// clauses are not comparable and cannot be map keys; append them through
// AppendCondition instead.
type Conditions map[any]any

// Recognized option names.
const (
	optReload      = "reload"
	optUnique      = "unique"
	optOffset      = "offset"
	optLimit       = "limit"
	optOrder       = "order"
	optAddReversed = "add_reversed"
	optFields      = "fields"
	optLinks       = "links"
	optConditions  = "conditions"
)

var recognizedOptions = map[string]struct{}{
	optReload:      {},
	optUnique:      {},
	optOffset:      {},
	optLimit:       {},
	optOrder:       {},
	optAddReversed: {},
	optFields:      {},
	optLinks:       {},
	optConditions:  {},
}

// Query describes one read request against a repository model in full.
type Query struct {
	repository *schema.Repository
	model      *schema.Model

	reload      bool
	unique      bool
	offset      int
	limit       *int
	order       []Direction
	addReversed bool
	fields      []*schema.Field
	links       []*schema.Relationship
	conditions  []Condition
}

// New builds a descriptor for the given model from loosely-typed options.
// Recognized options are validated and assigned; every other key becomes a
// condition. Construction is atomic: any invalid option or unresolvable
// reference fails the whole call.
func New(repository *schema.Repository, model *schema.Model, options Options) (*Query, error) {
	if repository == nil {
		return nil, fmt.Errorf("repository must not be nil")
	}
	if model == nil {
		return nil, fmt.Errorf("model must not be nil")
	}

	q := &Query{
		repository: repository,
		model:      model,
		fields:     model.DefaultFields(),
		order:      defaultOrder(model),
	}

	if err := q.assign(options); err != nil {
		return nil, err
	}
	return q, nil
}

// assign validates and applies a full option set to a freshly-defaulted
// descriptor.
func (q *Query) assign(options Options) error {
	if v, ok := options[optReload]; ok {
		b, ok := validation.Bool(v)
		if !ok {
			return &InvalidOptionError{Option: optReload, Value: v, Reason: "must be a boolean"}
		}
		q.reload = b
	}
	if v, ok := options[optUnique]; ok {
		b, ok := validation.Bool(v)
		if !ok {
			return &InvalidOptionError{Option: optUnique, Value: v, Reason: "must be a boolean"}
		}
		q.unique = b
	}
	if v, ok := options[optAddReversed]; ok {
		b, ok := validation.Bool(v)
		if !ok {
			return &InvalidOptionError{Option: optAddReversed, Value: v, Reason: "must be a boolean"}
		}
		q.addReversed = b
	}
	if v, ok := options[optOffset]; ok {
		n, ok := validation.Int(v)
		if !ok || n < 0 {
			return &InvalidOptionError{Option: optOffset, Value: v, Reason: "must be a non-negative integer"}
		}
		q.offset = n
	}
	if v, ok := options[optLimit]; ok {
		n, ok := validation.Int(v)
		if !ok || n < 1 {
			return &InvalidOptionError{Option: optLimit, Value: v, Reason: "must be an integer >= 1"}
		}
		q.limit = &n
	}

	// fields before order: the empty-order rule depends on the effective
	// projection.
	if v, ok := options[optFields]; ok {
		entries, ok := validation.Slice(v)
		if !ok {
			return &InvalidOptionError{Option: optFields, Value: v, Reason: "must be a sequence"}
		}
		if len(entries) == 0 && !q.unique {
			return &InvalidOptionError{Option: optFields, Value: v, Reason: "must not be empty unless unique is true"}
		}
		fields, err := q.normalizeFields(entries)
		if err != nil {
			return err
		}
		q.fields = fields
	}
	if v, ok := options[optOrder]; ok {
		entries, ok := validation.Slice(v)
		if !ok {
			return &InvalidOptionError{Option: optOrder, Value: v, Reason: "must be a sequence"}
		}
		if len(entries) == 0 && hasNonComputed(q.fields) {
			return &InvalidOptionError{Option: optOrder, Value: v, Reason: "must not be empty while fields contains a non-computed field"}
		}
		order, err := q.normalizeOrder(entries)
		if err != nil {
			return err
		}
		q.order = order
	}
	if v, ok := options[optLinks]; ok {
		entries, ok := validation.Slice(v)
		if !ok {
			return &InvalidOptionError{Option: optLinks, Value: v, Reason: "must be a sequence"}
		}
		if len(entries) == 0 {
			return &InvalidOptionError{Option: optLinks, Value: v, Reason: "must not be empty when supplied"}
		}
		links, err := q.normalizeLinks(entries)
		if err != nil {
			return err
		}
		q.links = links
	}

	if v, ok := options[optConditions]; ok {
		if err := q.assignConditions(v); err != nil {
			return err
		}
	}

	// Remaining keys are shorthand conditions. Sorted so map iteration
	// cannot reorder the condition sequence between runs.
	var shorthand []string
	for key := range options {
		if _, recognized := recognizedOptions[key]; !recognized {
			shorthand = append(shorthand, key)
		}
	}
	sort.Strings(shorthand)
	for _, key := range shorthand {
		if err := q.AppendCondition(key, options[key]); err != nil {
			return err
		}
	}

	return nil
}

// defaultOrder is the model's default ordering: ascending over its key
// fields.
func defaultOrder(model *schema.Model) []Direction {
	fields := model.DefaultOrderFields()
	order := make([]Direction, len(fields))
	for i, f := range fields {
		order[i] = Direction{Field: f}
	}
	return order
}

func hasNonComputed(fields []*schema.Field) bool {
	for _, f := range fields {
		if !f.Computed {
			return true
		}
	}
	return false
}

// Repository returns the repository the descriptor was built against
func (q *Query) Repository() *schema.Repository { return q.repository }

// Model returns the model being queried
func (q *Query) Model() *schema.Model { return q.model }

// Reload reports whether results should overwrite cached identity state
func (q *Query) Reload() bool { return q.reload }

// Unique reports whether duplicate result rows are suppressed
func (q *Query) Unique() bool { return q.unique }

// Offset returns the number of results to skip
func (q *Query) Offset() int { return q.offset }

// Limit returns the result cap and whether one is set
func (q *Query) Limit() (int, bool) {
	if q.limit == nil {
		return 0, false
	}
	return *q.limit, true
}

// Order returns the sort directions
func (q *Query) Order() []Direction { return q.order }

// AddReversed reports whether the reverse-ordered complement is also
// fetched
func (q *Query) AddReversed() bool { return q.addReversed }

// Fields returns the projected fields
func (q *Query) Fields() []*schema.Field { return q.fields }

// Links returns the join path
func (q *Query) Links() []*schema.Relationship { return q.links }

// Conditions returns the filter predicates
func (q *Query) Conditions() []Condition { return q.conditions }

// Clone returns an independent descriptor. The condition sequence is
// deep-copied; the other clause collections are shared, since they are only
// ever replaced wholesale, never mutated in place.
func (q *Query) Clone() *Query {
	dup := *q
	if q.limit != nil {
		limit := *q.limit
		dup.limit = &limit
	}
	dup.conditions = make([]Condition, len(q.conditions))
	for i, c := range q.conditions {
		if c.Bind != nil {
			c.Bind = append([]any(nil), c.Bind...)
		}
		dup.conditions[i] = c
	}
	return &dup
}

// Reverse returns a clone whose order has every direction's sense flipped.
// Sequence order is preserved; reversal is element-wise and is its own
// inverse.
func (q *Query) Reverse() *Query {
	dup := q.Clone()
	order := make([]Direction, len(q.order))
	for i, d := range q.order {
		order[i] = d.Reversed()
	}
	dup.order = order
	return dup
}

// String returns a diagnostic enumeration of every attribute. The format
// is for logging only, not a stability contract.
func (q *Query) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "query(%s/%s", q.repository.Name, q.model.Name)
	fmt.Fprintf(&b, " reload=%t unique=%t offset=%d", q.reload, q.unique, q.offset)
	if q.limit != nil {
		fmt.Fprintf(&b, " limit=%d", *q.limit)
	} else {
		b.WriteString(" limit=none")
	}
	fmt.Fprintf(&b, " add_reversed=%t", q.addReversed)
	fmt.Fprintf(&b, " order=%v", q.order)
	fmt.Fprintf(&b, " fields=%v", q.fields)
	if len(q.links) > 0 {
		fmt.Fprintf(&b, " links=%v", q.links)
	}
	fmt.Fprintf(&b, " conditions=%v)", q.conditions)
	return b.String()
}
