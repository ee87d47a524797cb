package query_test

import (
	"testing"

	"github.com/byronanderson/dm-core/query"
	"github.com/byronanderson/dm-core/testutil"
)

func TestBindValues(t *testing.T) {
	fx := testutil.NewFixture(t)

	t.Run("scalar values in condition order", func(t *testing.T) {
		q := build(t, fx, fx.Article, query.Options{})
		if err := q.AppendCondition("title", "go"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := q.AppendCondition(query.Gt("score"), 2.0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertBindValues(t, q, []any{"go", 2.0})
	})

	t.Run("half-open range under equality expands", func(t *testing.T) {
		q := build(t, fx, fx.Article, query.Options{})
		if err := q.AppendCondition("id", query.Range{First: 1, Last: 5, ExcludeEnd: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertBindValues(t, q, []any{1, 4})
	})

	t.Run("half-open range under not expands", func(t *testing.T) {
		q := build(t, fx, fx.Article, query.Options{})
		if err := q.AppendCondition(query.Neq("id"), query.Range{First: 10, Last: 20, ExcludeEnd: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertBindValues(t, q, []any{10, 19})
	})

	t.Run("inclusive range passes through", func(t *testing.T) {
		q := build(t, fx, fx.Article, query.Options{})
		r := query.Range{First: 1, Last: 5}
		if err := q.AppendCondition("id", r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertBindValues(t, q, []any{r})
	})

	t.Run("range under other operators passes through", func(t *testing.T) {
		q := build(t, fx, fx.Article, query.Options{})
		r := query.Range{First: 1, Last: 5, ExcludeEnd: true}
		if err := q.AppendCondition(query.InOp("id"), r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertBindValues(t, q, []any{r})
	})

	t.Run("raw binds contribute verbatim", func(t *testing.T) {
		q := build(t, fx, fx.Article, query.Options{
			"conditions": []any{"score > ? AND title = ?", 1.5, "go"},
		})
		if err := q.AppendCondition("id", 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertBindValues(t, q, []any{1.5, "go", 7})
	})

	t.Run("no conditions yields no values", func(t *testing.T) {
		q := build(t, fx, fx.Article, query.Options{})
		testutil.AssertBindValues(t, q, nil)
	})
}
