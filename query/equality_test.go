package query_test

import (
	"testing"

	"github.com/byronanderson/dm-core/query"
	"github.com/byronanderson/dm-core/testutil"
)

func TestEqualIgnoresConditionInsertionOrder(t *testing.T) {
	fx := testutil.NewFixture(t)

	a := build(t, fx, fx.Article, query.Options{})
	if err := a.AppendCondition("title", "go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.AppendCondition(query.Gt("score"), 2.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := build(t, fx, fx.Article, query.Options{})
	if err := b.AppendCondition(query.Gt("score"), 2.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AppendCondition("title", "go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !a.Equal(b) || !b.Equal(a) {
		t.Errorf("conditions must compare as a set, not a sequence")
	}
}

func TestEqualIsPositionSensitiveForSequences(t *testing.T) {
	fx := testutil.NewFixture(t)

	tests := []struct {
		name string
		a    query.Options
		b    query.Options
	}{
		{
			name: "order sequence",
			a:    query.Options{"order": []any{"title", "score"}},
			b:    query.Options{"order": []any{"score", "title"}},
		},
		{
			name: "fields projection",
			a:    query.Options{"fields": []any{"id", "title"}},
			b:    query.Options{"fields": []any{"title", "id"}},
		},
		{
			name: "links sequence",
			a:    query.Options{"links": []any{"author", "comments"}},
			b:    query.Options{"links": []any{"comments", "author"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := build(t, fx, fx.Article, tt.a)
			b := build(t, fx, fx.Article, tt.b)
			if a.Equal(b) {
				t.Errorf("sequences are position-sensitive, queries must differ")
			}
		})
	}
}

func TestEqualAttributeDifferences(t *testing.T) {
	fx := testutil.NewFixture(t)
	base := query.Options{}

	tests := []struct {
		name  string
		other query.Options
	}{
		{name: "reload", other: query.Options{"reload": true}},
		{name: "unique", other: query.Options{"unique": true}},
		{name: "offset", other: query.Options{"offset": 1}},
		{name: "limit", other: query.Options{"limit": 1}},
		{name: "condition value", other: query.Options{"title": "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := build(t, fx, fx.Article, base)
			b := build(t, fx, fx.Article, tt.other)
			if a.Equal(b) {
				t.Errorf("queries differing in %s must not be equal", tt.name)
			}
		})
	}
}

func TestEqualNestedSubqueryValues(t *testing.T) {
	fx := testutil.NewFixture(t)

	nestedA := build(t, fx, fx.Article, query.Options{"title": "go"})
	nestedB := build(t, fx, fx.Article, query.Options{"title": "go"})

	a := build(t, fx, fx.Article, query.Options{})
	if err := a.AppendCondition(query.InOp("id"), nestedA); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := build(t, fx, fx.Article, query.Options{})
	if err := b.AppendCondition(query.InOp("id"), nestedB); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !a.Equal(b) {
		t.Errorf("distinct but structurally equal nested queries must compare equal")
	}

	nestedC := build(t, fx, fx.Article, query.Options{"title": "rust"})
	c := build(t, fx, fx.Article, query.Options{})
	if err := c.AppendCondition(query.InOp("id"), nestedC); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Equal(c) {
		t.Errorf("differing nested queries must not compare equal")
	}
}

func TestEqualNilAndSelf(t *testing.T) {
	fx := testutil.NewFixture(t)

	q := build(t, fx, fx.Article, query.Options{})
	if !q.Equal(q) {
		t.Errorf("a query must equal itself")
	}
	if q.Equal(nil) {
		t.Errorf("a query must not equal nil")
	}
}
