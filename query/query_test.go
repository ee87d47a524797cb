package query_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/byronanderson/dm-core/query"
	"github.com/byronanderson/dm-core/testutil"
)

func TestNewDefaults(t *testing.T) {
	fx := testutil.NewFixture(t)

	q, err := query.New(fx.Repository, fx.Article, query.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Reload() || q.Unique() || q.AddReversed() {
		t.Errorf("boolean flags should default to false")
	}
	if q.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", q.Offset())
	}
	if _, set := q.Limit(); set {
		t.Errorf("limit should default to unset")
	}
	if len(q.Links()) != 0 {
		t.Errorf("links should default to empty, got %v", q.Links())
	}

	// Default projection excludes computed fields.
	for _, f := range q.Fields() {
		if f.Computed {
			t.Errorf("computed field %s in default projection", f)
		}
	}
	if len(q.Fields()) != 5 {
		t.Errorf("expected 5 default fields, got %d", len(q.Fields()))
	}

	// Default order is ascending over the key fields.
	if len(q.Order()) != 1 {
		t.Fatalf("expected 1 default order entry, got %d", len(q.Order()))
	}
	if q.Order()[0].Field.Name != "id" || q.Order()[0].Descending {
		t.Errorf("expected ascending id default order, got %v", q.Order()[0])
	}
}

func TestNewValidation(t *testing.T) {
	fx := testutil.NewFixture(t)

	tests := []struct {
		name    string
		options query.Options
		wantErr bool
	}{
		{
			name:    "valid full option set",
			options: query.Options{"reload": true, "unique": true, "offset": 2, "limit": 10},
			wantErr: false,
		},
		{
			name:    "non-boolean reload",
			options: query.Options{"reload": "yes"},
			wantErr: true,
		},
		{
			name:    "non-boolean unique",
			options: query.Options{"unique": 1},
			wantErr: true,
		},
		{
			name:    "negative offset",
			options: query.Options{"offset": -1},
			wantErr: true,
		},
		{
			name:    "offset as string",
			options: query.Options{"offset": "3"},
			wantErr: true,
		},
		{
			name:    "zero limit",
			options: query.Options{"limit": 0},
			wantErr: true,
		},
		{
			name:    "limit as float",
			options: query.Options{"limit": 1.5},
			wantErr: true,
		},
		{
			name:    "empty fields with default unique",
			options: query.Options{"fields": []any{}},
			wantErr: true,
		},
		{
			name:    "empty fields with unique true",
			options: query.Options{"unique": true, "fields": []any{}, "order": []any{}},
			wantErr: false,
		},
		{
			name:    "empty order with non-computed fields",
			options: query.Options{"order": []any{}},
			wantErr: true,
		},
		{
			name:    "empty links",
			options: query.Options{"links": []any{}},
			wantErr: true,
		},
		{
			name:    "empty conditions map",
			options: query.Options{"conditions": query.Conditions{}},
			wantErr: true,
		},
		{
			name:    "conditions of wrong type",
			options: query.Options{"conditions": 42},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := query.New(fx.Repository, fx.Article, tt.options)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil {
				var invalid *query.InvalidOptionError
				if !errors.As(err, &invalid) {
					t.Errorf("expected InvalidOptionError, got %T: %v", err, err)
				}
			}
		})
	}
}

func TestShorthandConditionKeys(t *testing.T) {
	fx := testutil.NewFixture(t)

	q, err := query.New(fx.Repository, fx.Article, query.Options{
		"title": "go generics",
		"limit": 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertConditionCount(t, q, 1)
	testutil.AssertHasCondition(t, q, query.Equal, "title", "go generics")
	if limit, set := q.Limit(); !set || limit != 5 {
		t.Errorf("recognized option limit should not become a condition")
	}
}

func TestCloneIndependence(t *testing.T) {
	fx := testutil.NewFixture(t)

	q, err := query.New(fx.Repository, fx.Article, query.Options{
		"conditions": query.Conditions{"title": "original"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := q.Clone()
	if !q.Equal(dup) {
		t.Fatalf("clone should be equal to the original")
	}

	if err := dup.AppendCondition("score", 4.2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertConditionCount(t, q, 1)
	testutil.AssertConditionCount(t, dup, 2)
}

func TestReverseIsItsOwnInverse(t *testing.T) {
	fx := testutil.NewFixture(t)

	q, err := query.New(fx.Repository, fx.Article, query.Options{
		"order": []any{"title", query.Desc("published_on")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reversed := q.Reverse()
	if len(reversed.Order()) != 2 {
		t.Fatalf("reversal must preserve sequence length")
	}
	if !reversed.Order()[0].Descending || reversed.Order()[1].Descending {
		t.Errorf("reversal must flip each direction: %v", reversed.Order())
	}
	if reversed.Order()[0].Field.Name != "title" {
		t.Errorf("reversal must not reorder the sequence")
	}

	again := reversed.Reverse()
	for i, d := range again.Order() {
		if d != q.Order()[i] {
			t.Errorf("double reversal changed order[%d]: %v != %v", i, d, q.Order()[i])
		}
	}
}

func TestStringEnumeratesAttributes(t *testing.T) {
	fx := testutil.NewFixture(t)

	q, err := query.New(fx.Repository, fx.Article, query.Options{
		"unique": true,
		"limit":  3,
		"conditions": query.Conditions{
			query.Gt("score"): 1.5,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := q.String()
	for _, want := range []string{"article", "unique=true", "limit=3", "score gt 1.5"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
