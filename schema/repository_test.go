package schema

import (
	"strings"
	"testing"
)

func testConfig() Config {
	return Config{
		Repository: "default",
		Models: []ModelConfig{
			{
				Name: "article",
				Fields: []FieldConfig{
					{Name: "id", Kind: "integer", Key: true},
					{Name: "title"},
					{Name: "score", Kind: "float"},
					{Name: "rating", Kind: "float", Computed: true},
				},
				Relationships: []RelationshipConfig{
					{Name: "author", Target: "author"},
				},
			},
			{
				Name: "author",
				Fields: []FieldConfig{
					{Name: "id", Kind: "integer", Key: true},
					{Name: "name"},
				},
				Relationships: []RelationshipConfig{
					{Name: "articles", Target: "article"},
				},
			},
		},
	}
}

func TestNewRepository(t *testing.T) {
	repo, err := NewRepository(testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Name != "default" {
		t.Errorf("expected repository name %q, got %q", "default", repo.Name)
	}
	if len(repo.Models()) != 2 {
		t.Fatalf("expected 2 models, got %d", len(repo.Models()))
	}

	article, ok := repo.Model("article")
	if !ok {
		t.Fatal("article model not found")
	}

	title, ok := article.Field("title")
	if !ok {
		t.Fatal("title field not found")
	}
	if title.Kind != String {
		t.Errorf("kind should default to string, got %s", title.Kind)
	}
	if title.Model() != article {
		t.Errorf("field should know its model")
	}

	// Relationship targets resolve regardless of declaration order.
	author, ok := article.Relationship("author")
	if !ok {
		t.Fatal("author relationship not found")
	}
	if author.Source() != article || author.Target().Name != "author" {
		t.Errorf("relationship endpoints wrong: %s", author)
	}
}

func TestNewRepositoryValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty repository name",
			mutate:  func(c *Config) { c.Repository = "" },
			wantErr: "repository name",
		},
		{
			name:    "empty model name",
			mutate:  func(c *Config) { c.Models[0].Name = "" },
			wantErr: "model name",
		},
		{
			name:    "duplicate model",
			mutate:  func(c *Config) { c.Models[1].Name = "article" },
			wantErr: "duplicate model",
		},
		{
			name:    "model without fields",
			mutate:  func(c *Config) { c.Models[0].Fields = nil },
			wantErr: "no fields",
		},
		{
			name:    "duplicate field",
			mutate:  func(c *Config) { c.Models[0].Fields[1].Name = "id" },
			wantErr: "duplicate field",
		},
		{
			name:    "unknown kind",
			mutate:  func(c *Config) { c.Models[0].Fields[1].Kind = "decimal" },
			wantErr: "unknown kind",
		},
		{
			name:    "duplicate relationship",
			mutate:  func(c *Config) { c.Models[0].Relationships = append(c.Models[0].Relationships, RelationshipConfig{Name: "author", Target: "author"}) },
			wantErr: "duplicate relationship",
		},
		{
			name:    "unknown relationship target",
			mutate:  func(c *Config) { c.Models[0].Relationships[0].Target = "missing" },
			wantErr: "unknown model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.mutate(&config)
			_, err := NewRepository(config)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestModelDefaults(t *testing.T) {
	repo, err := NewRepository(testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	article, _ := repo.Model("article")

	fields := article.DefaultFields()
	if len(fields) != 3 {
		t.Fatalf("computed fields must be excluded from the default projection, got %d", len(fields))
	}
	for _, f := range fields {
		if f.Computed {
			t.Errorf("computed field %s in default projection", f)
		}
	}

	// Each call returns a fresh slice.
	fields[0] = nil
	if article.DefaultFields()[0] == nil {
		t.Errorf("DefaultFields must not alias the model's internals")
	}

	order := article.DefaultOrderFields()
	if len(order) != 1 || order[0].Name != "id" {
		t.Errorf("default order should be the key fields, got %v", order)
	}
}

func TestDefaultOrderWithoutKey(t *testing.T) {
	config := Config{
		Repository: "default",
		Models: []ModelConfig{
			{
				Name: "note",
				Fields: []FieldConfig{
					{Name: "rank", Kind: "integer", Computed: true},
					{Name: "body"},
				},
			},
		},
	}
	repo, err := NewRepository(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	note, _ := repo.Model("note")

	order := note.DefaultOrderFields()
	if len(order) != 1 || order[0].Name != "body" {
		t.Errorf("keyless model should fall back to first non-computed field, got %v", order)
	}
}

func TestKindFromName(t *testing.T) {
	for _, name := range []string{"string", "integer", "float", "boolean", "time"} {
		k, ok := KindFromName(name)
		if !ok {
			t.Errorf("kind %q should resolve", name)
			continue
		}
		if k.String() != name {
			t.Errorf("round trip mismatch: %q -> %s", name, k)
		}
	}
	if _, ok := KindFromName("decimal"); ok {
		t.Errorf("unknown kind should not resolve")
	}
}
