// Package testutil provides the shared publishing-domain fixture schema and
// assertion helpers the descriptor tests are written against.
package testutil

import (
	"strings"
	"testing"

	"github.com/byronanderson/dm-core/schema"
)

// Fixture bundles the repository and models tests resolve names against
type Fixture struct {
	Repository *schema.Repository
	Author     *schema.Model
	Article    *schema.Model
	Comment    *schema.Model
}

// NewFixture builds the publishing-domain schema: authors write articles,
// articles receive comments. The article model carries a computed field and
// a dump hook so tests can exercise both.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	config := schema.Config{
		Repository: "default",
		Models: []schema.ModelConfig{
			{
				Name: "author",
				Fields: []schema.FieldConfig{
					{Name: "id", Kind: "integer", Key: true},
					{Name: "name", Kind: "string"},
					{Name: "age", Kind: "integer"},
				},
				Relationships: []schema.RelationshipConfig{
					{Name: "articles", Target: "article"},
				},
			},
			{
				Name: "article",
				Fields: []schema.FieldConfig{
					{Name: "id", Kind: "integer", Key: true},
					{Name: "title", Kind: "string"},
					{Name: "score", Kind: "float"},
					{Name: "published_on", Kind: "time"},
					// slug values are normalized before storage
					{Name: "slug", Kind: "string", Dump: downcase},
					{Name: "rating", Kind: "float", Computed: true},
				},
				Relationships: []schema.RelationshipConfig{
					{Name: "author", Target: "author"},
					{Name: "comments", Target: "comment"},
				},
			},
			{
				Name: "comment",
				Fields: []schema.FieldConfig{
					{Name: "id", Kind: "integer", Key: true},
					{Name: "body", Kind: "string"},
				},
				Relationships: []schema.RelationshipConfig{
					{Name: "article", Target: "article"},
				},
			},
		},
	}

	repo, err := schema.NewRepository(config)
	if err != nil {
		t.Fatalf("failed to build fixture repository: %v", err)
	}

	author, _ := repo.Model("author")
	article, _ := repo.Model("article")
	comment, _ := repo.Model("comment")

	return &Fixture{
		Repository: repo,
		Author:     author,
		Article:    article,
		Comment:    comment,
	}
}

func downcase(value any) any {
	if s, ok := value.(string); ok {
		return strings.ToLower(s)
	}
	return value
}

// Field returns a model field, failing the test when it does not exist
func (f *Fixture) Field(t *testing.T, model *schema.Model, name string) *schema.Field {
	t.Helper()
	field, ok := model.Field(name)
	if !ok {
		t.Fatalf("fixture model %q has no field %q", model.Name, name)
	}
	return field
}

// Relationship returns a model relationship, failing the test when it does
// not exist
func (f *Fixture) Relationship(t *testing.T, model *schema.Model, name string) *schema.Relationship {
	t.Helper()
	rel, ok := model.Relationship(name)
	if !ok {
		t.Fatalf("fixture model %q has no relationship %q", model.Name, name)
	}
	return rel
}
