// Package schema holds the field and relationship metadata a query
// descriptor resolves names against. It carries no query semantics of its
// own: models, fields and relationships are pure data built once from a
// Config and then only read.
package schema

import "fmt"

// FieldConfig defines a single field on a model
type FieldConfig struct {
	// Name is the field identifier
	Name string `yaml:"name"`

	// Kind is the primitive type, one of: string, integer, float,
	// boolean, time. Defaults to string.
	Kind string `yaml:"kind"`

	// Key marks the field as part of the model's natural ordering key
	Key bool `yaml:"key"`

	// Computed marks a derived field excluded from the default projection
	Computed bool `yaml:"computed"`

	// Dump is an optional value-transform hook applied to condition
	// values before storage. Not representable in config files; set it
	// programmatically.
	Dump func(value any) any `yaml:"-"`
}

// RelationshipConfig defines a named traversal to another model
type RelationshipConfig struct {
	// Name is the relationship identifier
	Name string `yaml:"name"`

	// Target is the name of the model the relationship traverses to
	Target string `yaml:"target"`
}

// ModelConfig defines a single model
type ModelConfig struct {
	Name          string               `yaml:"name"`
	Fields        []FieldConfig        `yaml:"fields"`
	Relationships []RelationshipConfig `yaml:"relationships"`
}

// Config defines a repository and every model in it
type Config struct {
	// Repository names the storage scope; descriptors built against
	// different repositories refuse to merge
	Repository string `yaml:"repository"`

	Models []ModelConfig `yaml:"models"`
}

// Repository is a named collection of resolved models. Two descriptors may
// only merge when they were built against the same repository name.
type Repository struct {
	// Name identifies the repository
	Name string

	models     []*Model
	modelIndex map[string]*Model
}

// NewRepository resolves a Config into a Repository. All field and
// relationship references are resolved here, so later lookups never fail
// for structural reasons.
func NewRepository(config Config) (*Repository, error) {
	if config.Repository == "" {
		return nil, fmt.Errorf("repository name must not be empty")
	}

	repo := &Repository{
		Name:       config.Repository,
		modelIndex: make(map[string]*Model, len(config.Models)),
	}

	// First pass: build models and fields so relationship targets can be
	// resolved regardless of declaration order.
	for _, mc := range config.Models {
		if mc.Name == "" {
			return nil, fmt.Errorf("model name must not be empty")
		}
		if _, exists := repo.modelIndex[mc.Name]; exists {
			return nil, fmt.Errorf("duplicate model %q", mc.Name)
		}
		if len(mc.Fields) == 0 {
			return nil, fmt.Errorf("model %q has no fields", mc.Name)
		}

		model := &Model{
			Name:       mc.Name,
			fieldIndex: make(map[string]*Field, len(mc.Fields)),
			relIndex:   make(map[string]*Relationship, len(mc.Relationships)),
		}
		for _, fc := range mc.Fields {
			if fc.Name == "" {
				return nil, fmt.Errorf("model %q: field name must not be empty", mc.Name)
			}
			if _, exists := model.fieldIndex[fc.Name]; exists {
				return nil, fmt.Errorf("model %q: duplicate field %q", mc.Name, fc.Name)
			}
			kind := String
			if fc.Kind != "" {
				k, ok := KindFromName(fc.Kind)
				if !ok {
					return nil, fmt.Errorf("model %q: field %q has unknown kind %q", mc.Name, fc.Name, fc.Kind)
				}
				kind = k
			}
			field := &Field{
				Name:     fc.Name,
				Kind:     kind,
				Key:      fc.Key,
				Computed: fc.Computed,
				Dump:     fc.Dump,
				model:    model,
			}
			model.fields = append(model.fields, field)
			model.fieldIndex[field.Name] = field
		}

		repo.models = append(repo.models, model)
		repo.modelIndex[model.Name] = model
	}

	// Second pass: resolve relationship targets.
	for _, mc := range config.Models {
		model := repo.modelIndex[mc.Name]
		for _, rc := range mc.Relationships {
			if rc.Name == "" {
				return nil, fmt.Errorf("model %q: relationship name must not be empty", mc.Name)
			}
			if _, exists := model.relIndex[rc.Name]; exists {
				return nil, fmt.Errorf("model %q: duplicate relationship %q", mc.Name, rc.Name)
			}
			target, ok := repo.modelIndex[rc.Target]
			if !ok {
				return nil, fmt.Errorf("model %q: relationship %q targets unknown model %q", mc.Name, rc.Name, rc.Target)
			}
			rel := &Relationship{
				Name:   rc.Name,
				source: model,
				target: target,
			}
			model.relationships = append(model.relationships, rel)
			model.relIndex[rel.Name] = rel
		}
	}

	return repo, nil
}

// Model returns a model by name
func (r *Repository) Model(name string) (*Model, bool) {
	m, ok := r.modelIndex[name]
	return m, ok
}

// Models returns all models in declaration order
func (r *Repository) Models() []*Model {
	return r.models
}
