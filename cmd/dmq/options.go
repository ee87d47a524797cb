package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/byronanderson/dm-core/query"
	"github.com/byronanderson/dm-core/schema"
)

// optionFile is the on-disk shape of a query option set
type optionFile struct {
	// Model names the model the options target
	Model string `yaml:"model"`

	// Options carries the descriptor options; see translateOptions for
	// the accepted condition and order spellings
	Options map[string]any `yaml:"options"`
}

// loadOptionFile reads and translates one option file
func loadOptionFile(path string) (optionFile, query.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return optionFile{}, nil, fmt.Errorf("failed to read option file: %w", err)
	}

	var file optionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return optionFile{}, nil, fmt.Errorf("failed to parse option file: %w", err)
	}
	if file.Model == "" {
		return optionFile{}, nil, fmt.Errorf("option file %s names no model", path)
	}

	options, err := translateOptions(file.Options)
	if err != nil {
		return optionFile{}, nil, err
	}
	return file, options, nil
}

// operatorSlugs maps the option file condition spellings to operators
var operatorSlugs = map[string]query.Operator{
	"eq":   query.Equal,
	"not":  query.Not,
	"gt":   query.GreaterThan,
	"gte":  query.GreaterOrEqual,
	"lt":   query.LessThan,
	"lte":  query.LessOrEqual,
	"like": query.Like,
	"in":   query.In,
}

// translateOptions converts the YAML option shapes into query options:
//
//   - order entries may carry a "-" prefix for descending sort
//   - a condition value of the form {op: value} wraps the field with that
//     operator; a list value means in-set; a scalar means equality
//   - a conditions list is an opaque passthrough fragment with bind values
func translateOptions(raw map[string]any) (query.Options, error) {
	options := query.Options{}
	for key, value := range raw {
		switch key {
		case "order":
			entries, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("order must be a sequence")
			}
			order := make([]any, len(entries))
			for i, entry := range entries {
				name, ok := entry.(string)
				if !ok {
					return nil, fmt.Errorf("order entries must be field names")
				}
				if strings.HasPrefix(name, "-") {
					order[i] = query.Desc(strings.TrimPrefix(name, "-"))
				} else {
					order[i] = name
				}
			}
			options[key] = order
		case "conditions":
			translated, err := translateConditions(value)
			if err != nil {
				return nil, err
			}
			options[key] = translated
		default:
			options[key] = value
		}
	}
	return options, nil
}

// translateConditions converts the conditions document into builder input
func translateConditions(raw any) (any, error) {
	switch c := raw.(type) {
	case map[string]any:
		conditions := query.Conditions{}
		for name, value := range c {
			clause, translated, err := translateCondition(name, value)
			if err != nil {
				return nil, err
			}
			conditions[clause] = translated
		}
		return conditions, nil
	case []any:
		// raw passthrough: [fragment, bind values...]
		return c, nil
	default:
		return nil, fmt.Errorf("conditions must be a map or a sequence")
	}
}

// translateCondition converts one "field: value" pair into a clause/value
// pair for the condition builder
func translateCondition(name string, value any) (any, any, error) {
	if m, ok := value.(map[string]any); ok {
		if len(m) != 1 {
			return nil, nil, fmt.Errorf("condition %q must carry exactly one operator", name)
		}
		for slug, operand := range m {
			op, known := operatorSlugs[slug]
			if !known {
				return nil, nil, fmt.Errorf("condition %q uses unknown operator %q", name, slug)
			}
			return query.Comparison{Operator: op, Target: name}, operand, nil
		}
	}
	if list, ok := value.([]any); ok {
		return query.InOp(name), list, nil
	}
	return name, value, nil
}

// buildFromFile loads the schema and one option file and constructs the
// descriptor
func buildFromFile(operation, optionPath string) (*query.Query, error) {
	if schemaPath == "" {
		return nil, newSchemaError(operation, fmt.Errorf("no --schema supplied"))
	}
	repo, err := schema.LoadRepository(schemaPath)
	if err != nil {
		return nil, newSchemaError(operation, err)
	}

	file, options, err := loadOptionFile(optionPath)
	if err != nil {
		return nil, &CLIError{Operation: operation, Cause: err.Error(), Underlying: err}
	}
	model, ok := repo.Model(file.Model)
	if !ok {
		return nil, &CLIError{
			Operation:   operation,
			Cause:       fmt.Sprintf("model %q is not defined in %s", file.Model, schemaPath),
			Suggestions: []string{"check the model name against the schema definition"},
		}
	}

	q, err := query.New(repo, model, options)
	if err != nil {
		return nil, &CLIError{Operation: operation, Cause: err.Error(), Underlying: err}
	}
	return q, nil
}
