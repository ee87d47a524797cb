package main

import (
	"fmt"
	"strings"
)

// CLIError is a user-facing error with context and suggestions
type CLIError struct {
	Operation   string   // the verb that failed, e.g. "build", "save"
	Cause       string   // the underlying cause
	Suggestions []string // actionable hints for the user
	Underlying  error    // original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("failed to %s", e.Operation))
	} else {
		msg.WriteString("operation failed")
	}
	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}
	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}
	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// newSchemaError reports a missing or unusable schema definition
func newSchemaError(operation string, err error) *CLIError {
	return &CLIError{
		Operation:  operation,
		Cause:      fmt.Sprintf("schema could not be loaded: %v", err),
		Underlying: err,
		Suggestions: []string{
			"pass a schema definition with --schema path/to/schema.yaml",
			"check the schema file for undeclared models or fields",
		},
	}
}
