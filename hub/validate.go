package hub

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// ValidationError represents a graph check failure with context.
type ValidationError struct {
	Field   string // Top-level key (e.g., "bogusKey")
	Code    string // Error code (e.g., "unrecognized", "absent")
	Message string // Human-readable message
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains all check failures for a graph.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message, or nil if valid.
func (r *ValidationResult) Error() error {
	if r.IsValid() {
		return nil
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("graph check failed: %s", strings.Join(msgs, "; "))
}

// Validate checks the top level of an assembled graph: every key is a
// recognized property or identity member, the identity members are set and
// no property is absent.
func Validate(graph value.Map) *ValidationResult {
	result := &ValidationResult{}

	for _, key := range []string{schemaorg.ContextKey, schemaorg.IDKey, value.TypeKey} {
		if value.IsAbsent(graph[key]) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   key,
				Code:    "required",
				Message: key + " is required",
			})
		}
	}

	for key, v := range graph {
		if !schemaorg.IsGraphKey(key) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   key,
				Code:    "unrecognized",
				Message: "not a Dataset property",
			})
			continue
		}
		if schemaorg.IsProperty(key) && value.IsAbsent(v) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   key,
				Code:    "absent",
				Message: "absent values must be dropped",
			})
		}
	}

	return result
}

// CheckKeys parses serialized output and reports any top-level key that
// is not a graph key.
func CheckKeys(data []byte) (*ValidationResult, error) {
	var graph value.Map
	if err := Unmarshal(data, &graph); err != nil {
		return nil, err
	}
	return Validate(graph), nil
}
