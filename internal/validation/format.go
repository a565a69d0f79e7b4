// Package validation formats errors for values drawn from a fixed set.
package validation

import (
	"fmt"
	"strings"
)

// FormatValidValues joins string-like values for error messages.
func FormatValidValues[T ~string](values []T) string {
	formatted := make([]string, 0, len(values))
	for _, value := range values {
		formatted = append(formatted, string(value))
	}
	return strings.Join(formatted, ", ")
}

// InvalidValueError wraps base with the rejected input and the accepted
// values, e.g. `invalid status: "done" (valid: a, b)`.
func InvalidValueError[T ~string](base error, input string, valid []T) error {
	return fmt.Errorf("%w: %q (valid: %s)", base, input, FormatValidValues(valid))
}
