package todo

import (
	internalstrings "github.com/amonks/tasklist/internal/strings"
)

// NormalizeTitle returns the key used to compare titles for uniqueness.
// Surrounding whitespace is dropped, internal whitespace runs collapse to a
// single space, and the result is lowercased. Blank input yields "".
func NormalizeTitle(title string) string {
	collapsed := internalstrings.NormalizeWhitespace(title)
	if collapsed == "" {
		return ""
	}
	return internalstrings.NormalizeLower(collapsed)
}
