package grader

import "strings"

// punctuation lists the characters dropped before any comparison.
var punctuation = strings.NewReplacer(
	".", "",
	",", "",
	"!", "",
	"?", "",
	";", "",
	":", "",
	"'", "",
	"\"", "",
)

// Normalize converts text to its canonical comparison form.
//
// Normalization rules, applied in order:
// - Punctuation . , ! ? ; : ' " is removed (not replaced by a space)
// - Runs of whitespace collapse to a single space
// - Leading and trailing whitespace is trimmed
// - The result is lowercased
//
// The same rule is applied to learner responses and canonical answers for
// every question type.
func Normalize(text string) string {
	s := punctuation.Replace(text)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// NormalizePtr normalizes an optional value, treating nil as empty.
func NormalizePtr(text *string) string {
	if text == nil {
		return ""
	}
	return Normalize(*text)
}

// Grade reports whether response matches correctAnswer after normalization.
// Rearrange responses must already be the selected tokens joined by single
// spaces; Grade does no tokenization of its own.
func Grade(response, correctAnswer string) bool {
	return Normalize(response) == Normalize(correctAnswer)
}

// Equal reports whether two strings share a normalized form. Renderers use
// it to highlight options with the same rule the grader applies.
func Equal(a, b string) bool {
	return Grade(a, b)
}
