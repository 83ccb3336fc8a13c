package hint

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/ioequiz/internal/question"
)

// ErrMissingDistractor is returned for a multiple-choice question that has
// no incorrect option to point out. It indicates invalid question data.
var ErrMissingDistractor = errors.New("multiple choice question has no incorrect option")

// Source supplies randomness for hint selection. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n). n is always > 0.
	IntN(n int) int
}

// Generate produces the hint text for q.
//
//   - Multiple choice: names one randomly chosen incorrect option.
//   - Fill in blank: gives the answer length and its first letter.
//   - Rearrange: gives the first two words of the answer.
func Generate(q question.Question, rng Source) (string, error) {
	switch q.Payload().(type) {
	case question.MultipleChoice:
		wrong := question.Distractors(q)
		if len(wrong) == 0 {
			return "", fmt.Errorf("question %d: %w", q.ID, ErrMissingDistractor)
		}
		pick := wrong[rng.IntN(len(wrong))]
		return fmt.Sprintf("Note: Option \"%s\" is incorrect.", pick), nil

	case question.FillInBlank:
		answer := strings.TrimSpace(q.CorrectAnswer)
		first := ""
		if r, _ := utf8.DecodeRuneInString(answer); r != utf8.RuneError {
			first = string(unicode.ToUpper(r))
		}
		return fmt.Sprintf("HINT: %d letters. Starts with \"%s\".", utf8.RuneCountInString(answer), first), nil

	default:
		words := strings.Split(q.CorrectAnswer, " ")
		if len(words) > 2 {
			words = words[:2]
		}
		return fmt.Sprintf("HINT: Starts with \"%s...\"", strings.Join(words, " ")), nil
	}
}

// Cache remembers the hint of the current question so it is generated at
// most once per question. Asking for a different question replaces it.
type Cache struct {
	rng   Source
	id    int
	text  string
	valid bool
}

// NewCache creates a Cache drawing randomness from rng.
func NewCache(rng Source) *Cache {
	return &Cache{rng: rng}
}

// For returns the hint for q, generating it on first request. Errors are
// not cached.
func (c *Cache) For(q question.Question) (string, error) {
	if c.valid && c.id == q.ID {
		return c.text, nil
	}
	text, err := Generate(q, c.rng)
	if err != nil {
		return "", err
	}
	c.id, c.text, c.valid = q.ID, text, true
	return text, nil
}

// Cached returns the hint already generated for question id, if any.
func (c *Cache) Cached(id int) (string, bool) {
	if c.valid && c.id == id {
		return c.text, true
	}
	return "", false
}

// Clear drops the cached hint.
func (c *Cache) Clear() {
	c.id, c.text, c.valid = 0, "", false
}
