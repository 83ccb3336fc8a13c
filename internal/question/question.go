package question

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/ioequiz/internal/grader"
)

// Base holds the fields shared by every question type.
type Base struct {
	ID            int
	Text          string
	CorrectAnswer string
	Explanation   string
	AudioURL      string
}

// ValidationError describes why question data was rejected.
type ValidationError struct {
	QuestionID int    // 0 when the problem is not tied to one question
	Field      string // offending field, e.g. "options"
	Message    string // human-readable description
}

func (e *ValidationError) Error() string {
	if e.QuestionID == 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("question %d: %s: %s", e.QuestionID, e.Field, e.Message)
}

// NewMultipleChoice builds a multiple-choice question. It needs at least two
// options, one of them must match the canonical answer and at least one must
// differ from it.
func NewMultipleChoice(b Base, options []string) (Question, error) {
	if err := b.validate(); err != nil {
		return Question{}, err
	}
	if len(options) < 2 {
		return Question{}, &ValidationError{b.ID, "options", fmt.Sprintf("need at least 2 options, got %d", len(options))}
	}
	for i, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return Question{}, &ValidationError{b.ID, "options", fmt.Sprintf("option %d is empty", i+1)}
		}
	}
	q := b.build(MultipleChoice{Options: cloneStrings(options)})
	if len(Distractors(q)) == 0 {
		return Question{}, &ValidationError{b.ID, "options", "no incorrect option to act as a distractor"}
	}
	if !hasOption(options, b.CorrectAnswer) {
		return Question{}, &ValidationError{b.ID, "options", "no option matches the correct answer"}
	}
	return q, nil
}

// NewFillInBlank builds a fill-in-the-blank question.
func NewFillInBlank(b Base) (Question, error) {
	if err := b.validate(); err != nil {
		return Question{}, err
	}
	return b.build(FillInBlank{}), nil
}

// NewRearrange builds a word-ordering question. The parts must be exactly
// the space-separated tokens of the canonical answer, in any order.
func NewRearrange(b Base, parts []string) (Question, error) {
	if err := b.validate(); err != nil {
		return Question{}, err
	}
	if len(parts) == 0 {
		return Question{}, &ValidationError{b.ID, "rearrangeParts", "need at least 1 part"}
	}
	for i, p := range parts {
		if strings.TrimSpace(p) == "" || strings.ContainsAny(p, " \t\n") {
			return Question{}, &ValidationError{b.ID, "rearrangeParts", fmt.Sprintf("part %d must be a single non-empty token", i+1)}
		}
	}
	if !sameTokens(parts, strings.Fields(b.CorrectAnswer)) {
		return Question{}, &ValidationError{b.ID, "rearrangeParts", fmt.Sprintf("parts %q do not form answer %q", parts, b.CorrectAnswer)}
	}
	return b.build(Rearrange{Parts: cloneStrings(parts)}), nil
}

// New builds a question of type t, using whichever of options and parts the
// type calls for. Supplying data the type does not use is an error.
func New(t Type, b Base, options, parts []string) (Question, error) {
	switch t {
	case TypeMultipleChoice:
		if len(parts) > 0 {
			return Question{}, &ValidationError{b.ID, "rearrangeParts", "not allowed for " + string(t)}
		}
		return NewMultipleChoice(b, options)
	case TypeFillInBlank:
		if len(options) > 0 {
			return Question{}, &ValidationError{b.ID, "options", "not allowed for " + string(t)}
		}
		if len(parts) > 0 {
			return Question{}, &ValidationError{b.ID, "rearrangeParts", "not allowed for " + string(t)}
		}
		return NewFillInBlank(b)
	case TypeRearrange:
		if len(options) > 0 {
			return Question{}, &ValidationError{b.ID, "options", "not allowed for " + string(t)}
		}
		return NewRearrange(b, parts)
	}
	return Question{}, &ValidationError{b.ID, "type", fmt.Sprintf("unknown question type %q", t)}
}

// Distractors returns the options whose normalized form differs from the
// normalized canonical answer. Non-multiple-choice questions have none.
func Distractors(q Question) []string {
	mc, ok := q.payload.(MultipleChoice)
	if !ok {
		return nil
	}
	var out []string
	for _, opt := range mc.Options {
		if !grader.Equal(opt, q.CorrectAnswer) {
			out = append(out, opt)
		}
	}
	return out
}

func (b Base) validate() error {
	if b.ID <= 0 {
		return &ValidationError{b.ID, "id", fmt.Sprintf("must be positive, got %d", b.ID)}
	}
	if strings.TrimSpace(b.Text) == "" {
		return &ValidationError{b.ID, "questionText", "is empty"}
	}
	if grader.Normalize(b.CorrectAnswer) == "" {
		return &ValidationError{b.ID, "correctAnswer", "is empty after normalization"}
	}
	return nil
}

func (b Base) build(p Payload) Question {
	return Question{
		ID:            b.ID,
		Text:          b.Text,
		CorrectAnswer: b.CorrectAnswer,
		Explanation:   b.Explanation,
		AudioURL:      b.AudioURL,
		payload:       p,
	}
}

// sameTokens reports whether a and b hold the same multiset of strings.
func sameTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := cloneStrings(a)
	y := cloneStrings(b)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// hasOption reports whether any option grades as answer.
func hasOption(options []string, answer string) bool {
	for _, opt := range options {
		if grader.Equal(opt, answer) {
			return true
		}
	}
	return false
}
