package question

import "strings"

// Type identifies how a question is answered.
type Type string

const (
	TypeMultipleChoice Type = "MULTIPLE_CHOICE" // pick one of the options
	TypeFillInBlank    Type = "FILL_IN_BLANK"   // type the missing word
	TypeRearrange      Type = "REARRANGE"       // order the given tokens
)

// Types lists every question type in display order.
func Types() []Type {
	return []Type{TypeMultipleChoice, TypeFillInBlank, TypeRearrange}
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	switch t {
	case TypeMultipleChoice, TypeFillInBlank, TypeRearrange:
		return true
	}
	return false
}

// DisplayName returns the badge label, e.g. "MULTIPLE CHOICE".
func (t Type) DisplayName() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// Payload holds the type-specific data of a question. The set of
// implementations is closed: MultipleChoice, FillInBlank and Rearrange.
type Payload interface {
	Type() Type
	sealed()
}

// MultipleChoice is the payload of a pick-one question.
type MultipleChoice struct {
	// Options are the candidates in display order. At least two, and at
	// least one of them differs from the canonical answer.
	Options []string
}

// FillInBlank is the payload of a type-the-word question. It carries no data.
type FillInBlank struct{}

// Rearrange is the payload of a word-ordering question.
type Rearrange struct {
	// Parts are the tokens in presented order. Joined in the right order
	// with single spaces they form the canonical answer.
	Parts []string
}

func (MultipleChoice) Type() Type { return TypeMultipleChoice }
func (FillInBlank) Type() Type    { return TypeFillInBlank }
func (Rearrange) Type() Type      { return TypeRearrange }

func (MultipleChoice) sealed() {}
func (FillInBlank) sealed()    {}
func (Rearrange) sealed()      {}

// Question is an immutable quiz item. Build one with NewMultipleChoice,
// NewFillInBlank or NewRearrange so the payload matches the type.
type Question struct {
	// ID is unique within a bank. It doubles as display order and lookup key.
	ID int

	// Text is the prompt shown to the learner.
	Text string

	// CorrectAnswer is the canonical answer, compared after normalization.
	CorrectAnswer string

	// Explanation is shown once the question has been graded.
	Explanation string

	// AudioURL is an optional listening clip for any question type.
	AudioURL string

	payload Payload
}

// Type returns the question type derived from its payload. The zero
// Question has no type.
func (q Question) Type() Type {
	if q.payload == nil {
		return ""
	}
	return q.payload.Type()
}

// Payload returns a copy of the type-specific payload.
func (q Question) Payload() Payload {
	switch p := q.payload.(type) {
	case MultipleChoice:
		return MultipleChoice{Options: cloneStrings(p.Options)}
	case Rearrange:
		return Rearrange{Parts: cloneStrings(p.Parts)}
	case FillInBlank:
		return p
	}
	return nil
}

// Options returns the multiple-choice options, or nil for other types.
func (q Question) Options() []string {
	if mc, ok := q.payload.(MultipleChoice); ok {
		return cloneStrings(mc.Options)
	}
	return nil
}

// Parts returns the rearrange tokens, or nil for other types.
func (q Question) Parts() []string {
	if r, ok := q.payload.(Rearrange); ok {
		return cloneStrings(r.Parts)
	}
	return nil
}

// HasAudio reports whether the question has a listening clip.
func (q Question) HasAudio() bool {
	return strings.TrimSpace(q.AudioURL) != ""
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
