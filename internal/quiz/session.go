package quiz

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/abhisek/ioequiz/internal/grader"
	"github.com/abhisek/ioequiz/internal/question"
)

// Session is one pass through an active sequence of questions. It records
// at most one graded answer per question and tracks the current position.
// A new pass is a new Session, created by Reset.
//
// Session is not safe for concurrent use.
type Session struct {
	id   string
	pass int

	// bank is the original full set. Answers reference its IDs even when
	// the active sequence is a retry subset.
	bank      []question.Question
	bankIndex map[int]int

	active   []question.Question
	answers  []Answer
	answered map[int]int // question ID -> index into answers
	cursor   int
}

// New starts the first pass over questions, in the given order.
func New(questions []question.Question) *Session {
	return newPass(questions, questions, 1)
}

func newPass(bank, active []question.Question, pass int) *Session {
	s := &Session{
		id:        uuid.New().String(),
		pass:      pass,
		bank:      clone(bank),
		bankIndex: make(map[int]int, len(bank)),
		active:    clone(active),
		answered:  make(map[int]int, len(active)),
	}
	for i, q := range s.bank {
		s.bankIndex[q.ID] = i
	}
	return s
}

// ID returns the unique identifier of this pass.
func (s *Session) ID() string { return s.id }

// Pass returns the pass number: 1 for a fresh quiz, incremented by each Reset.
func (s *Session) Pass() int { return s.pass }

// Len returns the size of the active sequence.
func (s *Session) Len() int { return len(s.active) }

// Cursor returns the 0-based index of the current question.
func (s *Session) Cursor() int { return s.cursor }

// Active returns a copy of the active sequence.
func (s *Session) Active() []question.Question { return clone(s.active) }

// Bank returns a copy of the original full question set.
func (s *Session) Bank() []question.Question { return clone(s.bank) }

// Answers returns a copy of the recorded answers in insertion order.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Current returns the question at the cursor. It reports false when the
// active sequence is empty.
func (s *Session) Current() (question.Question, bool) {
	if len(s.active) == 0 {
		return question.Question{}, false
	}
	return s.active[s.cursor], true
}

// Lookup finds a question of the original set by ID.
func (s *Session) Lookup(id int) (question.Question, bool) {
	i, ok := s.bankIndex[id]
	if !ok {
		return question.Question{}, false
	}
	return s.bank[i], true
}

// SubmitAnswer grades response against the current question and records the
// verdict. It does not move the cursor. A question can be graded once per
// pass; a second submission returns ErrAlreadyAnswered and records nothing.
func (s *Session) SubmitAnswer(response string) (Answer, error) {
	q, ok := s.Current()
	if !ok {
		return Answer{}, ErrNoQuestion
	}
	if _, done := s.answered[q.ID]; done {
		return Answer{}, fmt.Errorf("question %d: %w", q.ID, ErrAlreadyAnswered)
	}

	a := Answer{
		QuestionID: q.ID,
		Response:   response,
		Correct:    grader.Grade(response, q.CorrectAnswer),
	}
	s.answered[q.ID] = len(s.answers)
	s.answers = append(s.answers, a)
	return a, nil
}

// Skip records an empty response for the current question.
func (s *Session) Skip() (Answer, error) {
	return s.SubmitAnswer("")
}

// JumpTo moves the cursor to index. Any index inside the active sequence is
// allowed, answered or not. Out-of-range indexes return ErrIndexOutOfRange
// and leave the cursor unchanged.
func (s *Session) JumpTo(index int) error {
	if index < 0 || index >= len(s.active) {
		return fmt.Errorf("jump to %d of %d: %w", index, len(s.active), ErrIndexOutOfRange)
	}
	s.cursor = index
	return nil
}

// Advance moves the cursor to the next question. It is a no-op at the last
// question and reports whether the cursor moved.
func (s *Session) Advance() bool {
	if s.cursor+1 >= len(s.active) {
		return false
	}
	s.cursor++
	return true
}

// NextUnanswered returns the index of the first unanswered question after
// the cursor, wrapping around to the start. It reports false when every
// question has an answer.
func (s *Session) NextUnanswered() (int, bool) {
	n := len(s.active)
	for step := 1; step <= n; step++ {
		i := (s.cursor + step) % n
		if _, done := s.answered[s.active[i].ID]; !done {
			return i, true
		}
	}
	return 0, false
}

// Reset starts a new pass. RetryAll replays the full original set in its
// original order. RetryWrong replays only questions answered incorrectly in
// this pass, ordered by ascending ID. When nothing was wrong, RetryWrong
// returns an empty session together with ErrEmptyRetrySet. The receiver is
// left untouched.
func (s *Session) Reset(mode RetryMode) (*Session, error) {
	switch mode {
	case RetryAll:
		return newPass(s.bank, s.bank, s.pass+1), nil

	case RetryWrong:
		wrong := s.wrongQuestions()
		next := newPass(s.bank, wrong, s.pass+1)
		if len(wrong) == 0 {
			return next, ErrEmptyRetrySet
		}
		return next, nil
	}
	return nil, fmt.Errorf("unknown retry mode %d", mode)
}

// wrongQuestions returns the incorrectly answered questions sorted by ID.
func (s *Session) wrongQuestions() []question.Question {
	var out []question.Question
	for _, a := range s.answers {
		if a.Correct {
			continue
		}
		if q, ok := s.Lookup(a.QuestionID); ok {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// State returns StateComplete once every active question has an answer.
func (s *Session) State() State {
	for _, q := range s.active {
		if _, done := s.answered[q.ID]; !done {
			return StateInProgress
		}
	}
	return StateComplete
}

// IsComplete reports whether every active question has an answer.
func (s *Session) IsComplete() bool {
	return s.State() == StateComplete
}

// Answered returns the number of answers recorded in this pass.
func (s *Session) Answered() int { return len(s.answers) }

// CorrectCount returns the number of correct answers in this pass.
func (s *Session) CorrectCount() int {
	n := 0
	for _, a := range s.answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// IncorrectCount returns the number of incorrect (including skipped) answers.
func (s *Session) IncorrectCount() int {
	return len(s.answers) - s.CorrectCount()
}

// Score returns the points earned: correct answers times PointsPerQuestion.
func (s *Session) Score() int {
	return s.CorrectCount() * PointsPerQuestion
}

// Percent returns the share of answered questions that were correct,
// rounded to a whole percent. It is 0 when nothing has been answered.
func (s *Session) Percent() int {
	total := len(s.answers)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectCount()) / float64(total) * 100))
}

// Progress returns the fraction of the active sequence answered (0.0-1.0).
func (s *Session) Progress() float64 {
	if len(s.active) == 0 {
		return 1
	}
	return float64(len(s.answers)) / float64(len(s.active))
}

// AnswerFor returns the answer recorded for a question in this pass.
func (s *Session) AnswerFor(questionID int) (Answer, bool) {
	i, ok := s.answered[questionID]
	if !ok {
		return Answer{}, false
	}
	return s.answers[i], true
}

// StatusOf returns the grid status of a question. The question at the
// cursor is Current regardless of whether it has been answered.
func (s *Session) StatusOf(questionID int) Status {
	if q, ok := s.Current(); ok && q.ID == questionID {
		return StatusCurrent
	}
	a, ok := s.AnswerFor(questionID)
	switch {
	case !ok:
		return StatusUnanswered
	case a.Correct:
		return StatusCorrect
	default:
		return StatusIncorrect
	}
}

func clone(qs []question.Question) []question.Question {
	out := make([]question.Question, len(qs))
	copy(out, qs)
	return out
}
