package quiz

import "errors"

// PointsPerQuestion is the score awarded for each correct answer.
const PointsPerQuestion = 10

var (
	// ErrAlreadyAnswered is returned when the current question already has
	// a verdict in this pass.
	ErrAlreadyAnswered = errors.New("question already answered in this pass")

	// ErrIndexOutOfRange is returned by JumpTo for an index outside the
	// active sequence.
	ErrIndexOutOfRange = errors.New("question index out of range")

	// ErrEmptyRetrySet accompanies the empty session returned by
	// Reset(RetryWrong) when no answer was incorrect. The session is valid.
	ErrEmptyRetrySet = errors.New("no incorrect answers to retry")

	// ErrNoQuestion is returned when an answer is submitted to a session
	// with an empty active sequence.
	ErrNoQuestion = errors.New("no question at cursor")
)

// State is the coarse state of a pass.
type State int

const (
	StateInProgress State = iota // some active question has no answer yet
	StateComplete                // every active question has an answer
)

func (s State) String() string {
	if s == StateComplete {
		return "complete"
	}
	return "in-progress"
}

// Status is the per-question status used to render the question grid.
type Status int

const (
	StatusUnanswered Status = iota
	StatusCurrent
	StatusCorrect
	StatusIncorrect
)

func (s Status) String() string {
	switch s {
	case StatusCurrent:
		return "current"
	case StatusCorrect:
		return "correct"
	case StatusIncorrect:
		return "incorrect"
	default:
		return "unanswered"
	}
}

// RetryMode selects the questions of the next pass.
type RetryMode int

const (
	RetryAll   RetryMode = iota // the full original set
	RetryWrong                  // only questions answered incorrectly
)

func (m RetryMode) String() string {
	switch m {
	case RetryAll:
		return "retry-all"
	case RetryWrong:
		return "retry-wrong"
	default:
		return "unknown"
	}
}

// Answer is the graded response to one question. The verdict is fixed when
// the answer is recorded.
type Answer struct {
	QuestionID int
	Response   string // raw text as submitted; empty means skipped
	Correct    bool
}

// Skipped reports whether the learner gave no response.
func (a Answer) Skipped() bool {
	return a.Response == ""
}
