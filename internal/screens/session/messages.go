package session

// audioDoneMsg is sent when an audio clip could not be started.
type audioDoneMsg struct {
	QuestionID int
	Err        error
}

// feedbackDoneMsg is sent when the learner dismisses the feedback view.
type feedbackDoneMsg struct{}

// sessionEndMsg is sent to leave the quiz before the pass is finished.
type sessionEndMsg struct{}
