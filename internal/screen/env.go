package screen

import (
	"github.com/sirupsen/logrus"

	"github.com/abhisek/ioequiz/internal/audio"
	"github.com/abhisek/ioequiz/internal/hint"
	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/quiz"
)

// Env carries the collaborators shared by every screen of a run.
type Env struct {
	Bank   *question.Bank
	RNG    hint.Source
	Log    *logrus.Logger
	Audio  audio.Player
	Player *Player

	// OnPassComplete, when set, is called once per finished pass.
	OnPassComplete func(s *quiz.Session, sum quiz.Summary)

	// History holds the summaries of finished passes, oldest first.
	History []quiz.Summary
}

// Player is the learner's profile. The welcome screen fills in the name.
type Player struct {
	Name string
}

// PlayerName returns the learner's name, or "" when unknown.
func (e *Env) PlayerName() string {
	if e == nil || e.Player == nil {
		return ""
	}
	return e.Player.Name
}

// RecordPass appends sum to the history and notifies OnPassComplete.
func (e *Env) RecordPass(s *quiz.Session, sum quiz.Summary) {
	e.History = append(e.History, sum)
	if e.Log != nil {
		e.Log.WithFields(logrus.Fields{
			"pass_id": s.ID(),
			"pass":    s.Pass(),
			"correct": sum.Correct,
			"total":   sum.Total,
		}).Info("pass complete")
	}
	if e.OnPassComplete != nil {
		e.OnPassComplete(s, sum)
	}
}

// LastPass returns the most recent pass summary.
func (e *Env) LastPass() (quiz.Summary, bool) {
	if e == nil || len(e.History) == 0 {
		return quiz.Summary{}, false
	}
	return e.History[len(e.History)-1], true
}

// BestPercent returns the best percentage over all finished passes.
func (e *Env) BestPercent() int {
	best := 0
	if e == nil {
		return best
	}
	for _, sum := range e.History {
		if sum.Percent > best {
			best = sum.Percent
		}
	}
	return best
}
