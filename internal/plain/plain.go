// Package plain runs a quiz as a line-oriented dialogue over a reader and a
// writer, for terminals where the full-screen UI is unavailable.
package plain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/ioequiz/internal/audio"
	"github.com/abhisek/ioequiz/internal/hint"
	"github.com/abhisek/ioequiz/internal/logging"
	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/quiz"
)

// Options configures a Runner.
type Options struct {
	Bank   *question.Bank
	Player string
	RNG    hint.Source
	Logger *logrus.Logger
	Audio  audio.Player

	// OnPassComplete is called each time every question of a pass has an
	// answer.
	OnPassComplete func(s *quiz.Session, sum quiz.Summary)
}

// Runner drives one quiz over line input.
type Runner struct {
	opts    Options
	in      *bufio.Scanner
	out     io.Writer
	log     *logrus.Logger
	hints   *hint.Cache
	session *quiz.Session
}

// errQuit ends the dialogue at the learner's request.
var errQuit = errors.New("quit")

// New creates a Runner reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, opts Options) *Runner {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.RNG == nil {
		opts.RNG = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Runner{
		opts:  opts,
		in:    bufio.NewScanner(in),
		out:   out,
		log:   log,
		hints: hint.NewCache(opts.RNG),
	}
}

// Session returns the current pass.
func (r *Runner) Session() *quiz.Session { return r.session }

// Run plays passes until the learner quits or input ends.
func (r *Runner) Run(ctx context.Context) error {
	r.session = quiz.New(r.opts.Bank.Questions)
	r.logPass("pass started")

	title := r.opts.Bank.Title
	if title == "" {
		title = question.SampleTitle
	}
	r.printf("%s: %d questions\n", title, r.session.Len())
	r.printf("Commands: :hint  :skip  :jump N  :grid  :play  :quit\n\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if r.session.IsComplete() {
			again, err := r.finishPass()
			if err != nil || !again {
				return ignoreQuit(err)
			}
			continue
		}

		r.showQuestion()
		line, ok := r.readLine("> ")
		if !ok {
			r.printf("\n(input closed)\n")
			return nil
		}
		if err := r.handle(ctx, line); err != nil {
			return ignoreQuit(err)
		}
	}
}

func (r *Runner) handle(ctx context.Context, line string) error {
	if line == "" {
		return nil
	}
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case ":quit", ":q":
		return errQuit

	case ":hint", ":h":
		q, ok := r.session.Current()
		if !ok {
			return nil
		}
		text, err := r.hints.For(q)
		if err != nil {
			r.log.WithError(err).WithField("question_id", q.ID).Warn("hint unavailable")
			r.printf("No hint for this question.\n")
			return nil
		}
		r.log.WithField("question_id", q.ID).Debug("hint shown")
		r.printf("%s\n", text)
		return nil

	case ":skip", ":s":
		return r.submit("")

	case ":jump", ":j":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			r.printf("Usage: :jump N (1-%d)\n", r.session.Len())
			return nil
		}
		if err := r.session.JumpTo(n - 1); err != nil {
			r.printf("No question %d. Choose 1-%d.\n", n, r.session.Len())
			return nil
		}
		r.log.WithField("cursor", r.session.Cursor()).Debug("jump")
		return nil

	case ":grid", ":g":
		r.printf("%s\n", Grid(r.session))
		return nil

	case ":play", ":p":
		q, ok := r.session.Current()
		if !ok || !q.HasAudio() {
			r.printf("No audio for this question.\n")
			return nil
		}
		if err := r.opts.Audio.Play(ctx, q.AudioURL); err != nil {
			r.log.WithError(err).WithField("question_id", q.ID).Warn("audio playback failed")
			r.printf("Could not play audio.\n")
		}
		return nil
	}

	return r.submit(r.resolve(line))
}

// resolve maps an option number to its text for multiple-choice questions.
func (r *Runner) resolve(line string) string {
	q, ok := r.session.Current()
	if !ok {
		return line
	}
	opts := q.Options()
	if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil && n >= 1 && n <= len(opts) {
		return opts[n-1]
	}
	return line
}

func (r *Runner) submit(response string) error {
	q, _ := r.session.Current()
	a, err := r.session.SubmitAnswer(response)
	if errors.Is(err, quiz.ErrAlreadyAnswered) {
		r.printf("Already answered. Use :jump N or answer another question.\n")
		r.moveOn()
		return nil
	}
	if err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"pass_id":     r.session.ID(),
		"question_id": a.QuestionID,
		"correct":     a.Correct,
	}).Info("answer graded")

	if a.Correct {
		r.printf("Correct!\n")
	} else {
		if a.Skipped() {
			r.printf("Skipped.\n")
		} else {
			r.printf("Not quite.\n")
		}
		r.printf("Answer: %s\n", q.CorrectAnswer)
	}
	if q.Explanation != "" {
		r.printf("%s\n", q.Explanation)
	}
	r.printf("\n")

	r.moveOn()
	return nil
}

// moveOn jumps to the next unanswered question, if any.
func (r *Runner) moveOn() {
	if i, ok := r.session.NextUnanswered(); ok {
		_ = r.session.JumpTo(i)
	}
}

func (r *Runner) showQuestion() {
	q, ok := r.session.Current()
	if !ok {
		return
	}
	r.printf("-- Question %d/%d (%s) -- %d%% done\n", r.session.Cursor()+1, r.session.Len(),
		q.Type().DisplayName(), int(math.Round(r.session.Progress()*100)))
	r.printf("%s\n", q.Text)
	for i, opt := range q.Options() {
		r.printf("  %d) %s\n", i+1, opt)
	}
	if parts := q.Parts(); len(parts) > 0 {
		r.printf("  Words: %s\n", strings.Join(parts, " / "))
	}
	if q.HasAudio() {
		r.printf("  (:play for audio)\n")
	}
}

// finishPass prints the report and asks whether to retry. It reports
// whether a new pass was started.
func (r *Runner) finishPass() (bool, error) {
	sum := quiz.BuildSummary(r.session, r.opts.Player)
	r.log.WithFields(logrus.Fields{
		"pass_id": r.session.ID(),
		"pass":    sum.Pass,
		"score":   sum.Score,
		"percent": sum.Percent,
	}).Info("pass complete")
	if r.opts.OnPassComplete != nil {
		r.opts.OnPassComplete(r.session, sum)
	}

	r.printf("%s", Report(sum))

	prompt := "[a] retry all  [q] quit: "
	if sum.Incorrect > 0 {
		prompt = "[a] retry all  [w] retry wrong  [q] quit: "
	}
	for {
		line, ok := r.readLine(prompt)
		if !ok {
			return false, nil
		}
		var mode quiz.RetryMode
		switch strings.ToLower(line) {
		case "a":
			mode = quiz.RetryAll
		case "w":
			if sum.Incorrect == 0 {
				continue
			}
			mode = quiz.RetryWrong
		case "q", ":quit":
			return false, nil
		default:
			continue
		}

		next, err := r.session.Reset(mode)
		if err != nil {
			return false, err
		}
		r.log.WithFields(logrus.Fields{"pass_id": r.session.ID(), "mode": mode.String()}).Info("reset")
		r.session = next
		r.hints.Clear()
		r.logPass("pass started")
		r.printf("\n")
		return true, nil
	}
}

func (r *Runner) logPass(msg string) {
	r.log.WithFields(logrus.Fields{
		"pass_id": r.session.ID(),
		"pass":    r.session.Pass(),
	}).Info(msg)
}

func (r *Runner) readLine(prompt string) (string, bool) {
	r.printf("%s", prompt)
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func ignoreQuit(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
