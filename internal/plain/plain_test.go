package plain

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/quiz"
)

func run(t *testing.T, lines ...string) (*Runner, string, []quiz.Summary) {
	t.Helper()
	b, err := question.LoadSample()
	require.NoError(t, err)

	var summaries []quiz.Summary
	var out bytes.Buffer
	r := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, Options{
		Bank:   b,
		Player: "Lan",
		RNG:    rand.New(rand.NewPCG(1, 1)),
		OnPassComplete: func(_ *quiz.Session, sum quiz.Summary) {
			summaries = append(summaries, sum)
		},
	})
	require.NoError(t, r.Run(context.Background()))
	return r, out.String(), summaries
}

func TestRun_PerfectPass(t *testing.T) {
	_, out, sums := run(t,
		"1",
		"brushes",
		"He is playing soccer now",
		"1",
		"Watch.",
		"how old are you?",
		"q",
	)

	require.Len(t, sums, 1)
	assert.Equal(t, 60, sums[0].Score)
	assert.Equal(t, "S+", sums[0].Rank)
	assert.Contains(t, out, "IOE Grade 6: 6 questions")
	assert.Contains(t, out, "-- Question 1/6 (MULTIPLE CHOICE) -- 0% done")
	assert.Contains(t, out, "-- Question 3/6 (REARRANGE) -- 33% done")
	assert.Contains(t, out, "Rank:    S+")
	assert.Contains(t, out, "Perfect score!")
	assert.Contains(t, out, "[a] retry all  [q] quit: ")
	assert.NotContains(t, out, "retry wrong")
}

func TestRun_RetryWrong(t *testing.T) {
	r, out, sums := run(t,
		"2", // Cheap
		":skip",
		"He is playing soccer now",
		"do",
		"watch",
		"How old are you ?",
		"w",
		"School",
		"brushes",
		"q",
	)

	require.Len(t, sums, 2)
	assert.Equal(t, 67, sums[0].Percent)
	require.Len(t, sums[0].Missed, 2)
	assert.Equal(t, "(skipped)", sums[0].Missed[1].DisplayResponse())
	assert.Contains(t, out, "You said: Cheap")
	assert.Contains(t, out, "You said: (skipped)")
	assert.Contains(t, out, "Question 1/2")

	assert.Equal(t, 2, r.Session().Pass())
	assert.Equal(t, 2, r.Session().Len())
	assert.Equal(t, 100, sums[1].Percent)
}

func TestRun_Commands(t *testing.T) {
	_, out, sums := run(t,
		":grid",
		":jump 9",
		":jump 3",
		":hint",
		":play",
	)

	assert.Empty(t, sums)
	assert.Contains(t, out, "[>1] [2  ] [3  ] [4  ] [5  ] [6  ]  0 / 6 DONE")
	assert.Contains(t, out, "No question 9. Choose 1-6.")
	assert.Contains(t, out, "-- Question 3/6 (REARRANGE) --")
	assert.Contains(t, out, `HINT: Starts with "He is..."`)
	assert.Contains(t, out, "No audio for this question.")
	assert.Contains(t, out, "(input closed)")
}

func TestRun_AlreadyAnswered(t *testing.T) {
	_, out, _ := run(t,
		"School",
		":jump 1",
		"Cheap",
		":grid",
		":quit",
	)

	assert.Contains(t, out, "Already answered.")
	assert.Contains(t, out, "[1 ✓] [>2]")
	assert.Contains(t, out, "1 / 6 DONE")
}

func TestGrid(t *testing.T) {
	b, err := question.LoadSample()
	require.NoError(t, err)
	s := quiz.New(b.Questions[:3])

	_, err = s.SubmitAnswer("School")
	require.NoError(t, err)
	require.NoError(t, s.JumpTo(1))
	_, err = s.SubmitAnswer("brush")
	require.NoError(t, err)
	require.NoError(t, s.JumpTo(2))

	assert.Equal(t, "[1 ✓] [2 ✗] [>3]  2 / 3 DONE", Grid(s))
}
