package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/quiz"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		require.NoError(t, writeRow(f, "Sheet1", i+1, r))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestExportImportBank(t *testing.T) {
	b, err := question.LoadSample()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportBank(&buf, b))

	got, err := ImportBank(&buf, "")
	require.NoError(t, err)

	assert.Equal(t, b.Title, got.Title)
	require.Equal(t, b.Len(), got.Len())
	for i, q := range b.Questions {
		g := got.Questions[i]
		assert.Equal(t, q.ID, g.ID)
		assert.Equal(t, q.Type(), g.Type())
		assert.Equal(t, q.CorrectAnswer, g.CorrectAnswer)
		assert.Equal(t, q.Options(), g.Options())
		assert.Equal(t, q.Parts(), g.Parts())
	}
}

func TestImportBank_HeaderCaseAndBlankRows(t *testing.T) {
	buf := workbook(t, [][]any{
		{"id", "TYPE", "Question text", "Correct answer", "Options"},
		{1, "multiple_choice", "Pick one", "cat", "cat | dog"},
		{},
		{2, "FILL_IN_BLANK", "I ___ tea.", "drink"},
	})

	b, err := ImportBank(buf, "Custom")
	require.NoError(t, err)
	assert.Equal(t, "Custom", b.Title)
	require.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"cat", "dog"}, b.Questions[0].Options())
	assert.Equal(t, question.TypeFillInBlank, b.Questions[1].Type())
}

func TestImportBank_ReportsRows(t *testing.T) {
	buf := workbook(t, [][]any{
		{"ID", "Type", "Question Text", "Correct Answer", "Rearrange Parts"},
		{"x", "FILL_IN_BLANK", "q", "a"},
		{2, "REARRANGE", "q", "a b", "a | c"},
		{3, "ESSAY", "q", "a"},
	})

	_, err := ImportBank(buf, "")
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "row 2")
	assert.Contains(t, msg, "row 3")
	assert.Contains(t, msg, "row 4")
}

func TestImportBank_MissingColumn(t *testing.T) {
	buf := workbook(t, [][]any{
		{"ID", "Type", "Question Text"},
		{1, "FILL_IN_BLANK", "q"},
	})
	_, err := ImportBank(buf, "")
	assert.ErrorContains(t, err, "correct answer")
}

func TestImportBank_NoRows(t *testing.T) {
	buf := workbook(t, [][]any{{"ID", "Type", "Question Text", "Correct Answer"}})
	_, err := ImportBank(buf, "")
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestExportResults(t *testing.T) {
	b, err := question.LoadSample()
	require.NoError(t, err)

	s := quiz.New(b.Questions)
	_, err = s.SubmitAnswer("School")
	require.NoError(t, err)
	s.Advance()
	_, err = s.Skip()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportResults(&buf, s, quiz.BuildSummary(s, "Lan")))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "Correct", rows[1][5])
	assert.Equal(t, "(skipped)", rows[2][3])
	assert.Equal(t, "Incorrect", rows[2][5])

	last := rows[len(rows)-1]
	assert.Equal(t, []string{"Rank", "C"}, last)
}
