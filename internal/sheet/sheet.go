// Package sheet converts question banks and quiz results to and from Excel
// workbooks, so question banks can be authored in a spreadsheet.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/quiz"
)

const (
	questionsSheet = "Questions"
	resultsSheet   = "Results"

	// listSep separates options and rearrange parts inside one cell.
	listSep = "|"
)

var bankHeaders = []string{
	"ID", "Type", "Question Text", "Options", "Rearrange Parts",
	"Correct Answer", "Explanation", "Audio URL",
}

// ErrNoRows is returned when a workbook has no data rows.
var ErrNoRows = errors.New("workbook must have a header row and at least one data row")

// ExportBank writes b as a single-sheet workbook.
func ExportBank(w io.Writer, b *question.Bank) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := newActiveSheet(f, questionsSheet); err != nil {
		return err
	}
	if err := writeRow(f, questionsSheet, 1, toCells(bankHeaders)); err != nil {
		return err
	}

	for i, q := range b.Questions {
		row := []any{
			q.ID,
			string(q.Type()),
			q.Text,
			strings.Join(q.Options(), " "+listSep+" "),
			strings.Join(q.Parts(), " "+listSep+" "),
			q.CorrectAnswer,
			q.Explanation,
			q.AudioURL,
		}
		if err := writeRow(f, questionsSheet, i+2, row); err != nil {
			return err
		}
	}
	if b.Title != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: b.Title}); err != nil {
			return fmt.Errorf("set title: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ImportBank reads questions from the first sheet of a workbook. Columns
// are matched by header name, case-insensitively. Every bad row is
// reported, each error naming its spreadsheet row.
func ImportBank(r io.Reader, title string) (*question.Bank, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range []string{"id", "type", "question text", "correct answer"} {
		if _, ok := cols[h]; !ok {
			return nil, fmt.Errorf("missing column %q", h)
		}
	}

	var errs []error
	questions := make([]question.Question, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if strings.Join(row, "") == "" {
			continue
		}

		id, err := strconv.Atoi(cell("id"))
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: invalid id %q", rowNum, cell("id")))
			continue
		}
		q, err := question.New(question.Type(strings.ToUpper(cell("type"))), question.Base{
			ID:            id,
			Text:          cell("question text"),
			CorrectAnswer: cell("correct answer"),
			Explanation:   cell("explanation"),
			AudioURL:      cell("audio url"),
		}, splitList(cell("options")), splitList(cell("rearrange parts")))
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", rowNum, err))
			continue
		}
		questions = append(questions, q)
	}

	if err := question.ValidateSet(questions); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if title == "" {
		if props, err := f.GetDocProps(); err == nil {
			title = props.Title
		}
	}
	return &question.Bank{Title: title, Questions: questions}, nil
}

// ExportResults writes a pass report: one row per answer followed by the
// totals.
func ExportResults(w io.Writer, s *quiz.Session, sum quiz.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := newActiveSheet(f, resultsSheet); err != nil {
		return err
	}
	headers := []string{"Question ID", "Type", "Question Text", "Response", "Correct Answer", "Result"}
	if err := writeRow(f, resultsSheet, 1, toCells(headers)); err != nil {
		return err
	}

	row := 2
	for _, a := range s.Answers() {
		q, ok := s.Lookup(a.QuestionID)
		if !ok {
			continue
		}
		result := "Incorrect"
		if a.Correct {
			result = "Correct"
		}
		response := a.Response
		if a.Skipped() {
			response = "(skipped)"
		}
		cells := []any{q.ID, q.Type().DisplayName(), q.Text, response, q.CorrectAnswer, result}
		if err := writeRow(f, resultsSheet, row, cells); err != nil {
			return err
		}
		row++
	}

	row++
	totals := [][]any{
		{"Player", sum.Player},
		{"Pass", sum.Pass},
		{"Correct", sum.Correct},
		{"Incorrect", sum.Incorrect},
		{"Score", sum.Score},
		{"Percent", sum.Percent},
		{"Rank", sum.Rank},
	}
	for _, t := range totals {
		if err := writeRow(f, resultsSheet, row, t); err != nil {
			return err
		}
		row++
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// newActiveSheet renames the default sheet of a new workbook to name.
func newActiveSheet(f *excelize.File, name string) error {
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	index, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	f.SetActiveSheet(index)
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func toCells(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(cell, listSep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
