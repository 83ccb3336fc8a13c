package question

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

//go:embed bank/sample.json
var sampleJSON []byte

// SampleTitle is the title of the embedded sample bank.
const SampleTitle = "IOE Grade 6"

// Bank is an ordered, validated question set.
type Bank struct {
	Title     string
	Questions []Question
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.Questions)
}

// CountByType returns how many questions of each type the bank holds.
func (b *Bank) CountByType() map[Type]int {
	counts := make(map[Type]int, 3)
	for _, q := range b.Questions {
		counts[q.Type()]++
	}
	return counts
}

// bankFile is the on-disk JSON shape of a bank.
type bankFile struct {
	Title     string   `json:"title"`
	Questions []record `json:"questions" validate:"dive"`
}

// record is the on-disk JSON shape of one question.
type record struct {
	ID             int      `json:"id" validate:"gt=0"`
	Type           Type     `json:"type" validate:"required,oneof=MULTIPLE_CHOICE FILL_IN_BLANK REARRANGE"`
	QuestionText   string   `json:"questionText" validate:"required,max=500"`
	CorrectAnswer  string   `json:"correctAnswer" validate:"required"`
	Explanation    string   `json:"explanation" validate:"max=2000"`
	Options        []string `json:"options,omitempty" validate:"omitempty,min=2,unique,dive,required"`
	RearrangeParts []string `json:"rearrangeParts,omitempty" validate:"omitempty,min=1,dive,required"`
	AudioURL       string   `json:"audioUrl,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse validates raw bank JSON and builds the question set. All problems
// found are returned joined, so a bad bank can be fixed in one pass.
func Parse(data []byte) (*Bank, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var f bankFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	var errs []error
	if err := validate.Struct(f); err != nil {
		errs = append(errs, fieldErrors(f, err)...)
	}

	questions := make([]Question, 0, len(f.Questions))
	for _, r := range f.Questions {
		q, err := New(r.Type, Base{
			ID:            r.ID,
			Text:          r.QuestionText,
			CorrectAnswer: r.CorrectAnswer,
			Explanation:   r.Explanation,
			AudioURL:      r.AudioURL,
		}, r.Options, r.RearrangeParts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		questions = append(questions, q)
	}

	if err := ValidateSet(questions); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Bank{Title: f.Title, Questions: questions}, nil
}

// LoadFile reads and parses the bank at path.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bank %s: %w", path, err)
	}
	return b, nil
}

// LoadSample parses the embedded sample bank.
func LoadSample() (*Bank, error) {
	b, err := Parse(sampleJSON)
	if err != nil {
		return nil, fmt.Errorf("sample bank: %w", err)
	}
	if b.Title == "" {
		b.Title = SampleTitle
	}
	return b, nil
}

// Load returns the bank at path, or the embedded sample bank if path is empty.
func Load(path string) (*Bank, error) {
	if path == "" {
		return LoadSample()
	}
	return LoadFile(path)
}

// Encode renders b in the on-disk JSON format accepted by Parse.
func Encode(b *Bank) ([]byte, error) {
	f := bankFile{Title: b.Title, Questions: make([]record, 0, len(b.Questions))}
	for _, q := range b.Questions {
		f.Questions = append(f.Questions, record{
			ID:             q.ID,
			Type:           q.Type(),
			QuestionText:   q.Text,
			CorrectAnswer:  q.CorrectAnswer,
			Explanation:    q.Explanation,
			Options:        q.Options(),
			RearrangeParts: q.Parts(),
			AudioURL:       q.AudioURL,
		})
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	return append(data, '\n'), nil
}

// fieldErrors converts validator errors into ValidationErrors carrying the
// ID of the offending question.
func fieldErrors(f bankFile, err error) []error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{fmt.Errorf("validate bank: %w", err)}
	}

	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &ValidationError{
			QuestionID: questionIDFor(f, fe.Namespace()),
			Field:      fe.Field(),
			Message:    fmt.Sprintf("failed %q check", fe.Tag()),
		})
	}
	return out
}

// questionIDFor extracts the question index from a validator namespace such
// as "bankFile.questions[2].options[0]" and returns that question's ID.
func questionIDFor(f bankFile, namespace string) int {
	_, rest, ok := strings.Cut(namespace, "questions[")
	if !ok {
		return 0
	}
	idx, _, ok := strings.Cut(rest, "]")
	if !ok {
		return 0
	}
	var i int
	if _, err := fmt.Sscanf(idx, "%d", &i); err != nil || i < 0 || i >= len(f.Questions) {
		return 0
	}
	return f.Questions[i].ID
}
