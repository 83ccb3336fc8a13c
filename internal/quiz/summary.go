package quiz

import "github.com/abhisek/ioequiz/internal/question"

// Rank thresholds, in percent.
const (
	rankSPlus = 90
	rankA     = 80
	rankB     = 60
)

// Band is the colour band of the result ring.
type Band int

const (
	BandLow  Band = iota // below 50%
	BandMid              // 50% to 79%
	BandHigh             // 80% and above
)

func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandMid:
		return "mid"
	default:
		return "low"
	}
}

// RankFor maps a percentage to a letter rank.
func RankFor(percent int) string {
	switch {
	case percent >= rankSPlus:
		return "S+"
	case percent >= rankA:
		return "A"
	case percent >= rankB:
		return "B"
	default:
		return "C"
	}
}

// BandFor maps a percentage to a colour band.
func BandFor(percent int) Band {
	switch {
	case percent >= 80:
		return BandHigh
	case percent >= 50:
		return BandMid
	default:
		return BandLow
	}
}

// MissedItem is an incorrectly answered question shown on the result screen.
type MissedItem struct {
	Question question.Question
	Response string
}

// DisplayResponse returns the learner's response, or "(skipped)" if empty.
func (m MissedItem) DisplayResponse() string {
	if m.Response == "" {
		return "(skipped)"
	}
	return m.Response
}

// Summary is the end-of-pass report.
type Summary struct {
	Player    string
	Pass      int
	Total     int // answers recorded
	Correct   int
	Incorrect int
	Score     int
	Percent   int
	Rank      string
	Band      Band
	Missed    []MissedItem // in answer order
}

// Perfect reports whether every answer was correct.
func (s Summary) Perfect() bool {
	return s.Total > 0 && s.Incorrect == 0
}

// BuildSummary computes the report for a pass.
func BuildSummary(s *Session, player string) Summary {
	pct := s.Percent()
	sum := Summary{
		Player:    player,
		Pass:      s.Pass(),
		Total:     s.Answered(),
		Correct:   s.CorrectCount(),
		Incorrect: s.IncorrectCount(),
		Score:     s.Score(),
		Percent:   pct,
		Rank:      RankFor(pct),
		Band:      BandFor(pct),
	}
	for _, a := range s.answers {
		if a.Correct {
			continue
		}
		q, ok := s.Lookup(a.QuestionID)
		if !ok {
			continue
		}
		sum.Missed = append(sum.Missed, MissedItem{Question: q, Response: a.Response})
	}
	return sum
}
