package assessment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTestNotFound     = errors.New("technical test not found")
	ErrTestInactive     = errors.New("technical test is not active")
	ErrNoQuestions      = errors.New("technical test has no questions")
	ErrInvalidOption    = errors.New("invalid answer option")
	ErrMalformedPayload = errors.New("malformed question payload")
)

type Test struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Category        Category
	DurationMinutes int
	IsActive        bool
	QuestionCount   int
	CreatedAt       time.Time
}

type Question struct {
	ID            uuid.UUID
	TestID        uuid.UUID
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
	Points        int
	Order         int
}

func (q Question) Options() [4]string {
	return [4]string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

// Answers maps a question id to the chosen letter.
type Answers map[uuid.UUID]string

type Submission struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	TestID      uuid.UUID
	TestTitle   string
	Category    Category
	Answers     Answers
	ScorePoints int
	MaxPoints   int
	Percentage  float64
	SubmittedAt time.Time
}

var letters = [4]string{"A", "B", "C", "D"}

// NormalizeLetter upper-cases and validates an answer letter.
func NormalizeLetter(raw string) (string, bool) {
	l := strings.ToUpper(strings.TrimSpace(raw))
	for _, v := range letters {
		if l == v {
			return l, true
		}
	}
	return "", false
}
