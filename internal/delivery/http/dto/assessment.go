package dto

import (
	"time"

	"careerquest/internal/domain/assessment"
	"careerquest/internal/usecase"

	"github.com/google/uuid"
)

type TestResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	QuestionCount   int       `json:"question_count"`
}

func NewTestResponse(t assessment.Test) TestResponse {
	return TestResponse{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Category:        string(t.Category),
		DurationMinutes: t.DurationMinutes,
		QuestionCount:   t.QuestionCount,
	}
}

// QuestionResponse never carries the correct option.
type QuestionResponse struct {
	ID      uuid.UUID         `json:"id"`
	Text    string            `json:"text"`
	Options map[string]string `json:"options"`
	Points  int               `json:"points"`
	Order   int               `json:"order"`
}

type TestDetailResponse struct {
	TestResponse
	Questions []QuestionResponse `json:"questions"`
}

func NewTestDetailResponse(d usecase.TestDetail) TestDetailResponse {
	qs := make([]QuestionResponse, 0, len(d.Questions))
	for _, q := range d.Questions {
		qs = append(qs, QuestionResponse{
			ID:   q.ID,
			Text: q.Text,
			Options: map[string]string{
				"A": q.OptionA,
				"B": q.OptionB,
				"C": q.OptionC,
				"D": q.OptionD,
			},
			Points: q.Points,
			Order:  q.Order,
		})
	}
	t := d.Test
	t.QuestionCount = len(qs)
	return TestDetailResponse{TestResponse: NewTestResponse(t), Questions: qs}
}

type SubmissionResponse struct {
	ID          uuid.UUID `json:"id"`
	TestID      uuid.UUID `json:"test_id"`
	TestTitle   string    `json:"test_title"`
	Category    string    `json:"category"`
	ScorePoints int       `json:"score_points"`
	MaxPoints   int       `json:"max_points"`
	Percentage  float64   `json:"percentage"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewSubmissionResponse(s assessment.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:          s.ID,
		TestID:      s.TestID,
		TestTitle:   s.TestTitle,
		Category:    string(s.Category),
		ScorePoints: s.ScorePoints,
		MaxPoints:   s.MaxPoints,
		Percentage:  s.Percentage,
		SubmittedAt: s.SubmittedAt,
	}
}

type GradedSubmissionResponse struct {
	SubmissionResponse
	Correct  int `json:"correct"`
	Answered int `json:"answered"`
	Total    int `json:"total_questions"`
}

type ResultsResponse struct {
	Submissions    []SubmissionResponse `json:"submissions"`
	CategoryScores map[string]float64   `json:"category_scores"`
}

func NewResultsResponse(r usecase.CandidateResults) ResultsResponse {
	subs := make([]SubmissionResponse, 0, len(r.Submissions))
	for _, s := range r.Submissions {
		subs = append(subs, NewSubmissionResponse(s))
	}
	scores := make(map[string]float64, len(r.CategoryScores))
	for c, v := range r.CategoryScores {
		scores[string(c)] = v
	}
	return ResultsResponse{Submissions: subs, CategoryScores: scores}
}

type ImportResponse struct {
	Imported int                      `json:"imported"`
	Skipped  int                      `json:"skipped"`
	Issues   []assessment.ImportIssue `json:"issues"`
}
