package dto

import (
	"time"

	"careerquest/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	SalaryMin    *int       `json:"salary_min"`
	SalaryMax    *int       `json:"salary_max"`
	Currency     string     `json:"currency"`
	Remote       bool       `json:"remote"`
	Seniority    string     `json:"seniority"`
	Requirements string     `json:"requirements"`
	Tags         []string   `json:"tags"`
	Status       string     `json:"status"`
	SourceType   string     `json:"source_type"`
	URL          string     `json:"url,omitempty"`
	PostedAt     *time.Time `json:"posted_at"`
}

func NewJobResponse(o job.Offer) JobResponse {
	tags := o.Tags
	if tags == nil {
		tags = []string{}
	}
	return JobResponse{
		ID:           o.ID,
		Title:        o.Title,
		Company:      o.Company,
		Location:     o.Location,
		SalaryMin:    o.SalaryMin,
		SalaryMax:    o.SalaryMax,
		Currency:     o.Currency,
		Remote:       o.Remote,
		Seniority:    o.Seniority,
		Requirements: o.Requirements,
		Tags:         tags,
		Status:       string(o.Status),
		SourceType:   string(o.SourceType),
		URL:          o.URL,
		PostedAt:     o.PostedAt,
	}
}

type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
