package dto

import (
	"careerquest/internal/domain/recommendation"
	"careerquest/internal/usecase"

	"github.com/google/uuid"
)

type MatchResponse struct {
	Score          float64                   `json:"score"`
	IsHighMatch    bool                      `json:"is_high_match"`
	Components     recommendation.Components `json:"components"`
	MatchedSkills  []string                  `json:"matched_skills"`
	MissingSkills  []string                  `json:"missing_skills"`
	JobSalary      string                    `json:"job_salary"`
	ExpectedSalary string                    `json:"expected_salary"`
	Location       string                    `json:"location"`
}

func NewMatchResponse(r recommendation.Result) MatchResponse {
	return MatchResponse{
		Score:          r.Score,
		IsHighMatch:    r.IsHighMatch,
		Components:     r.Components,
		MatchedSkills:  nonNil(r.MatchedSkills),
		MissingSkills:  nonNil(r.MissingSkills),
		JobSalary:      r.JobSalary,
		ExpectedSalary: r.ExpectedSalary,
		Location:       r.Location,
	}
}

type RecommendationResponse struct {
	Job   JobResponse   `json:"job"`
	Match MatchResponse `json:"match"`
}

func NewRecommendationResponse(r usecase.Recommendation) RecommendationResponse {
	return RecommendationResponse{Job: NewJobResponse(r.Job), Match: NewMatchResponse(r.Result)}
}

type CandidateMatchResponse struct {
	CandidateID uuid.UUID     `json:"candidate_id"`
	Email       string        `json:"email"`
	Location    string        `json:"location"`
	Match       MatchResponse `json:"match"`
}

func NewCandidateMatchResponse(m usecase.CandidateMatch) CandidateMatchResponse {
	return CandidateMatchResponse{
		CandidateID: m.CandidateID,
		Email:       m.Email,
		Location:    m.Location,
		Match:       NewMatchResponse(m.Result),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
