package recommendation

import (
	"math"
	"sort"
	"strings"

	"careerquest/internal/domain/assessment"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type CognitiveScores struct {
	Overall             float64 `json:"overall_score"`
	SituationalJudgment float64 `json:"situational_judgment"`
	Personality         float64 `json:"personality"`
	CognitiveAbility    float64 `json:"cognitive_ability"`
}

// NeutralCognitive is used whenever the employability service cannot answer.
func NeutralCognitive() CognitiveScores {
	return CognitiveScores{Overall: 50, SituationalJudgment: 50, Personality: 50, CognitiveAbility: 50}
}

type Candidate struct {
	ID              uuid.UUID
	Skills          []string
	ExperienceYears int
	Location        string
	TestScores      map[assessment.Category]float64
	Cognitive       CognitiveScores
}

type Job struct {
	ID             uuid.UUID
	Title          string
	Company        string
	Location       string
	Remote         bool
	SalaryMin      *int
	SalaryMax      *int
	Currency       string
	Seniority      string
	RequiredSkills []string
}

type Components struct {
	Skill      float64 `json:"skill"`
	Technical  float64 `json:"technical"`
	Experience float64 `json:"experience"`
	Salary     float64 `json:"salary"`
	Location   float64 `json:"location"`
	Cognitive  float64 `json:"cognitive"`
}

type Result struct {
	CandidateID    uuid.UUID
	JobID          uuid.UUID
	Score          float64
	Components     Components
	MatchedSkills  []string
	MissingSkills  []string
	JobSalary      string
	ExpectedSalary string
	Location       string
	IsHighMatch    bool
}

// Score blends the component scores of one candidate against one job.
func Score(c Candidate, j Job, w Weights) Result {
	skillScore, matched, missing := SkillScore(c.Skills, j.RequiredSkills)

	avg, hasSalary := averageSalary(j.SalaryMin, j.SalaryMax)
	expected := ExpectedSalary(c.ExperienceYears, countSkills(c.Skills))

	comp := Components{
		Skill:      skillScore,
		Technical:  TechnicalScore(c.TestScores, j.RequiredSkills),
		Experience: ExperienceScore(j.Seniority, c.ExperienceYears),
		Salary:     SalaryScore(avg, hasSalary, expected),
		Location:   LocationScore(c.Location, j.Location, j.Remote),
		Cognitive:  CognitiveScore(c.Cognitive),
	}

	total := w.SkillMatch*comp.Skill +
		w.TechnicalTest*comp.Technical +
		w.Experience*comp.Experience +
		w.Salary*comp.Salary +
		w.Location*comp.Location +
		w.Employability*comp.Cognitive
	total = round4(clamp01(total))

	currency := j.Currency
	if currency == "" {
		currency = "MAD"
	}

	return Result{
		CandidateID:    c.ID,
		JobID:          j.ID,
		Score:          total,
		Components:     roundComponents(comp),
		MatchedSkills:  matched,
		MissingSkills:  missing,
		JobSalary:      formatSalaryRange(j.SalaryMin, j.SalaryMax, currency),
		ExpectedSalary: formatAmount(expected, currency),
		Location:       formatLocation(j.Location, j.Remote),
		IsHighMatch:    total >= w.HighMatchThreshold,
	}
}

// Rank drops results under minScore and orders the rest by score, highest
// first. Ties keep their input order.
func Rank(results []Result, minScore float64) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Score < minScore {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].Score > out[k].Score })
	return out
}

func countSkills(skills []string) int {
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if k := normalizeKey(s); k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

func averageSalary(minV, maxV *int) (float64, bool) {
	switch {
	case minV != nil && maxV != nil:
		return float64(*minV+*maxV) / 2, true
	case minV != nil:
		return float64(*minV), true
	case maxV != nil:
		return float64(*maxV), true
	}
	return 0, false
}

var amountPrinter = message.NewPrinter(language.English)

func formatAmount(v float64, currency string) string {
	return amountPrinter.Sprintf("%d %s", int64(math.Round(v)), currency)
}

func formatSalaryRange(minV, maxV *int, currency string) string {
	switch {
	case minV != nil && maxV != nil:
		return amountPrinter.Sprintf("%d - %d %s", *minV, *maxV, currency)
	case minV != nil:
		return amountPrinter.Sprintf("from %d %s", *minV, currency)
	case maxV != nil:
		return amountPrinter.Sprintf("up to %d %s", *maxV, currency)
	}
	return "not disclosed"
}

func formatLocation(city string, remote bool) string {
	city = strings.TrimSpace(city)
	switch {
	case city == "" && remote:
		return "Remote"
	case city == "":
		return "Unspecified"
	case remote:
		return city + " (remote)"
	}
	return city
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func roundComponents(c Components) Components {
	return Components{
		Skill:      round4(c.Skill),
		Technical:  round4(c.Technical),
		Experience: round4(c.Experience),
		Salary:     round4(c.Salary),
		Location:   round4(c.Location),
		Cognitive:  round4(c.Cognitive),
	}
}
