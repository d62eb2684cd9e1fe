package recommendation

import (
	"testing"

	"careerquest/internal/domain/assessment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSkillScore_EmptyRequirements(t *testing.T) {
	score, matched, missing := SkillScore([]string{"Go", "SQL"}, nil)
	assert.Equal(t, 0.5, score)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}

func TestSkillScore_IdenticalSetsIsExactlyOne(t *testing.T) {
	skills := []string{"Python", "SQL", "Docker"}
	score, matched, missing := SkillScore(skills, []string{"python", "sql", "docker"})
	assert.Equal(t, 1.0, score)
	assert.Len(t, matched, 3)
	assert.Empty(t, missing)
}

func TestSkillScore_BonusIsCapped(t *testing.T) {
	candidate := []string{"Go", "Python", "SQL", "Docker", "Kubernetes", "Redis", "Linux", "Git"}
	score, _, _ := SkillScore(candidate, []string{"Go", "Rust"})
	// 1/2 + min(0.2, 0.05*6)
	assert.InDelta(t, 0.7, score, 1e-9)
}

func TestSkillScore_ClampedToOne(t *testing.T) {
	candidate := []string{"Go", "Python", "SQL", "Docker", "Redis"}
	score, _, _ := SkillScore(candidate, []string{"Go"})
	assert.Equal(t, 1.0, score)
}

func TestSkillScore_MatchedKeepsRequiredSpelling(t *testing.T) {
	_, matched, missing := SkillScore([]string{"react"}, []string{"React", "Node.js", "react"})
	assert.Equal(t, []string{"React"}, matched)
	assert.Equal(t, []string{"Node.js"}, missing)
}

func TestTechnicalScore_NoTestData(t *testing.T) {
	assert.Equal(t, 0.3, TechnicalScore(nil, []string{"Python"}))
}

func TestTechnicalScore_Fallbacks(t *testing.T) {
	scores := map[assessment.Category]float64{
		assessment.CategoryPython:  90,
		assessment.CategorySQL:     50,
		assessment.CategoryGeneral: 60,
	}
	assert.InDelta(t, 0.7, TechnicalScore(scores, []string{"Python", "PostgreSQL"}), 1e-9)
	assert.InDelta(t, 0.6, TechnicalScore(scores, []string{"Docker"}), 1e-9)

	noGeneral := map[assessment.Category]float64{
		assessment.CategoryPython: 90,
		assessment.CategorySQL:    50,
	}
	assert.InDelta(t, 0.7, TechnicalScore(noGeneral, []string{"Docker"}), 1e-9)
}

func TestLocationScore(t *testing.T) {
	assert.Equal(t, 1.0, LocationScore("casablanca ", "Casablanca", false))
	assert.Equal(t, 1.0, LocationScore("Tanger", "TANGER", true))
	assert.Equal(t, 0.9, LocationScore("Fès", "Casablanca", true))
	assert.Equal(t, 0.8, LocationScore("Rabat", "Casablanca", false))
	assert.Equal(t, 0.6, LocationScore("Agadir", "Casablanca", false))
	assert.Equal(t, 0.6, LocationScore("", "", false))
}

func TestLocationScore_TrimmedBeforeCompare(t *testing.T) {
	assert.Equal(t, 1.0, LocationScore(" Rabat", "rabat  ", false))
	assert.Equal(t, 0.6, LocationScore("   ", "", false), "whitespace is an empty location")
	assert.Equal(t, 0.6, LocationScore("  ", "  ", false))
	assert.Equal(t, 0.9, LocationScore(" ", "Rabat", true))
}

func TestLocationScore_OneOnlyOnMatch(t *testing.T) {
	cities := []string{"Casablanca", "Rabat", "Marrakech", "Tanger", "Fès", "Agadir"}
	for _, a := range cities {
		for _, b := range cities {
			for _, remote := range []bool{false, true} {
				got := LocationScore(a, b, remote)
				assert.Equal(t, a == b, got == 1.0, "%s vs %s remote=%v", a, b, remote)
			}
		}
	}
}

func TestSalaryScore(t *testing.T) {
	expected := ExpectedSalary(2, 4)
	assert.Equal(t, 18000.0, expected)

	assert.Equal(t, 1.0, SalaryScore(18000, true, expected))
	assert.Equal(t, 0.8, SalaryScore(15000, true, expected))
	assert.Equal(t, 0.6, SalaryScore(11000, true, expected))
	assert.Equal(t, 0.3, SalaryScore(9000, true, expected))
	assert.Equal(t, 0.5, SalaryScore(0, false, expected))
}

func TestExperienceScore(t *testing.T) {
	assert.Equal(t, 1.0, ExperienceScore("Senior", 7))
	assert.Equal(t, 1.0, ExperienceScore("confirmé", 2))
	assert.InDelta(t, 0.6, ExperienceScore("senior", 3), 1e-9)
	assert.InDelta(t, 0.2, ExperienceScore("lead", 0), 1e-9)
	assert.InDelta(t, 0.8, ExperienceScore("junior", 4), 1e-9)
	assert.InDelta(t, 0.5, ExperienceScore("stagiaire", 12), 1e-9)
	assert.Equal(t, 0.7, ExperienceScore("principal", 5))
	assert.Equal(t, 0.7, ExperienceScore("", 5))
}

func TestExtractRequiredSkills(t *testing.T) {
	known := []string{"Python", "SQL", "Django", "Docker", "PostgreSQL"}
	got := ExtractRequiredSkills("Maîtrise de python/Django, PostgreSQL exigé.", known)
	assert.Equal(t, []string{"Python", "SQL", "Django", "PostgreSQL"}, got)

	assert.Empty(t, ExtractRequiredSkills("", known))
}

func sampleCandidate() Candidate {
	return Candidate{
		ID:              uuid.New(),
		Skills:          []string{"Python", "SQL", "Docker"},
		ExperienceYears: 3,
		Location:        "casablanca",
		TestScores: map[assessment.Category]float64{
			assessment.CategoryPython: 80,
			assessment.CategorySQL:    60,
		},
		Cognitive: CognitiveScores{Overall: 70, SituationalJudgment: 60, Personality: 65, CognitiveAbility: 75},
	}
}

func sampleJob() Job {
	return Job{
		ID:             uuid.New(),
		Title:          "Développeur Python",
		Location:       "Casablanca",
		SalaryMin:      intPtr(15000),
		SalaryMax:      intPtr(19000),
		Currency:       "MAD",
		Seniority:      "confirmé",
		RequiredSkills: []string{"Python", "SQL", "Django"},
	}
}

func TestScore_WorkedExample(t *testing.T) {
	res := Score(sampleCandidate(), sampleJob(), DefaultWeights())

	assert.InDelta(t, 0.6667, res.Components.Skill, 1e-4)
	assert.InDelta(t, 0.7, res.Components.Technical, 1e-9)
	assert.Equal(t, 1.0, res.Components.Experience)
	assert.Equal(t, 0.8, res.Components.Salary)
	assert.Equal(t, 1.0, res.Components.Location)
	assert.InDelta(t, 0.7, res.Components.Cognitive, 1e-9)

	assert.InDelta(t, 0.74, res.Score, 1e-4)
	assert.False(t, res.IsHighMatch)
	assert.Equal(t, []string{"Python", "SQL"}, res.MatchedSkills)
	assert.Equal(t, []string{"Django"}, res.MissingSkills)
	assert.Equal(t, "15,000 - 19,000 MAD", res.JobSalary)
	assert.Equal(t, "19,500 MAD", res.ExpectedSalary)
	assert.Equal(t, "Casablanca", res.Location)
}

func TestScore_ClusterFitWeightContributesNothing(t *testing.T) {
	w := DefaultWeights()
	base := Score(sampleCandidate(), sampleJob(), w)

	w.ClusterFit = 5
	assert.Equal(t, base.Score, Score(sampleCandidate(), sampleJob(), w).Score)
}

func TestScore_AlwaysClamped(t *testing.T) {
	heavy := Weights{SkillMatch: 10, TechnicalTest: 10, Experience: 10, Salary: 10, Location: 10, Employability: 10}
	assert.Equal(t, 1.0, Score(sampleCandidate(), sampleJob(), heavy).Score)

	negative := Weights{SkillMatch: -3, TechnicalTest: -1}
	assert.Equal(t, 0.0, Score(sampleCandidate(), sampleJob(), negative).Score)

	zero := Weights{}
	res := Score(sampleCandidate(), sampleJob(), zero)
	assert.Equal(t, 0.0, res.Score)
	assert.True(t, res.IsHighMatch)
}

func TestScore_NoSalaryAndRemote(t *testing.T) {
	j := sampleJob()
	j.SalaryMin, j.SalaryMax = nil, nil
	j.Location = "Tanger"
	j.Remote = true

	res := Score(sampleCandidate(), j, DefaultWeights())
	assert.Equal(t, 0.5, res.Components.Salary)
	assert.Equal(t, 0.9, res.Components.Location)
	assert.Equal(t, "not disclosed", res.JobSalary)
	assert.Equal(t, "Tanger (remote)", res.Location)
}

func TestNeutralCognitive(t *testing.T) {
	scores := NeutralCognitive()
	assert.Equal(t, CognitiveScores{Overall: 50, SituationalJudgment: 50, Personality: 50, CognitiveAbility: 50}, scores)
	assert.Equal(t, 0.5, CognitiveScore(scores))
}

func TestRank(t *testing.T) {
	a := Result{JobID: uuid.New(), Score: 0.4}
	b := Result{JobID: uuid.New(), Score: 0.9}
	c := Result{JobID: uuid.New(), Score: 0.2}
	d := Result{JobID: uuid.New(), Score: 0.9}

	out := Rank([]Result{a, b, c, d}, 0.3)
	require.Len(t, out, 3)
	assert.Equal(t, b.JobID, out[0].JobID)
	assert.Equal(t, d.JobID, out[1].JobID)
	assert.Equal(t, a.JobID, out[2].JobID)
}
