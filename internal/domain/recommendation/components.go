package recommendation

import (
	"strings"

	"careerquest/internal/domain/assessment"
)

const (
	emptyRequirementsSkillScore = 0.5
	maxSkillBonus               = 0.2
	skillBonusPerExtra          = 0.05

	noTestDataTechnicalScore = 30.0

	baseExpectedSalary     = 12000.0
	expectedPerYear        = 2000.0
	expectedPerSkill       = 500.0
	unknownSalaryScore     = 0.5
	unknownSeniorityScore  = 0.7
	remoteLocationScore    = 0.9
	sameHubLocationScore   = 0.8
	otherLocationScore     = 0.6
	exactLocationScore     = 1.0
	belowRangeFloor        = 0.2
	belowRangeDecayPerYear = 0.2
	aboveRangeFloor        = 0.5
	aboveRangeDecayPerYear = 0.1
)

// hubCities are the two metropolitan job markets treated as interchangeable.
var hubCities = map[string]struct{}{
	"casablanca": {},
	"rabat":      {},
}

type yearsRange struct {
	min int
	max int
}

var seniorityYears = map[string]yearsRange{
	"stagiaire": {0, 1},
	"junior":    {0, 2},
	"confirmé":  {2, 5},
	"confirme":  {2, 5},
	"mid":       {2, 5},
	"senior":    {5, 10},
	"lead":      {8, 20},
	"expert":    {8, 20},
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SkillScore is the share of required skills the candidate holds plus a small
// bonus for breadth, capped at 1. Matched and missing keep the required
// skills' spelling.
func SkillScore(candidateSkills, requiredSkills []string) (score float64, matched, missing []string) {
	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		if k := normalizeKey(s); k != "" {
			have[k] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(requiredSkills))
	matched = make([]string, 0, len(requiredSkills))
	missing = make([]string, 0, len(requiredSkills))
	for _, r := range requiredSkills {
		k := normalizeKey(r)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := have[k]; ok {
			matched = append(matched, r)
		} else {
			missing = append(missing, r)
		}
	}

	required := len(seen)
	if required == 0 {
		return emptyRequirementsSkillScore, matched, missing
	}

	score = float64(len(matched)) / float64(required)
	if extra := len(have) - required; extra > 0 {
		bonus := skillBonusPerExtra * float64(extra)
		if bonus > maxSkillBonus {
			bonus = maxSkillBonus
		}
		score += bonus
	}
	return clamp01(score), matched, missing
}

// TechnicalScore averages the candidate's test results in the categories the
// job's skills point to, falling back to the general test, then to every
// result, then to a fixed default.
func TechnicalScore(scores map[assessment.Category]float64, requiredSkills []string) float64 {
	if len(scores) == 0 {
		return noTestDataTechnicalScore / 100
	}

	relevant := make(map[assessment.Category]struct{})
	for _, r := range requiredSkills {
		for _, c := range assessment.SkillCategories(r) {
			relevant[c] = struct{}{}
		}
	}

	var sum float64
	var n int
	for c := range relevant {
		if v, ok := scores[c]; ok {
			sum += v
			n++
		}
	}
	if n > 0 {
		return clamp01(sum / float64(n) / 100)
	}

	if v, ok := scores[assessment.CategoryGeneral]; ok {
		return clamp01(v / 100)
	}

	for _, v := range scores {
		sum += v
	}
	return clamp01(sum / float64(len(scores)) / 100)
}

// LocationScore: same city, then remote, then both in a hub city. Locations
// compare case-insensitively after trimming, so a blank or whitespace-only
// candidate location is empty and never counts as a match.
func LocationScore(candidateLocation, jobLocation string, remote bool) float64 {
	cl := normalizeKey(candidateLocation)
	jl := normalizeKey(jobLocation)
	if cl != "" && cl == jl {
		return exactLocationScore
	}
	if remote {
		return remoteLocationScore
	}
	_, candHub := hubCities[cl]
	_, jobHub := hubCities[jl]
	if candHub && jobHub {
		return sameHubLocationScore
	}
	return otherLocationScore
}

// ExpectedSalary synthesizes a monthly MAD expectation from experience and
// skill count.
func ExpectedSalary(experienceYears, skillCount int) float64 {
	if experienceYears < 0 {
		experienceYears = 0
	}
	return baseExpectedSalary + expectedPerYear*float64(experienceYears) + expectedPerSkill*float64(skillCount)
}

func SalaryScore(jobAverage float64, hasSalary bool, expected float64) float64 {
	if !hasSalary || expected <= 0 {
		return unknownSalaryScore
	}
	ratio := jobAverage / expected
	switch {
	case ratio >= 1.0:
		return 1.0
	case ratio >= 0.8:
		return 0.8
	case ratio >= 0.6:
		return 0.6
	default:
		return 0.3
	}
}

func ExperienceScore(seniority string, years int) float64 {
	rng, ok := seniorityYears[normalizeKey(seniority)]
	if !ok {
		return unknownSeniorityScore
	}
	switch {
	case years < rng.min:
		gap := float64(rng.min - years)
		return maxFloat(belowRangeFloor, 1-belowRangeDecayPerYear*gap)
	case years > rng.max:
		gap := float64(years - rng.max)
		return maxFloat(aboveRangeFloor, 1-aboveRangeDecayPerYear*gap)
	default:
		return 1.0
	}
}

func CognitiveScore(c CognitiveScores) float64 {
	return clamp01(c.Overall / 100)
}

// ExtractRequiredSkills returns every known skill whose lower-cased name
// occurs in the requirements text, in the order of known.
func ExtractRequiredSkills(requirements string, known []string) []string {
	text := strings.ToLower(requirements)
	out := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return out
	}
	seen := make(map[string]struct{}, len(known))
	for _, name := range known {
		k := normalizeKey(name)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		if strings.Contains(text, k) {
			seen[k] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
