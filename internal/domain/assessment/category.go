package assessment

import "strings"

// Category is the coarse bucket a test contributes to when scoring
// recommendations.
type Category string

const (
	CategoryPython       Category = "python"
	CategoryJavaScript   Category = "javascript"
	CategorySQL          Category = "sql"
	CategoryDataAnalysis Category = "data_analysis"
	CategoryGeneral      Category = "general"
)

var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryPython, []string{"python"}},
	{CategoryJavaScript, []string{"javascript", "js", "react", "node"}},
	{CategorySQL, []string{"sql", "database", "base de données", "base de donnees"}},
	{CategoryDataAnalysis, []string{"data", "analyse", "analysis", "excel"}},
}

// ClassifyTitle maps a test title to its category by substring match, first
// rule wins.
func ClassifyTitle(title string) Category {
	t := strings.ToLower(title)
	for _, rule := range categoryKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

// CategoryScores keeps the best percentage per category.
func CategoryScores(subs []Submission) map[Category]float64 {
	out := make(map[Category]float64, len(subs))
	for _, s := range subs {
		cat := s.Category
		if cat == "" {
			cat = ClassifyTitle(s.TestTitle)
		}
		if cur, ok := out[cat]; !ok || s.Percentage > cur {
			out[cat] = s.Percentage
		}
	}
	return out
}

// SkillCategories lists which test categories count as evidence for a
// required skill name.
func SkillCategories(skillName string) []Category {
	s := strings.ToLower(strings.TrimSpace(skillName))
	out := make([]Category, 0, 2)
	add := func(c Category) {
		for _, v := range out {
			if v == c {
				return
			}
		}
		out = append(out, c)
	}

	switch {
	case strings.Contains(s, "python"), s == "django", s == "flask", s == "pandas":
		add(CategoryPython)
	case strings.Contains(s, "javascript"), s == "typescript", strings.Contains(s, "react"),
		strings.Contains(s, "node"), s == "vue.js", s == "angular":
		add(CategoryJavaScript)
	case strings.Contains(s, "sql"), s == "mongodb", s == "oracle":
		add(CategorySQL)
	}
	if strings.Contains(s, "data") || s == "excel" || s == "power bi" || s == "pandas" || s == "tableau" {
		add(CategoryDataAnalysis)
	}
	return out
}
