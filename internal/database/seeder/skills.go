package seeder

import (
	"context"

	"careerquest/internal/database"
	"careerquest/internal/domain/skill"

	"go.uber.org/zap"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

var referenceSkills = []struct {
	Name     string
	Category skill.Category
}{
	{"Python", skill.CategoryProgramming},
	{"JavaScript", skill.CategoryProgramming},
	{"TypeScript", skill.CategoryProgramming},
	{"Java", skill.CategoryProgramming},
	{"PHP", skill.CategoryProgramming},
	{"Go", skill.CategoryProgramming},
	{"C#", skill.CategoryProgramming},
	{"Django", skill.CategoryFramework},
	{"React", skill.CategoryFramework},
	{"Angular", skill.CategoryFramework},
	{"Node.js", skill.CategoryFramework},
	{"Spring Boot", skill.CategoryFramework},
	{"Laravel", skill.CategoryFramework},
	{"SQL", skill.CategoryDatabase},
	{"PostgreSQL", skill.CategoryDatabase},
	{"MySQL", skill.CategoryDatabase},
	{"MongoDB", skill.CategoryDatabase},
	{"Oracle", skill.CategoryDatabase},
	{"Docker", skill.CategoryDevOps},
	{"Kubernetes", skill.CategoryDevOps},
	{"Git", skill.CategoryDevOps},
	{"Linux", skill.CategoryDevOps},
	{"AWS", skill.CategoryDevOps},
	{"Azure", skill.CategoryDevOps},
	{"Excel", skill.CategoryData},
	{"Power BI", skill.CategoryData},
	{"Pandas", skill.CategoryData},
	{"Machine Learning", skill.CategoryData},
	{"Tableau", skill.CategoryData},
	{"Communication", skill.CategorySoftSkill},
	{"Travail en équipe", skill.CategorySoftSkill},
	{"Gestion de projet", skill.CategorySoftSkill},
	{"Scrum", skill.CategorySoftSkill},
	{"Français", skill.CategoryLanguage},
	{"Anglais", skill.CategoryLanguage},
	{"Arabe", skill.CategoryLanguage},
}

func (SkillsSeeder) Run(ctx context.Context, q database.Querier, logger *zap.Logger) (int, error) {
	if err := EnsureTableColumns(ctx, q, "skills", "id", "name", "category"); err != nil {
		return 0, err
	}

	changed := 0
	for _, it := range referenceSkills {
		n, err := q.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			string(it.Category),
		)
		if err != nil {
			return changed, err
		}
		changed += int(n)
	}
	logger.Debug("reference skills checked", zap.Int("total", len(referenceSkills)))
	return changed, nil
}
