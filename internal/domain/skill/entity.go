package skill

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("skill not found")
	ErrInvalidCategory = errors.New("invalid skill category")
)

type Category string

const (
	CategoryProgramming Category = "programming"
	CategoryFramework   Category = "framework"
	CategoryDatabase    Category = "database"
	CategoryDevOps      Category = "devops"
	CategoryData        Category = "data"
	CategorySoftSkill   Category = "soft_skill"
	CategoryLanguage    Category = "language"
	CategoryOther       Category = "other"
)

var categories = []Category{
	CategoryProgramming,
	CategoryFramework,
	CategoryDatabase,
	CategoryDevOps,
	CategoryData,
	CategorySoftSkill,
	CategoryLanguage,
	CategoryOther,
}

func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory accepts a category name in any case. An empty string maps to
// CategoryOther.
func ParseCategory(raw string) (Category, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return CategoryOther, nil
	}
	for _, c := range categories {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  Category
	CreatedAt time.Time
}

// NormalizeName trims and collapses inner whitespace; case is preserved for
// display and uniqueness is case-sensitive like the column constraint.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
