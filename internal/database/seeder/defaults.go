package seeder

import (
	"time"

	"github.com/google/uuid"
)

type Options struct {
	TestID        uuid.UUID
	JobCount      int
	RandomSeed    int64
	StaffEmail    string
	StaffPassword string
}

// Defaults lists every seeder in dependency order: skills first so the
// generated job requirements mention known skills.
func Defaults(opts Options) []Seeder {
	return []Seeder{
		SkillsSeeder{},
		WeightsSeeder{},
		QuestionBankSeeder{TestID: opts.TestID},
		JobsSeeder{Count: opts.JobCount, Seed: opts.RandomSeed, Now: time.Now},
		StaffSeeder{Email: opts.StaffEmail, Password: opts.StaffPassword},
	}
}
