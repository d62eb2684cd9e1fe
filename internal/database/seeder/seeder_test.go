package seeder

import (
	"context"
	"errors"
	"testing"
	"time"

	"careerquest/internal/database"
	"careerquest/internal/domain/assessment"
	"careerquest/internal/domain/recommendation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error) { return 1, nil }
func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not supported")
}
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	database.DB
	tx *fakeTx
}

func (d *fakeDB) Begin(context.Context) (database.Tx, error) { return d.tx, nil }

type countingSeeder struct {
	name string
	n    int
	err  error
}

func (s countingSeeder) Name() string { return s.name }

func (s countingSeeder) Run(context.Context, database.Querier, *zap.Logger) (int, error) {
	return s.n, s.err
}

func TestRunnerCommitsAndReports(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	r := Runner{Seeders: []Seeder{countingSeeder{name: "a", n: 3}, countingSeeder{name: "b", n: 0}}}

	reports, err := r.Run(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []Report{{Name: "a", Changed: 3}, {Name: "b", Changed: 0}}, reports)
	assert.True(t, db.tx.committed)
}

func TestRunnerDryRunRollsBack(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	r := Runner{Seeders: []Seeder{countingSeeder{name: "a", n: 5}}, DryRun: true}

	reports, err := r.Run(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 5, reports[0].Changed)
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestRunnerStopsOnError(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	boom := errors.New("boom")
	r := Runner{Seeders: []Seeder{countingSeeder{name: "a", err: boom}, countingSeeder{name: "b", n: 1}}}

	_, err := r.Run(context.Background(), db)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seed a")
	assert.False(t, db.tx.committed)
}

func TestSelect(t *testing.T) {
	all := Defaults(Options{})

	got, err := Select(all, nil)
	require.NoError(t, err)
	assert.Len(t, got, len(all))

	got, err = Select(all, []string{" Jobs ", "skills"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "skills", got[0].Name())
	assert.Equal(t, "jobs", got[1].Name())

	_, err = Select(all, []string{"skills", "nope"})
	assert.ErrorContains(t, err, "nope")
}

func TestWeightsSeederWritesDefaults(t *testing.T) {
	var args []any
	q := recordingQuerier{exec: func(query string, a ...any) { args = a }}

	n, err := WeightsSeeder{}.Run(context.Background(), q, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	w := recommendation.DefaultWeights()
	require.Len(t, args, 9)
	assert.Equal(t, w.SkillMatch, args[0])
	assert.Equal(t, w.HighMatchThreshold, args[8])
}

type recordingQuerier struct {
	exec func(query string, args ...any)
}

func (r recordingQuerier) Exec(_ context.Context, query string, args ...any) (int64, error) {
	r.exec(query, args...)
	return 1, nil
}
func (recordingQuerier) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not supported")
}
func (recordingQuerier) QueryRow(context.Context, string, ...any) database.Row { return nil }

func TestStaffSeederSkipsWithoutEmail(t *testing.T) {
	called := false
	q := recordingQuerier{exec: func(string, ...any) { called = true }}

	n, err := StaffSeeder{}.Run(context.Background(), q, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, called)
}

func TestStaffSeederRejectsWeakPassword(t *testing.T) {
	q := recordingQuerier{exec: func(string, ...any) {}}
	_, err := StaffSeeder{Email: "admin@careerquest.ma", Password: "short"}.Run(context.Background(), q, zap.NewNop())
	assert.Error(t, err)
}

func TestQuestionBanksAreWellFormed(t *testing.T) {
	seen := map[assessment.Category]bool{}
	titles := map[string]bool{}

	for _, b := range questionBanks {
		assert.False(t, titles[b.Title], "duplicate title %q", b.Title)
		titles[b.Title] = true
		assert.Positive(t, b.DurationMinutes, b.Title)
		assert.NotEmpty(t, b.Questions, b.Title)
		seen[assessment.ClassifyTitle(b.Title)] = true

		for i, q := range b.Questions {
			_, ok := assessment.NormalizeLetter(q.Correct)
			assert.True(t, ok, "%s #%d correct letter", b.Title, i+1)
			assert.Positive(t, q.Points, "%s #%d points", b.Title, i+1)
			assert.NotEmpty(t, q.Text)
			for _, opt := range q.Options {
				assert.NotEmpty(t, opt, "%s #%d option", b.Title, i+1)
			}
		}
	}

	for _, c := range []assessment.Category{
		assessment.CategoryPython,
		assessment.CategoryJavaScript,
		assessment.CategorySQL,
		assessment.CategoryDataAnalysis,
		assessment.CategoryGeneral,
	} {
		assert.True(t, seen[c], "no bank for %s", c)
	}
}

func TestGenerateOffersIsDeterministic(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	a := GenerateOffers(25, 7, now)
	b := GenerateOffers(25, 7, now)
	require.Len(t, a, 25)
	assert.Equal(t, a, b)

	c := GenerateOffers(25, 8, now)
	assert.NotEqual(t, a[0].SourceID, c[0].SourceID)
}

func TestGenerateOffersRespectsBands(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	cities := map[string]bool{}
	for _, c := range seedCities {
		cities[c] = true
	}

	for _, o := range GenerateOffers(200, 42, now) {
		require.NotNil(t, o.SalaryMin)
		require.NotNil(t, o.SalaryMax)
		assert.LessOrEqual(t, *o.SalaryMin, *o.SalaryMax)
		assert.Zero(t, *o.SalaryMin%500)
		assert.GreaterOrEqual(t, *o.SalaryMin, 6000)
		assert.LessOrEqual(t, *o.SalaryMax, 30000)
		assert.True(t, cities[o.Location], o.Location)
		assert.Equal(t, "MAD", o.Currency)
		assert.NotEmpty(t, o.Tags)
		assert.Contains(t, o.Requirements, "Compétences requises")
		assert.False(t, o.PostedAt.After(now))
	}
}

func TestGenerateOffersDefaultCount(t *testing.T) {
	assert.Len(t, GenerateOffers(0, 1, time.Now()), defaultJobCount)
}
