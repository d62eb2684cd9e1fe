package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"careerquest/internal/database"
	"careerquest/internal/domain/job"
	"careerquest/internal/repository"

	"go.uber.org/zap"
)

const defaultJobCount = 40

// JobsSeeder generates mock Moroccan job offers. The same Seed always
// yields the same offers, and source ids make reruns update in place.
type JobsSeeder struct {
	Count int
	Seed  int64
	Now   func() time.Time
}

func (JobsSeeder) Name() string { return "jobs" }

func (s JobsSeeder) Run(ctx context.Context, q database.Querier, logger *zap.Logger) (int, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	offers := GenerateOffers(s.Count, s.Seed, now())
	inserted, updated := 0, 0
	for _, o := range offers {
		ins, err := repository.UpsertJob(ctx, q, o)
		if err != nil {
			return inserted + updated, fmt.Errorf("upsert %s: %w", o.SourceID, err)
		}
		if ins {
			inserted++
		} else {
			updated++
		}
	}
	logger.Info("mock offers seeded", zap.Int("inserted", inserted), zap.Int("updated", updated))
	return inserted + updated, nil
}

var (
	seedCities = []string{
		"Casablanca", "Rabat", "Marrakech", "Tanger", "Fès",
		"Agadir", "Meknès", "Oujda", "Kénitra", "Tétouan",
	}
	seedCompanies = []string{
		"OCP Group", "Maroc Telecom", "inwi", "Orange Maroc", "Attijariwafa bank",
		"CIH Bank", "Capgemini Maroc", "CGI Maroc", "Jumia Maroc", "Avito.ma",
		"Royal Air Maroc", "ONCF", "Bank of Africa", "Sopra Banking", "Intelcia",
	}
)

type seedRole struct {
	Title  string
	Skills []string
}

var seedRoles = []seedRole{
	{"Développeur Python Django", []string{"Python", "Django", "PostgreSQL", "Git"}},
	{"Développeur Full Stack JavaScript", []string{"JavaScript", "React", "Node.js", "MongoDB"}},
	{"Développeur Frontend Angular", []string{"TypeScript", "Angular", "Git", "Scrum"}},
	{"Ingénieur Java Spring Boot", []string{"Java", "Spring Boot", "Oracle", "Docker"}},
	{"Développeur PHP Laravel", []string{"PHP", "Laravel", "MySQL", "Git"}},
	{"Data Analyst", []string{"SQL", "Excel", "Power BI", "Communication"}},
	{"Data Scientist", []string{"Python", "Pandas", "Machine Learning", "SQL"}},
	{"Ingénieur DevOps", []string{"Docker", "Kubernetes", "Linux", "AWS"}},
	{"Administrateur Base de Données", []string{"PostgreSQL", "Oracle", "SQL", "Linux"}},
	{"Chef de projet IT", []string{"Gestion de projet", "Scrum", "Communication", "Anglais"}},
	{"Ingénieur Cloud Azure", []string{"Azure", "Docker", "Linux", "Anglais"}},
	{"Développeur Backend Go", []string{"Go", "PostgreSQL", "Docker", "Git"}},
}

type seedBand struct {
	Seniority string
	Min, Max  int
}

var seedBands = []seedBand{
	{"junior", 6000, 10000},
	{"confirmé", 10000, 18000},
	{"senior", 18000, 30000},
}

// GenerateOffers builds n offers from a seeded source.
func GenerateOffers(n int, seed int64, now time.Time) []job.Offer {
	if n <= 0 {
		n = defaultJobCount
	}
	rng := rand.New(rand.NewSource(seed))

	out := make([]job.Offer, 0, n)
	for i := 0; i < n; i++ {
		role := seedRoles[rng.Intn(len(seedRoles))]
		band := seedBands[rng.Intn(len(seedBands))]
		city := seedCities[rng.Intn(len(seedCities))]
		company := seedCompanies[rng.Intn(len(seedCompanies))]

		// Round to the nearest 500 MAD inside the band.
		lo := band.Min + rng.Intn((band.Max-band.Min)/2)
		lo -= lo % 500
		hi := lo + 2000 + rng.Intn(band.Max-lo)
		hi -= hi % 500
		if hi > band.Max {
			hi = band.Max
		}

		tags := make([]string, 0, len(role.Skills))
		for _, s := range role.Skills {
			tags = append(tags, strings.ToLower(s))
		}
		posted := now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour).UTC()

		out = append(out, job.Offer{
			Title:        role.Title,
			Company:      company,
			Location:     city,
			SalaryMin:    &lo,
			SalaryMax:    &hi,
			Currency:     job.DefaultCurrency,
			Remote:       rng.Intn(4) == 0,
			Seniority:    band.Seniority,
			Requirements: requirementsText(role, band),
			Tags:         tags,
			Status:       job.StatusActive,
			SourceType:   job.SourceSeed,
			SourceID:     fmt.Sprintf("seed-%d-%d", seed, i),
			PostedAt:     &posted,
		})
	}
	return out
}

func requirementsText(role seedRole, band seedBand) string {
	years := map[string]string{"junior": "0 à 2", "confirmé": "3 à 5", "senior": "plus de 5"}[band.Seniority]
	return fmt.Sprintf("Profil %s avec %s ans d'expérience. Compétences requises : %s.",
		band.Seniority, years, strings.Join(role.Skills, ", "))
}
