package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"careerquest/internal/domain/job"
	"careerquest/internal/search"
)

const maxRequirementsRunes = 4000

var (
	spaceRe          = regexp.MustCompile(`\s+`)
	thousandsRe      = regexp.MustCompile(`(\d)[\s.\x{00A0}\x{202F}](\d{3})\b`)
	amountRe         = regexp.MustCompile(`(\d+)\s*([kK])?`)
	remoteKeywords   = []string{"teletravail", "remote", "a distance", "full remote", "hybride"}
	seniorityMarkers = []struct {
		keyword string
		level   string
	}{
		{"stagiaire", "stagiaire"},
		{"stage", "stagiaire"},
		{"junior", "junior"},
		{"debutant", "junior"},
		{"senior", "senior"},
		{"lead", "lead"},
		{"expert", "expert"},
		{"confirme", "confirmé"},
	}
)

// ToOffer maps a scraped page onto an active ingested offer.
func ToOffer(d detail, source string, now time.Time) job.Offer {
	minSal, maxSal, currency := ParseSalary(d.Salary)
	text := d.Title + " " + d.Location + " " + d.Description

	company := strings.TrimSpace(d.Company)
	if company == "" {
		company = strings.TrimSpace(source)
	}

	return job.Offer{
		Title:        d.Title,
		Company:      company,
		Location:     cleanCity(d.Location),
		SalaryMin:    minSal,
		SalaryMax:    maxSal,
		Currency:     currency,
		Remote:       DetectRemote(text),
		Seniority:    DetectSeniority(d.Title + " " + d.Description),
		Requirements: truncateRunes(d.Description, maxRequirementsRunes),
		Status:       job.StatusActive,
		SourceType:   job.SourceIngest,
		SourceID:     StableSourceID(d.URL),
		URL:          d.URL,
		PostedAt:     &now,
	}
}

// ParseSalary reads ranges such as "8 000 - 12 000 DH" or "10k à 15k MAD".
// Values under 1000 are ignored as they are not monthly salaries.
func ParseSalary(raw string) (minV, maxV *int, currency string) {
	currency = job.DefaultCurrency
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil, currency
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "€") || strings.Contains(lower, "eur") {
		currency = "EUR"
	}

	for thousandsRe.MatchString(s) {
		s = thousandsRe.ReplaceAllString(s, "$1$2")
	}

	var values []int
	for _, m := range amountRe.FindAllStringSubmatch(s, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if m[2] != "" {
			n *= 1000
		}
		if n < 1000 {
			continue
		}
		values = append(values, n)
	}

	switch len(values) {
	case 0:
		return nil, nil, currency
	case 1:
		v := values[0]
		return &v, nil, currency
	default:
		lo, hi := values[0], values[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		return &lo, &hi, currency
	}
}

func DetectRemote(text string) bool {
	t := search.NormalizeQuery(text)
	for _, kw := range remoteKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// DetectSeniority returns the first level keyword found, or "" when the page
// does not say.
func DetectSeniority(text string) string {
	words := strings.Fields(search.NormalizeQuery(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	for _, m := range seniorityMarkers {
		if _, ok := set[m.keyword]; ok {
			return m.level
		}
	}
	return ""
}

func cleanCity(loc string) string {
	loc = collapseSpace(loc)
	if i := strings.IndexAny(loc, ",-("); i > 0 {
		loc = strings.TrimSpace(loc[:i])
	}
	return loc
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func truncateRunes(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
