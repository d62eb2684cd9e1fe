package search

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Listing struct {
	OriginalIndex int
	ID            uuid.UUID
	Title         string
	Company       string
	Location      string
	Requirements  string
	Tags          []string
	SourceType    string
	URL           string
	HasSalary     bool
	CreatedAt     time.Time
	PostedAt      *time.Time
}

type ListingScore struct {
	JobID         uuid.UUID
	Relevance     float64
	Freshness     float64
	SourceQuality float64
	DataQuality   float64
	FinalScore    float64
}

var SourceWeights = map[string]float64{
	"manual": 4,
	"ingest": 3,
	"seed":   1,
}

func ComputeRelevance(l Listing, queryVariants []string) float64 {
	if len(queryVariants) == 0 {
		return 0
	}

	title := Fold(l.Title)
	reqs := Fold(l.Requirements)
	company := Fold(l.Company)
	tags := Fold(strings.Join(l.Tags, " "))

	score := 0.0
	for _, v := range queryVariants {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(title, v) {
			score += 3
		}
		if strings.Contains(tags, v) {
			score += 2
		}
		if strings.Contains(reqs, v) {
			score++
		}
		if strings.Contains(company, v) {
			score++
		}
		if score >= 10 {
			return 10
		}
	}
	return score
}

func ComputeFreshness(l Listing, now time.Time) float64 {
	var t time.Time
	switch {
	case l.PostedAt != nil && !l.PostedAt.IsZero():
		t = *l.PostedAt
	case !l.CreatedAt.IsZero():
		t = l.CreatedAt
	default:
		return 0
	}

	age := now.Sub(t)
	if age < 0 {
		age = 0
	}

	const day = 24 * time.Hour
	switch {
	case age <= day:
		return 5
	case age <= 3*day:
		return 4
	case age <= 7*day:
		return 3
	case age <= 14*day:
		return 2
	case age <= 30*day:
		return 1
	}
	return 0
}

func ComputeSourceQuality(source string) float64 {
	if w, ok := SourceWeights[strings.ToLower(strings.TrimSpace(source))]; ok {
		return w
	}
	return 1
}

func ComputeDataQuality(l Listing) float64 {
	score := 0.0
	for _, present := range []bool{
		strings.TrimSpace(l.Title) != "",
		strings.TrimSpace(l.Company) != "",
		strings.TrimSpace(l.Location) != "",
		len(strings.TrimSpace(l.Requirements)) > 100,
		strings.TrimSpace(l.URL) != "",
		l.HasSalary,
	} {
		if present {
			score++
		}
	}
	return score
}

func ScoreListing(l Listing, queryVariants []string, now time.Time) ListingScore {
	rel := ComputeRelevance(l, queryVariants)
	fresh := ComputeFreshness(l, now)
	src := ComputeSourceQuality(l.SourceType)
	qual := ComputeDataQuality(l)

	return ListingScore{
		JobID:         l.ID,
		Relevance:     rel,
		Freshness:     fresh,
		SourceQuality: src,
		DataQuality:   qual,
		FinalScore:    rel*2.0 + fresh*1.5 + src + qual*0.5,
	}
}

// RankListings orders listings by blended relevance. Without query variants
// the input order is kept.
func RankListings(items []Listing, queryVariants []string, now time.Time) []Listing {
	if len(items) == 0 || len(queryVariants) == 0 {
		return items
	}

	type scored struct {
		idx   int
		score float64
	}
	all := make([]scored, len(items))
	for i := range items {
		all[i] = scored{idx: i, score: ScoreListing(items[i], queryVariants, now).FinalScore}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	out := make([]Listing, 0, len(items))
	for _, it := range all {
		out = append(out, items[it.idx])
	}
	return out
}
