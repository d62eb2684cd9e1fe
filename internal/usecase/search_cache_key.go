package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"careerquest/internal/search"
)

const jobsSearchPrefix = "jobs:search:"

type jobSearchCacheKeyInput struct {
	Query      string   `json:"q"`
	City       string   `json:"city"`
	Remote     *bool    `json:"remote"`
	Status     string   `json:"status"`
	Tags       []string `json:"tags"`
	MinSalary  int      `json:"min_salary"`
	SourceType string   `json:"source_type"`
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
}

// JobsSearchCacheKey hashes the normalized listing parameters so equivalent
// queries ("Développeur" and "developpeur") share an entry.
func JobsSearchCacheKey(params JobListParams) string {
	tags := make([]string, 0, len(params.Tags))
	for _, t := range params.Tags {
		if t = search.NormalizeQuery(t); t != "" {
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)

	in := jobSearchCacheKeyInput{
		Query:      search.NormalizeQuery(params.Query),
		City:       search.NormalizeQuery(params.City),
		Remote:     params.Remote,
		Status:     strings.ToLower(strings.TrimSpace(params.Status)),
		Tags:       tags,
		MinSalary:  params.MinSalary,
		SourceType: strings.ToLower(strings.TrimSpace(params.SourceType)),
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return jobsSearchPrefix + hex.EncodeToString(sum[:])
}

func JobsSearchLockKey(searchKey string) string {
	return "jobs:lock:" + strings.TrimPrefix(strings.TrimSpace(searchKey), jobsSearchPrefix)
}
