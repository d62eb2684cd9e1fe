package search

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "developpeur confirme a fes", Fold("Développeur Confirmé à Fès"))
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "ingenieur devops casablanca", NormalizeQuery("  Ingénieur   DevOps -- Casablanca!! "))
	assert.Equal(t, "", NormalizeQuery("   "))
}

func TestNormalizeQuery_KeepsTechnologyNames(t *testing.T) {
	cases := map[string]string{
		"Node.js":                  "node.js",
		"C#":                       "c#",
		"C++ / Qt":                 "c++ qt",
		".NET Core":                ".net core",
		"Développeur Vue.js, Fès.": "developpeur vue.js fes",
		"Senior. Remote!":          "senior remote",
		"+ # .":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeQuery(in), in)
	}
}

func TestExpandQuery_PrefixSynonyms(t *testing.T) {
	got := ExpandQuery("developpeur java casablanca")
	require.NotEmpty(t, got)
	assert.Equal(t, "developpeur java casablanca", got[0])
	assert.Contains(t, got, "developer java casablanca")
	assert.Contains(t, got, "dev java casablanca")
}

func TestExpandQuery_FullPhraseAndCompact(t *testing.T) {
	assert.Contains(t, ExpandQuery("data analyst"), "analyste de donnees")
	assert.Contains(t, ExpandQuery("full stack"), "developpeur full stack")
}

func TestProcessQuery_Empty(t *testing.T) {
	ctx := ProcessQuery("?!")
	assert.Equal(t, "", ctx.Normalized)
	assert.Empty(t, ctx.Variants)
}

func TestFallbackFirstWord(t *testing.T) {
	assert.Equal(t, "data", FallbackFirstWord("data analyst rabat"))
	assert.Equal(t, "", FallbackFirstWord(""))
}

func TestRankListings_TitleMatchFirst(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	posted := now.Add(-2 * time.Hour)
	items := []Listing{
		{ID: uuid.New(), Title: "Comptable", Company: "Atlas", SourceType: "seed", CreatedAt: now},
		{ID: uuid.New(), Title: "Développeur Python", Company: "Atlas", SourceType: "seed", PostedAt: &posted},
	}

	ranked := RankListings(items, ExpandQuery(NormalizeQuery("developpeur")), now)
	require.Len(t, ranked, 2)
	assert.Equal(t, items[1].ID, ranked[0].ID)
}

func TestRankListings_NoVariantsKeepsOrder(t *testing.T) {
	items := []Listing{{ID: uuid.New()}, {ID: uuid.New()}}
	assert.Equal(t, items, RankListings(items, nil, time.Now()))
}

func TestComputeFreshness(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 5.0, ComputeFreshness(Listing{CreatedAt: now.Add(-time.Hour)}, now))
	assert.Equal(t, 3.0, ComputeFreshness(Listing{CreatedAt: now.Add(-5 * 24 * time.Hour)}, now))
	assert.Equal(t, 0.0, ComputeFreshness(Listing{}, now))
}
