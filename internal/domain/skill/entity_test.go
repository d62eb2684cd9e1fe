package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" DevOps ")
	assert.NoError(t, err)
	assert.Equal(t, CategoryDevOps, c)

	c, err = ParseCategory("")
	assert.NoError(t, err)
	assert.Equal(t, CategoryOther, c)

	_, err = ParseCategory("cooking")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCategories_HasEightValues(t *testing.T) {
	assert.Len(t, Categories(), 8)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Spring Boot", NormalizeName("  Spring   Boot "))
}
