package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestOffer_AverageSalary(t *testing.T) {
	avg, ok := Offer{SalaryMin: intPtr(10000), SalaryMax: intPtr(14000)}.AverageSalary()
	assert.True(t, ok)
	assert.Equal(t, 12000.0, avg)

	avg, ok = Offer{SalaryMax: intPtr(9000)}.AverageSalary()
	assert.True(t, ok)
	assert.Equal(t, 9000.0, avg)

	_, ok = Offer{}.AverageSalary()
	assert.False(t, ok)
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusDraft.Valid())
	assert.False(t, Status("archived").Valid())
}
