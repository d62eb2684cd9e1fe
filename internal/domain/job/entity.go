package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job offer not found")

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusDraft:
		return true
	}
	return false
}

type SourceType string

const (
	SourceSeed   SourceType = "seed"
	SourceIngest SourceType = "ingest"
	SourceManual SourceType = "manual"
)

const DefaultCurrency = "MAD"

type Offer struct {
	ID           uuid.UUID
	Title        string
	Company      string
	Location     string
	SalaryMin    *int
	SalaryMax    *int
	Currency     string
	Remote       bool
	Seniority    string
	Requirements string
	Tags         []string
	Status       Status
	SourceType   SourceType
	SourceID     string
	URL          string
	PostedAt     *time.Time
	CreatedAt    time.Time
}

// AverageSalary returns the midpoint of the advertised range. A one-sided
// range uses the side that is present.
func (o Offer) AverageSalary() (float64, bool) {
	switch {
	case o.SalaryMin != nil && o.SalaryMax != nil:
		return float64(*o.SalaryMin+*o.SalaryMax) / 2, true
	case o.SalaryMin != nil:
		return float64(*o.SalaryMin), true
	case o.SalaryMax != nil:
		return float64(*o.SalaryMax), true
	}
	return 0, false
}
