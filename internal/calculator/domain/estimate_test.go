package domain

import (
	"math"
	"testing"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInputs() Inputs {
	return Inputs{
		PurchasePrice: 900000,
		NightlyRate:   500,
		OccupancyRate: 65,
		Expenses: Expenses{
			Conciergerie: 2000,
			Menage:       1500,
			Electricite:  800,
			Taxe:         500,
			Assurance:    300,
			Autre:        350,
		},
	}
}

func TestComputeMarrakechExample(t *testing.T) {
	estimate, ok := Compute(sampleInputs())

	require.True(t, ok)
	assert.InDelta(t, 9750, estimate.MonthlyRevenue, 1e-9)
	assert.InDelta(t, 3950, estimate.TotalExpenses, 1e-9)
	assert.InDelta(t, 5800, estimate.MonthlyProfit, 1e-9)
	assert.InDelta(t, 7.7333, estimate.YearlyROIPercent, 1e-4)
	assert.InDelta(t, 69600, estimate.YearlyProfit(), 1e-9)
}

func TestComputeExcludesMenage(t *testing.T) {
	in := sampleInputs()
	base, _ := Compute(in)

	in.Expenses.Menage = 99999
	changed, ok := Compute(in)

	require.True(t, ok)
	assert.Equal(t, base, changed)
}

func TestComputeRejectsInvalidInputs(t *testing.T) {
	cases := map[string]func(*Inputs){
		"zero price":          func(in *Inputs) { in.PurchasePrice = 0 },
		"negative price":      func(in *Inputs) { in.PurchasePrice = -1 },
		"zero nightly rate":   func(in *Inputs) { in.NightlyRate = 0 },
		"zero occupancy":      func(in *Inputs) { in.OccupancyRate = 0 },
		"occupancy above 100": func(in *Inputs) { in.OccupancyRate = 150 },
		"nan occupancy":       func(in *Inputs) { in.OccupancyRate = math.NaN() },
		"infinite price":      func(in *Inputs) { in.PurchasePrice = math.Inf(1) },
		"negative expense":    func(in *Inputs) { in.Expenses.Taxe = -10 },
		"nan expense":         func(in *Inputs) { in.Expenses.Autre = math.NaN() },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := sampleInputs()
			mutate(&in)
			estimate, ok := Compute(in)
			assert.False(t, ok)
			assert.Equal(t, Estimate{}, estimate)
		})
	}
}

func TestComputeAllowsFullOccupancyAndBlankExpenses(t *testing.T) {
	estimate, ok := Compute(Inputs{PurchasePrice: 1_200_000, NightlyRate: 800, OccupancyRate: 100})

	require.True(t, ok)
	assert.InDelta(t, 24000, estimate.MonthlyRevenue, 1e-9)
	assert.InDelta(t, 0, estimate.TotalExpenses, 1e-9)
	assert.InDelta(t, 24, estimate.YearlyROIPercent, 1e-9)
}

func TestComputeAllowsNegativeProfit(t *testing.T) {
	in := Inputs{PurchasePrice: 500000, NightlyRate: 100, OccupancyRate: 10, Expenses: Expenses{Conciergerie: 1000}}

	estimate, ok := Compute(in)

	require.True(t, ok)
	assert.InDelta(t, -700, estimate.MonthlyProfit, 1e-9)
	assert.Less(t, estimate.YearlyROIPercent, 0.0)
}

func TestNewLeadSnapshotIsIndependent(t *testing.T) {
	in := sampleInputs()
	estimate, _ := Compute(in)

	lead, err := NewLead("Host@Example.com", in, estimate, time.Unix(0, 0))
	require.NoError(t, err)

	in.NightlyRate = 1
	in.Expenses.Taxe = 1
	estimate.MonthlyProfit = 0

	assert.Equal(t, "Host@example.com", lead.Email)
	assert.Equal(t, 500.0, lead.Inputs.NightlyRate)
	assert.Equal(t, 500.0, lead.Inputs.Expenses.Taxe)
	assert.InDelta(t, 5800, lead.Estimate.MonthlyProfit, 1e-9)
}

func TestNewLeadKeepsLocalPartCase(t *testing.T) {
	lead, err := NewLead("  Host.Name@Example.MA ", Inputs{}, Estimate{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Host.Name@example.ma", lead.Email)
}

func TestNewLeadRejectsBadEmail(t *testing.T) {
	for _, email := range []string{"", "   ", "nope", "Name <a@b.com>"} {
		_, err := NewLead(email, Inputs{}, Estimate{}, time.Now())
		assert.ErrorIs(t, err, apperrors.ErrValidation, email)
	}
}
