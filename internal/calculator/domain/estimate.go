package domain

import "math"

// DaysPerMonth is the fixed month length used for revenue projections.
const DaysPerMonth = 30

// Expenses are the monthly running costs of a rental, in MAD.
// Menage is tracked for display but excluded from the profit formula.
type Expenses struct {
	Conciergerie float64
	Menage       float64
	Electricite  float64
	Taxe         float64
	Assurance    float64
	Autre        float64
}

// Inputs are the calculator form values.
type Inputs struct {
	PurchasePrice float64
	NightlyRate   float64
	OccupancyRate float64
	Expenses      Expenses
}

// Estimate is the computed monthly and yearly outlook. Values are not rounded.
type Estimate struct {
	MonthlyRevenue   float64
	TotalExpenses    float64
	MonthlyProfit    float64
	YearlyROIPercent float64
}

// Valid reports whether the inputs satisfy every precondition of Compute.
func (in Inputs) Valid() bool {
	if !finite(in.PurchasePrice) || !finite(in.NightlyRate) || !finite(in.OccupancyRate) {
		return false
	}
	if in.PurchasePrice <= 0 || in.NightlyRate <= 0 {
		return false
	}
	if in.OccupancyRate <= 0 || in.OccupancyRate > 100 {
		return false
	}
	e := in.Expenses
	for _, v := range []float64{e.Conciergerie, e.Menage, e.Electricite, e.Taxe, e.Assurance, e.Autre} {
		if !finite(v) || v < 0 {
			return false
		}
	}
	return true
}

// Compute derives the estimate. ok is false when any precondition fails,
// in which case the returned Estimate is the zero value.
func Compute(in Inputs) (Estimate, bool) {
	if !in.Valid() {
		return Estimate{}, false
	}
	revenue := in.NightlyRate * DaysPerMonth * (in.OccupancyRate / 100)
	e := in.Expenses
	expenses := e.Conciergerie + e.Electricite + e.Taxe + e.Assurance + e.Autre
	profit := revenue - expenses
	roi := (profit * 12 / in.PurchasePrice) * 100
	return Estimate{
		MonthlyRevenue:   revenue,
		TotalExpenses:    expenses,
		MonthlyProfit:    profit,
		YearlyROIPercent: roi,
	}, true
}

// YearlyProfit is twelve months of profit.
func (e Estimate) YearlyProfit() float64 {
	return e.MonthlyProfit * 12
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
