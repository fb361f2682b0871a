package common

import calcdomain "github.com/hostlink-ma/hostlink-services/api/internal/calculator/domain"

// ExpensesPayload is the monthly expense block of the calculator form.
type ExpensesPayload struct {
	Conciergerie float64 `json:"conciergerie"`
	Menage       float64 `json:"menage"`
	Electricite  float64 `json:"electricite"`
	Taxe         float64 `json:"taxe"`
	Assurance    float64 `json:"assurance"`
	Autre        float64 `json:"autre"`
}

func (p ExpensesPayload) Domain() calcdomain.Expenses {
	return calcdomain.Expenses{
		Conciergerie: p.Conciergerie,
		Menage:       p.Menage,
		Electricite:  p.Electricite,
		Taxe:         p.Taxe,
		Assurance:    p.Assurance,
		Autre:        p.Autre,
	}
}

func NewExpensesPayload(e calcdomain.Expenses) ExpensesPayload {
	return ExpensesPayload{
		Conciergerie: e.Conciergerie,
		Menage:       e.Menage,
		Electricite:  e.Electricite,
		Taxe:         e.Taxe,
		Assurance:    e.Assurance,
		Autre:        e.Autre,
	}
}

type InputsResponse struct {
	PurchasePrice float64         `json:"purchasePrice"`
	NightlyRate   float64         `json:"nightlyRate"`
	OccupancyRate float64         `json:"occupancyRate"`
	Expenses      ExpensesPayload `json:"expenses"`
}

func NewInputsResponse(in calcdomain.Inputs) InputsResponse {
	return InputsResponse{
		PurchasePrice: in.PurchasePrice,
		NightlyRate:   in.NightlyRate,
		OccupancyRate: in.OccupancyRate,
		Expenses:      NewExpensesPayload(in.Expenses),
	}
}

// EstimateResponse carries unrounded values; clients format them.
type EstimateResponse struct {
	MonthlyRevenue   float64 `json:"monthlyRevenue"`
	TotalExpenses    float64 `json:"totalExpenses"`
	MonthlyProfit    float64 `json:"monthlyProfit"`
	YearlyROIPercent float64 `json:"yearlyRoiPercent"`
}

func NewEstimateResponse(e calcdomain.Estimate) EstimateResponse {
	return EstimateResponse{
		MonthlyRevenue:   e.MonthlyRevenue,
		TotalExpenses:    e.TotalExpenses,
		MonthlyProfit:    e.MonthlyProfit,
		YearlyROIPercent: e.YearlyROIPercent,
	}
}
