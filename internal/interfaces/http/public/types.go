package public

import (
	calcdomain "github.com/hostlink-ma/hostlink-services/api/internal/calculator/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
)

type listingListResponse struct {
	Items []common.PublicListingResponse `json:"items"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

type profileResponse struct {
	Listing common.PublicListingResponse `json:"listing"`
	Reviews []common.ReviewResponse      `json:"reviews"`
	Rating  common.RatingResponse        `json:"rating"`
}

// Length rules are enforced again by the domain; these tags give field-level messages.
type reviewCreateRequest struct {
	AuthorName string `json:"authorName" validate:"required,max=100"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required"`
}

// calculatorInputsRequest keeps the three required inputs as pointers so that
// incomplete forms can be told apart from zeros. Absent expenses count as 0.
type calculatorInputsRequest struct {
	PurchasePrice *float64               `json:"purchasePrice"`
	NightlyRate   *float64               `json:"nightlyRate"`
	OccupancyRate *float64               `json:"occupancyRate"`
	Expenses      common.ExpensesPayload `json:"expenses"`
}

// inputs returns false while any required field is missing.
func (req calculatorInputsRequest) inputs() (calcdomain.Inputs, bool) {
	if req.PurchasePrice == nil || req.NightlyRate == nil || req.OccupancyRate == nil {
		return calcdomain.Inputs{}, false
	}
	return calcdomain.Inputs{
		PurchasePrice: *req.PurchasePrice,
		NightlyRate:   *req.NightlyRate,
		OccupancyRate: *req.OccupancyRate,
		Expenses:      req.Expenses.Domain(),
	}, true
}

type estimateResponse struct {
	Estimate     *common.EstimateResponse `json:"estimate"`
	YearlyProfit *float64                 `json:"yearlyProfit"`
}

type leadCreateRequest struct {
	Email  string                  `json:"email" validate:"required,email,max=254"`
	Inputs calculatorInputsRequest `json:"inputs"`
}

type leadCreateResponse struct {
	ID        string                  `json:"id"`
	Estimate  common.EstimateResponse `json:"estimate"`
	ReportURL string                  `json:"reportUrl,omitempty"`
}
