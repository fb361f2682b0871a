package public

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	calcdomain "github.com/hostlink-ma/hostlink-services/api/internal/calculator/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	publicapp "github.com/hostlink-ma/hostlink-services/api/internal/public/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	listings   []publicapp.RatedListing
	profile    publicapp.Profile
	profileErr error
	filter     publicapp.ListingFilter
	kind       domain.Kind
	keyword    string
}

func (f *fakeDirectory) List(_ context.Context, kind domain.Kind, filter publicapp.ListingFilter, _ publicapp.Paging) ([]publicapp.RatedListing, error) {
	f.kind, f.filter = kind, filter
	return f.listings, nil
}

func (f *fakeDirectory) Search(_ context.Context, keyword string, _ publicapp.Paging) ([]publicapp.RatedListing, error) {
	f.keyword = keyword
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("search query is required: %w", apperrors.ErrValidation)
	}
	return f.listings, nil
}

func (f *fakeDirectory) Profile(context.Context, domain.Kind, string) (publicapp.Profile, error) {
	return f.profile, f.profileErr
}

type fakeReviews struct {
	cmd publicapp.SubmitReviewCommand
	err error
}

func (f *fakeReviews) Submit(_ context.Context, cmd publicapp.SubmitReviewCommand) (domain.Review, error) {
	f.cmd = cmd
	if f.err != nil {
		return domain.Review{}, f.err
	}
	target, err := domain.NewReviewTarget(cmd.Kind, cmd.ListingID)
	if err != nil {
		return domain.Review{}, err
	}
	review, err := domain.NewReview(target, cmd.AuthorName, cmd.Rating, cmd.Comment, time.Now())
	review.ID = "r-new"
	return review, err
}

type fakeCalculator struct {
	captured  []string
	reportURL string
}

func (f *fakeCalculator) Estimate(inputs calcdomain.Inputs) (calcdomain.Estimate, bool) {
	return calcdomain.Compute(inputs)
}

func (f *fakeCalculator) CaptureLead(_ context.Context, email string, _ calcdomain.Inputs, _ calcdomain.Estimate) (string, error) {
	f.captured = append(f.captured, email)
	return fmt.Sprintf("lead-%d", len(f.captured)), nil
}

func (f *fakeCalculator) ReportURL(context.Context) (string, error) {
	return f.reportURL, nil
}

type fixture struct {
	directory  *fakeDirectory
	reviews    *fakeReviews
	calculator *fakeCalculator
	router     http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	listing, err := domain.NewListing(domain.KindConcierge, "owner-1", domain.ListingContent{
		Name:          "Riad Keys",
		City:          domain.NewLocalizedText("Marrakech", "Marrakesh", "مراكش"),
		Services:      domain.LocalizedList{FR: []string{"Accueil"}, EN: []string{"Check-in"}},
		CitiesCovered: domain.LocalizedList{FR: []string{"Marrakech"}},
	}, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	listing.Core().ID = "65f0c0ffee0000000000aaaa"
	listing.Core().Status = domain.StatusApproved

	f := &fixture{
		directory: &fakeDirectory{
			listings: []publicapp.RatedListing{{Listing: listing, Rating: domain.RatingSummary{Average: 4, Count: 3}}},
			profile:  publicapp.Profile{Listing: listing, Rating: domain.RatingSummary{Average: 4, Count: 3}},
		},
		reviews:    &fakeReviews{},
		calculator: &fakeCalculator{reportURL: "https://files.example.com/report.pdf?sig=1"},
	}
	router := chi.NewRouter()
	NewHandler(Config{
		Directory:  f.directory,
		Reviews:    f.reviews,
		Calculator: f.calculator,
	}).Register(router, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := common.ContextWithUser(r.Context(), common.AuthenticatedUser{ID: "u1", Roles: []string{"admin"}})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	f.router = router
	return f
}

func (f *fixture) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)
	return w
}

func TestListingListLocalizesAndFilters(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/listings/conciergeries?city=Agadir&service=Check-in&premium=true", "", "Accept-Language", "en-US")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.KindConcierge, f.directory.kind)
	assert.Equal(t, publicapp.ListingFilter{City: "Agadir", Service: "Check-in", PremiumOnly: true}, f.directory.filter)
	var body listingListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Marrakesh", body.Items[0].City)
	assert.Equal(t, []string{"Check-in"}, body.Items[0].Services)
	assert.Equal(t, 3, body.Items[0].Rating.Count)
}

func TestProfileNotFound(t *testing.T) {
	f := newFixture(t)
	f.directory.profileErr = fmt.Errorf("listing: %w", apperrors.ErrNotFound)

	w := f.do(http.MethodGet, "/listings/designers/65f0c0ffee0000000000bbbb", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileResolvesArabic(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/listings/concierge/65f0c0ffee0000000000aaaa?lang=ar", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body profileResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "مراكش", body.Listing.City)
	assert.Equal(t, []string{"Accueil"}, body.Listing.Services)
	assert.InDelta(t, 4.0, body.Rating.Average, 1e-9)
	assert.Empty(t, body.Reviews)
}

func TestSearchRequiresQuery(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/search", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/search?q=riad", "").Code)
	assert.Equal(t, "riad", f.directory.keyword)
}

func TestReviewCreate(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/listings/menage/65f0c0ffee0000000000aaaa/reviews",
		`{"authorName":"Salma","rating":4,"comment":"Spotless apartment after every stay"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, domain.KindCleaning, f.reviews.cmd.Kind)
	var body common.ReviewResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "pending", body.Status)
}

func TestReviewCreateValidation(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/listings/concierge/x/reviews", `{"authorName":"Salma","rating":6,"comment":"Too good to be true"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "rating")

	w = f.do(http.MethodPost, "/listings/concierge/x/reviews", `{"authorName":"Salma","rating":3,"comment":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimateReturnsNullWhileIncomplete(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/calculator/estimate", `{"purchasePrice":900000,"nightlyRate":500}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"estimate":null,"yearlyProfit":null}`, w.Body.String())

	w = f.do(http.MethodPost, "/calculator/estimate", `{"purchasePrice":900000,"nightlyRate":500,"occupancyRate":150}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"estimate":null,"yearlyProfit":null}`, w.Body.String())
}

func TestEstimateReferenceExample(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/calculator/estimate", `{
		"purchasePrice": 900000, "nightlyRate": 500, "occupancyRate": 65,
		"expenses": {"conciergerie": 1950, "menage": 2000, "electricite": 1500, "taxe": 200, "assurance": 200, "autre": 100}
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body estimateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.NotNil(t, body.Estimate)
	assert.InDelta(t, 9750, body.Estimate.MonthlyRevenue, 1e-9)
	assert.InDelta(t, 3950, body.Estimate.TotalExpenses, 1e-9)
	assert.InDelta(t, 5800, body.Estimate.MonthlyProfit, 1e-9)
	assert.InDelta(t, 7.7333, body.Estimate.YearlyROIPercent, 1e-4)
	assert.InDelta(t, 69600, *body.YearlyProfit, 1e-9)
}

func TestLeadCapture(t *testing.T) {
	f := newFixture(t)
	payload := `{"email":"host@example.ma","inputs":{"purchasePrice":900000,"nightlyRate":500,"occupancyRate":65}}`

	first := f.do(http.MethodPost, "/calculator/leads", payload)
	second := f.do(http.MethodPost, "/calculator/leads", payload)

	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, []string{"host@example.ma", "host@example.ma"}, f.calculator.captured)
	var body leadCreateResponse
	require.NoError(t, json.NewDecoder(first.Body).Decode(&body))
	assert.Equal(t, "lead-1", body.ID)
	assert.Equal(t, "https://files.example.com/report.pdf?sig=1", body.ReportURL)
}

func TestLeadCaptureRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/calculator/leads", `{"email":"nope","inputs":{"purchasePrice":1,"nightlyRate":1,"occupancyRate":1}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/calculator/leads", `{"email":"host@example.ma","inputs":{"purchasePrice":0,"nightlyRate":1,"occupancyRate":1}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.calculator.captured)
}

func TestAuthVerify(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/auth/verify", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isAdmin":true`)
}
