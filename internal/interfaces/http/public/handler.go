package public

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	calcdomain "github.com/hostlink-ma/hostlink-services/api/internal/calculator/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	publicapp "github.com/hostlink-ma/hostlink-services/api/internal/public/application"
)

// DirectoryQueries answers visitor reads.
type DirectoryQueries interface {
	List(ctx context.Context, kind domain.Kind, filter publicapp.ListingFilter, paging publicapp.Paging) ([]publicapp.RatedListing, error)
	Search(ctx context.Context, keyword string, paging publicapp.Paging) ([]publicapp.RatedListing, error)
	Profile(ctx context.Context, kind domain.Kind, id string) (publicapp.Profile, error)
}

// ReviewCommands accepts visitor reviews.
type ReviewCommands interface {
	Submit(ctx context.Context, cmd publicapp.SubmitReviewCommand) (domain.Review, error)
}

// Calculator computes estimates and captures leads.
type Calculator interface {
	Estimate(inputs calcdomain.Inputs) (calcdomain.Estimate, bool)
	CaptureLead(ctx context.Context, email string, inputs calcdomain.Inputs, estimate calcdomain.Estimate) (string, error)
	ReportURL(ctx context.Context) (string, error)
}

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger     *slog.Logger
	directory  DirectoryQueries
	reviews    ReviewCommands
	calculator Calculator
	validator  *common.Validator
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger     *slog.Logger
	Directory  DirectoryQueries
	Reviews    ReviewCommands
	Calculator Calculator
	Validator  *common.Validator
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	v := cfg.Validator
	if v == nil {
		v = common.NewValidator()
	}
	return &Handler{
		logger:     cfg.Logger,
		directory:  cfg.Directory,
		reviews:    cfg.Reviews,
		calculator: cfg.Calculator,
		validator:  v,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/listings/{kind}", h.listingListHandler())
	r.Get("/listings/{kind}/{id}", h.listingProfileHandler())
	r.Post("/listings/{kind}/{id}/reviews", h.reviewCreateHandler())
	r.Get("/search", h.searchHandler())
	r.Post("/calculator/estimate", h.estimateHandler())
	r.Post("/calculator/leads", h.leadCreateHandler())
	r.With(authMiddleware).Get("/auth/verify", h.authVerifyHandler())
}
