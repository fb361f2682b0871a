package admin

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/hostlink-ma/hostlink-services/api/internal/admin/application"
	calcapp "github.com/hostlink-ma/hostlink-services/api/internal/calculator/application"
	calcdomain "github.com/hostlink-ma/hostlink-services/api/internal/calculator/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
)

// ModerationService is the admin use case surface.
type ModerationService interface {
	Listings(ctx context.Context, actor domain.Actor, kind domain.Kind, filter adminapp.ListingFilter, paging adminapp.Paging) ([]domain.Listing, error)
	Listing(ctx context.Context, actor domain.Actor, kind domain.Kind, id string) (domain.Listing, error)
	SetListingStatus(ctx context.Context, actor domain.Actor, kind domain.Kind, id string, target domain.Status) (domain.Listing, error)
	SetPremium(ctx context.Context, actor domain.Actor, kind domain.Kind, id string, premium bool) (domain.Listing, error)
	ApprovePhoto(ctx context.Context, actor domain.Actor, kind domain.Kind, id, url string) (domain.Listing, error)
	RejectPhoto(ctx context.Context, actor domain.Actor, kind domain.Kind, id, url string) (domain.Listing, error)
	ApproveAllPhotos(ctx context.Context, actor domain.Actor, kind domain.Kind, id string) (domain.Listing, error)
	RejectAllPhotos(ctx context.Context, actor domain.Actor, kind domain.Kind, id string) (domain.Listing, error)
	PendingPhotoQueue(ctx context.Context, actor domain.Actor, paging adminapp.Paging) ([]adminapp.PendingPhotos, error)
	Reviews(ctx context.Context, actor domain.Actor, filter adminapp.ReviewFilter, paging adminapp.Paging) ([]domain.Review, error)
	SetReviewStatus(ctx context.Context, actor domain.Actor, id string, target domain.Status) (domain.Review, error)
	Stats(ctx context.Context, actor domain.Actor) (adminapp.Stats, error)
}

// LeadLister reads captured calculator leads.
type LeadLister interface {
	List(ctx context.Context, paging calcapp.Paging) ([]calcdomain.Lead, error)
}

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger     *slog.Logger
	moderation ModerationService
	leads      LeadLister
	validator  *common.Validator
}

// Config provides dependencies for Handler.
type Config struct {
	Logger     *slog.Logger
	Moderation ModerationService
	Leads      LeadLister
	Validator  *common.Validator
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	v := cfg.Validator
	if v == nil {
		v = common.NewValidator()
	}
	return &Handler{
		logger:     cfg.Logger,
		moderation: cfg.Moderation,
		leads:      cfg.Leads,
		validator:  v,
	}
}

// Register mounts admin routes onto router. Callers are expected to have
// verified the token already; the services re-check the admin role.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stats", h.statsHandler())

	r.Get("/listings/{kind}", h.listingListHandler())
	r.Get("/listings/{kind}/{id}", h.listingDetailHandler())
	r.Patch("/listings/{kind}/{id}/status", h.listingStatusHandler())
	r.Patch("/listings/{kind}/{id}/premium", h.listingPremiumHandler())

	r.Get("/photos/pending", h.pendingPhotosHandler())
	r.Post("/listings/{kind}/{id}/photos/approve", h.photoHandler(photoApprove))
	r.Post("/listings/{kind}/{id}/photos/reject", h.photoHandler(photoReject))
	r.Post("/listings/{kind}/{id}/photos/approve-all", h.photoHandler(photoApproveAll))
	r.Post("/listings/{kind}/{id}/photos/reject-all", h.photoHandler(photoRejectAll))

	r.Get("/reviews", h.reviewListHandler())
	r.Patch("/reviews/{id}", h.reviewStatusHandler())
	r.Post("/reviews/{id}/approve", h.reviewDecisionHandler(domain.StatusApproved))
	r.Post("/reviews/{id}/reject", h.reviewDecisionHandler(domain.StatusRejected))

	r.Get("/leads", h.leadListHandler())
}
