package owner

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	ownerapp "github.com/hostlink-ma/hostlink-services/api/internal/owner/application"
)

// ListingCommands is the provider side of the directory.
type ListingCommands interface {
	Create(ctx context.Context, actor domain.Actor, kind domain.Kind, content domain.ListingContent) (domain.Listing, error)
	Mine(ctx context.Context, actor domain.Actor) ([]domain.Listing, error)
	Get(ctx context.Context, actor domain.Actor, kind domain.Kind, id string) (domain.Listing, error)
	Update(ctx context.Context, actor domain.Actor, kind domain.Kind, id string, content domain.ListingContent) (domain.Listing, error)
	SubmitPhoto(ctx context.Context, actor domain.Actor, kind domain.Kind, id, url string) (domain.Listing, error)
}

// Uploader stores owner media.
type Uploader interface {
	Upload(ctx context.Context, actor domain.Actor, purpose ownerapp.UploadPurpose, files []ownerapp.UploadFile) ([]ownerapp.StoredFile, error)
}

// Handler serves the authenticated /me routes.
type Handler struct {
	logger    *slog.Logger
	listings  ListingCommands
	uploads   Uploader
	validator *common.Validator
}

// Config provides dependencies for Handler. Uploads may be nil when no media
// bucket is configured.
type Config struct {
	Logger    *slog.Logger
	Listings  ListingCommands
	Uploads   Uploader
	Validator *common.Validator
}

func NewHandler(cfg Config) *Handler {
	v := cfg.Validator
	if v == nil {
		v = common.NewValidator()
	}
	return &Handler{
		logger:    cfg.Logger,
		listings:  cfg.Listings,
		uploads:   cfg.Uploads,
		validator: v,
	}
}

// Register mounts the owner routes behind authMiddleware.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me/listings", h.mineHandler())
		r.Post("/me/listings/{kind}", h.createHandler())
		r.Get("/me/listings/{kind}/{id}", h.detailHandler())
		r.Patch("/me/listings/{kind}/{id}", h.updateHandler())
		r.Post("/me/listings/{kind}/{id}/photos", h.photoHandler())
		r.Post("/me/uploads", h.uploadHandler())
	})
}
