package application

import (
	"context"

	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
)

// ListingModerationRepository exposes the atomic moderation writes on listings.
// Mutating methods report whether the document actually changed; a false result
// with a nil error means the conditional filter matched nothing.
type ListingModerationRepository interface {
	FindByID(ctx context.Context, kind domain.Kind, id string) (domain.Listing, error)
	Find(ctx context.Context, kind domain.Kind, filter ListingFilter, paging Paging) ([]domain.Listing, error)
	TransitionStatus(ctx context.Context, kind domain.Kind, id string, from, to domain.Status) (bool, error)
	SetPremium(ctx context.Context, kind domain.Kind, id string, premium bool) (bool, error)
	ApprovePhoto(ctx context.Context, kind domain.Kind, id, url string) (bool, error)
	RejectPhoto(ctx context.Context, kind domain.Kind, id, url string) (bool, error)
	ApproveAllPhotos(ctx context.Context, kind domain.Kind, id string) (bool, error)
	RejectAllPhotos(ctx context.Context, kind domain.Kind, id string) (bool, error)
	FindWithPendingPhotos(ctx context.Context, kind domain.Kind, paging Paging) ([]domain.Listing, error)
	CountWithPendingPhotos(ctx context.Context, kind domain.Kind) (int64, error)
	CountByStatus(ctx context.Context, kind domain.Kind) (map[domain.Status]int64, error)
}

// ReviewModerationRepository exposes moderation writes on reviews.
type ReviewModerationRepository interface {
	FindByID(ctx context.Context, id string) (domain.Review, error)
	Find(ctx context.Context, filter ReviewFilter, paging Paging) ([]domain.Review, error)
	TransitionStatus(ctx context.Context, id string, from, to domain.Status) (bool, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int64, error)
}

// ListingFilter expresses admin search criteria.
type ListingFilter struct {
	Status  domain.Status
	Keyword string
	OwnerID string
}

// ReviewFilter expresses admin search criteria.
type ReviewFilter struct {
	Status    domain.Status
	Kind      domain.Kind
	ListingID string
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// PendingPhotos groups the queue of one listing for the admin console.
type PendingPhotos struct {
	Kind      domain.Kind
	ListingID string
	Name      string
	Approved  []string
	Pending   []string
}

// Stats are the moderation counters shown on the admin dashboard.
type Stats struct {
	Listings map[domain.Kind]map[domain.Status]int64
	Reviews  map[domain.Status]int64
	// PendingPhotos counts listings that have at least one photo awaiting review.
	PendingPhotos int64
}
