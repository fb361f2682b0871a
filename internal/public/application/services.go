package application

import (
	"context"

	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
)

// ListingQueryRepository reads listings for visitors. Implementations must only
// ever return approved listings.
type ListingQueryRepository interface {
	FindApproved(ctx context.Context, kind domain.Kind, filter ListingFilter, paging Paging) ([]domain.Listing, error)
	FindApprovedByID(ctx context.Context, kind domain.Kind, id string) (domain.Listing, error)
}

// ReviewRepository reads approved reviews and stores new submissions.
type ReviewRepository interface {
	Create(ctx context.Context, review domain.Review) (string, error)
	FindApprovedByTarget(ctx context.Context, target domain.ReviewTarget, paging Paging) ([]domain.Review, error)
	// RatingSummaries aggregates approved reviews per listing id.
	RatingSummaries(ctx context.Context, kind domain.Kind, ids []string) (map[string]domain.RatingSummary, error)
}

// SubmissionNotifier alerts the admin channels about new content.
type SubmissionNotifier interface {
	ReviewSubmitted(ctx context.Context, review domain.Review, listingName string)
}

// ListingFilter expresses visitor search criteria.
type ListingFilter struct {
	City        string
	Service     string
	Keyword     string
	PremiumOnly bool
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// RatedListing is an approved listing with its rating aggregate.
type RatedListing struct {
	Listing domain.Listing
	Rating  domain.RatingSummary
}

// Profile is the public profile page of a listing.
type Profile struct {
	Listing domain.Listing
	Reviews []domain.Review
	Rating  domain.RatingSummary
}

// SubmitReviewCommand is a visitor review submission.
type SubmitReviewCommand struct {
	Kind       domain.Kind
	ListingID  string
	AuthorName string
	Rating     int
	Comment    string
}
