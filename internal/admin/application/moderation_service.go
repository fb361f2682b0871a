package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/events"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ModerationService drives the listing/review state machine and the photo
// queues. Every method checks the admin capability before touching storage.
type ModerationService struct {
	listings  ListingModerationRepository
	reviews   ReviewModerationRepository
	publisher events.Publisher
}

func NewModerationService(listings ListingModerationRepository, reviews ReviewModerationRepository, publisher events.Publisher) *ModerationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ModerationService{listings: listings, reviews: reviews, publisher: publisher}
}

// Listings returns listings of a kind for the console, in every state.
func (s *ModerationService) Listings(ctx context.Context, actor domain.Actor, kind domain.Kind, filter ListingFilter, paging Paging) ([]domain.Listing, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.listings.Find(ctx, kind, filter, paging)
}

// Listing returns one listing regardless of state.
func (s *ModerationService) Listing(ctx context.Context, actor domain.Actor, kind domain.Kind, id string) (domain.Listing, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.listings.FindByID(ctx, kind, id)
}

// SetListingStatus moves a pending listing to approved or rejected. Repeating
// the current decision is a no-op; reversing a decision is refused.
func (s *ModerationService) SetListingStatus(ctx context.Context, actor domain.Actor, kind domain.Kind, id string, target domain.Status) (domain.Listing, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if target != domain.StatusApproved && target != domain.StatusRejected {
		return nil, fmt.Errorf("decision must be approved or rejected: %w", apperrors.ErrValidation)
	}

	changed, err := s.listings.TransitionStatus(ctx, kind, id, domain.StatusPending, target)
	if err != nil {
		return nil, fmt.Errorf("transition listing %s: %w", id, err)
	}
	listing, err := s.listings.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !changed {
		if _, err := listing.Core().Status.Transition(target); err != nil {
			return nil, err
		}
		return listing, nil
	}

	s.publisher.Publish(ctx, events.New(events.ListingStatusChanged, map[string]any{
		"kind":      kind.String(),
		"listingId": id,
		"status":    target.String(),
		"actorId":   actor.ID,
	}))
	return listing, nil
}

// SetPremium toggles the premium flag. It never touches the status.
func (s *ModerationService) SetPremium(ctx context.Context, actor domain.Actor, kind domain.Kind, id string, premium bool) (domain.Listing, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	changed, err := s.listings.SetPremium(ctx, kind, id, premium)
	if err != nil {
		return nil, fmt.Errorf("set premium %s: %w", id, err)
	}
	listing, err := s.listings.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if changed {
		s.publisher.Publish(ctx, events.New(events.ListingPremiumSet, map[string]any{
			"kind":      kind.String(),
			"listingId": id,
			"isPremium": premium,
		}))
	}
	return listing, nil
}

// ApprovePhoto moves url from pending to approved. Unknown or already approved
// urls leave the listing unchanged.
func (s *ModerationService) ApprovePhoto(ctx context.Context, actor domain.Actor, kind domain.Kind, id, url string) (domain.Listing, error) {
	return s.photoOp(ctx, actor, kind, id, url, "approve", s.listings.ApprovePhoto)
}

// RejectPhoto removes url from pending.
func (s *ModerationService) RejectPhoto(ctx context.Context, actor domain.Actor, kind domain.Kind, id, url string) (domain.Listing, error) {
	return s.photoOp(ctx, actor, kind, id, url, "reject", s.listings.RejectPhoto)
}

// ApproveAllPhotos approves the whole pending queue in order.
func (s *ModerationService) ApproveAllPhotos(ctx context.Context, actor domain.Actor, kind domain.Kind, id string) (domain.Listing, error) {
	return s.bulkPhotoOp(ctx, actor, kind, id, "approve_all", s.listings.ApproveAllPhotos)
}

// RejectAllPhotos empties the pending queue.
func (s *ModerationService) RejectAllPhotos(ctx context.Context, actor domain.Actor, kind domain.Kind, id string) (domain.Listing, error) {
	return s.bulkPhotoOp(ctx, actor, kind, id, "reject_all", s.listings.RejectAllPhotos)
}

type photoWrite func(ctx context.Context, kind domain.Kind, id, url string) (bool, error)
type bulkPhotoWrite func(ctx context.Context, kind domain.Kind, id string) (bool, error)

func (s *ModerationService) photoOp(ctx context.Context, actor domain.Actor, kind domain.Kind, id, url, action string, write photoWrite) (domain.Listing, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("photo url is required: %w", apperrors.ErrValidation)
	}
	changed, err := write(ctx, kind, id, url)
	if err != nil {
		return nil, fmt.Errorf("%s photo on %s: %w", action, id, err)
	}
	listing, err := s.listings.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if changed {
		s.publisher.Publish(ctx, events.New(events.ListingPhotoReviewed, map[string]any{
			"kind":      kind.String(),
			"listingId": id,
			"action":    action,
			"url":       url,
		}))
	}
	return listing, nil
}

func (s *ModerationService) bulkPhotoOp(ctx context.Context, actor domain.Actor, kind domain.Kind, id, action string, write bulkPhotoWrite) (domain.Listing, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	changed, err := write(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("%s photos on %s: %w", action, id, err)
	}
	listing, err := s.listings.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if changed {
		s.publisher.Publish(ctx, events.New(events.ListingPhotoReviewed, map[string]any{
			"kind":      kind.String(),
			"listingId": id,
			"action":    action,
		}))
	}
	return listing, nil
}

// PendingPhotoQueue lists every listing with photos awaiting review, across
// kinds, oldest update first. Paging applies to the merged queue.
func (s *ModerationService) PendingPhotoQueue(ctx context.Context, actor domain.Actor, paging Paging) ([]PendingPhotos, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	paging = normalizePaging(paging)
	window := paging.Page * paging.Limit

	merged := make([]domain.Listing, 0)
	for _, kind := range domain.AllKinds {
		for page := 1; ; page++ {
			batch, err := s.listings.FindWithPendingPhotos(ctx, kind, Paging{Page: page, Limit: maxPageSize})
			if err != nil {
				return nil, fmt.Errorf("pending photos for %s: %w", kind, err)
			}
			merged = append(merged, batch...)
			if len(batch) < maxPageSize || page*maxPageSize >= window {
				break
			}
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Core().UpdatedAt.Before(merged[j].Core().UpdatedAt)
	})

	result := make([]PendingPhotos, 0, paging.Limit)
	skip := (paging.Page - 1) * paging.Limit
	for _, listing := range merged {
		core := listing.Core()
		if len(core.PortfolioPhotosPending) == 0 {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		result = append(result, PendingPhotos{
			Kind:      listing.Kind(),
			ListingID: core.ID,
			Name:      core.Name,
			Approved:  append([]string(nil), core.PortfolioPhotos...),
			Pending:   append([]string(nil), core.PortfolioPhotosPending...),
		})
		if len(result) == paging.Limit {
			break
		}
	}
	return result, nil
}

// Reviews lists reviews for moderation.
func (s *ModerationService) Reviews(ctx context.Context, actor domain.Actor, filter ReviewFilter, paging Paging) ([]domain.Review, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.reviews.Find(ctx, filter, paging)
}

// SetReviewStatus approves or rejects a pending review with the same rules as listings.
func (s *ModerationService) SetReviewStatus(ctx context.Context, actor domain.Actor, id string, target domain.Status) (domain.Review, error) {
	if err := actor.RequireAdmin(); err != nil {
		return domain.Review{}, err
	}
	if target != domain.StatusApproved && target != domain.StatusRejected {
		return domain.Review{}, fmt.Errorf("decision must be approved or rejected: %w", apperrors.ErrValidation)
	}
	changed, err := s.reviews.TransitionStatus(ctx, id, domain.StatusPending, target)
	if err != nil {
		return domain.Review{}, fmt.Errorf("transition review %s: %w", id, err)
	}
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	if !changed {
		if _, err := review.Status.Transition(target); err != nil {
			return domain.Review{}, err
		}
		return review, nil
	}
	s.publisher.Publish(ctx, events.New(events.ReviewStatusChanged, map[string]any{
		"reviewId":  id,
		"kind":      review.Target.Kind().String(),
		"listingId": review.Target.ListingID(),
		"status":    target.String(),
		"actorId":   actor.ID,
	}))
	return review, nil
}

// ApproveReview is SetReviewStatus(approved).
func (s *ModerationService) ApproveReview(ctx context.Context, actor domain.Actor, id string) (domain.Review, error) {
	return s.SetReviewStatus(ctx, actor, id, domain.StatusApproved)
}

// RejectReview is SetReviewStatus(rejected).
func (s *ModerationService) RejectReview(ctx context.Context, actor domain.Actor, id string) (domain.Review, error) {
	return s.SetReviewStatus(ctx, actor, id, domain.StatusRejected)
}

// Stats aggregates dashboard counters.
func (s *ModerationService) Stats(ctx context.Context, actor domain.Actor) (Stats, error) {
	if err := actor.RequireAdmin(); err != nil {
		return Stats{}, err
	}
	stats := Stats{Listings: make(map[domain.Kind]map[domain.Status]int64, len(domain.AllKinds))}
	for _, kind := range domain.AllKinds {
		counts, err := s.listings.CountByStatus(ctx, kind)
		if err != nil {
			return Stats{}, fmt.Errorf("count %s listings: %w", kind, err)
		}
		stats.Listings[kind] = counts
	}
	reviewCounts, err := s.reviews.CountByStatus(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count reviews: %w", err)
	}
	stats.Reviews = reviewCounts
	for _, kind := range domain.AllKinds {
		n, err := s.listings.CountWithPendingPhotos(ctx, kind)
		if err != nil {
			return Stats{}, fmt.Errorf("count pending photos for %s: %w", kind, err)
		}
		stats.PendingPhotos += n
	}
	return stats, nil
}

func normalizePaging(p Paging) Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	return p
}
