package application

import (
	"context"
	"fmt"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/events"
)

// ReviewService accepts visitor reviews into the moderation queue.
type ReviewService struct {
	listings  ListingQueryRepository
	reviews   ReviewRepository
	notifier  SubmissionNotifier
	publisher events.Publisher
	now       func() time.Time
}

func NewReviewService(listings ListingQueryRepository, reviews ReviewRepository, notifier SubmissionNotifier, publisher events.Publisher) *ReviewService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ReviewService{
		listings:  listings,
		reviews:   reviews,
		notifier:  notifier,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates the review, checks the target is publicly listed and stores
// it as pending.
func (s *ReviewService) Submit(ctx context.Context, cmd SubmitReviewCommand) (domain.Review, error) {
	target, err := domain.NewReviewTarget(cmd.Kind, cmd.ListingID)
	if err != nil {
		return domain.Review{}, err
	}
	review, err := domain.NewReview(target, cmd.AuthorName, cmd.Rating, cmd.Comment, s.now())
	if err != nil {
		return domain.Review{}, err
	}
	listing, err := s.listings.FindApprovedByID(ctx, target.Kind(), target.ListingID())
	if err != nil {
		return domain.Review{}, err
	}

	id, err := s.reviews.Create(ctx, review)
	if err != nil {
		return domain.Review{}, fmt.Errorf("store review: %w", err)
	}
	review.ID = id

	if s.notifier != nil {
		s.notifier.ReviewSubmitted(ctx, review, listing.Core().Name)
	}
	s.publisher.Publish(ctx, events.New(events.ReviewSubmitted, map[string]any{
		"reviewId":  id,
		"kind":      target.Kind().String(),
		"listingId": target.ListingID(),
		"rating":    review.Rating,
	}))
	return review, nil
}
