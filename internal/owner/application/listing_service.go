package application

import (
	"context"
	"fmt"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/events"
)

// ListingService covers the provider side: onboarding, edits and photo submissions.
type ListingService struct {
	repo      ListingRepository
	notifier  SubmissionNotifier
	publisher events.Publisher
	now       func() time.Time
}

func NewListingService(repo ListingRepository, notifier SubmissionNotifier, publisher events.Publisher) *ListingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ListingService{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create submits a new listing for moderation. The owner must have a verified email.
func (s *ListingService) Create(ctx context.Context, actor domain.Actor, kind domain.Kind, content domain.ListingContent) (domain.Listing, error) {
	if err := actor.RequireIdentity(); err != nil {
		return nil, err
	}
	if !actor.EmailVerified {
		return nil, fmt.Errorf("email must be verified before listing: %w", apperrors.ErrForbidden)
	}
	listing, err := domain.NewListing(kind, actor.ID, content, s.now())
	if err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, listing)
	if err != nil {
		return nil, fmt.Errorf("store listing: %w", err)
	}
	listing.Core().ID = id

	if s.notifier != nil {
		s.notifier.ListingSubmitted(ctx, listing)
	}
	s.publisher.Publish(ctx, events.New(events.ListingSubmitted, map[string]any{
		"kind":      kind.String(),
		"listingId": id,
		"ownerId":   actor.ID,
	}))
	return listing, nil
}

// Mine returns every listing owned by the actor, including rejected ones.
func (s *ListingService) Mine(ctx context.Context, actor domain.Actor) ([]domain.Listing, error) {
	if err := actor.RequireIdentity(); err != nil {
		return nil, err
	}
	return s.repo.FindByOwner(ctx, actor.ID)
}

// Get returns one of the actor's listings in any state.
func (s *ListingService) Get(ctx context.Context, actor domain.Actor, kind domain.Kind, id string) (domain.Listing, error) {
	if err := actor.RequireIdentity(); err != nil {
		return nil, err
	}
	listing, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !listing.Core().VisibleTo(actor) {
		return nil, fmt.Errorf("listing %s: %w", id, apperrors.ErrNotFound)
	}
	return listing, nil
}

// Update replaces the editable content. Status, premium flag and photo queues
// are left as they are.
func (s *ListingService) Update(ctx context.Context, actor domain.Actor, kind domain.Kind, id string, content domain.ListingContent) (domain.Listing, error) {
	listing, err := s.owned(ctx, actor, kind, id)
	if err != nil {
		return nil, err
	}
	if err := domain.ApplyContent(listing, content); err != nil {
		return nil, err
	}
	listing.Core().UpdatedAt = s.now()
	if err := s.repo.UpdateContent(ctx, listing, actor.ID); err != nil {
		return nil, fmt.Errorf("update listing %s: %w", id, err)
	}
	s.publisher.Publish(ctx, events.New(events.ListingUpdated, map[string]any{
		"kind":      kind.String(),
		"listingId": id,
		"ownerId":   actor.ID,
	}))
	return listing, nil
}

// SubmitPhoto queues a portfolio photo for moderation.
func (s *ListingService) SubmitPhoto(ctx context.Context, actor domain.Actor, kind domain.Kind, id, url string) (domain.Listing, error) {
	photo, err := domain.NewPhotoURL(url)
	if err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, actor, kind, id); err != nil {
		return nil, err
	}
	changed, err := s.repo.SubmitPhoto(ctx, kind, id, actor.ID, photo.String())
	if err != nil {
		return nil, fmt.Errorf("submit photo to %s: %w", id, err)
	}
	listing, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if changed {
		s.publisher.Publish(ctx, events.New(events.ListingPhotoQueued, map[string]any{
			"kind":      kind.String(),
			"listingId": id,
			"url":       photo.String(),
		}))
	}
	return listing, nil
}

func (s *ListingService) owned(ctx context.Context, actor domain.Actor, kind domain.Kind, id string) (domain.Listing, error) {
	if err := actor.RequireIdentity(); err != nil {
		return nil, err
	}
	listing, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if listing.Core().OwnerID != actor.ID {
		return nil, fmt.Errorf("listing %s belongs to another owner: %w", id, apperrors.ErrForbidden)
	}
	return listing, nil
}
