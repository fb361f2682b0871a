package application

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryListings struct {
	items []domain.Listing
}

func page[T any](items []T, p Paging) []T {
	if p.Page < 1 {
		p.Page = 1
	}
	start := (p.Page - 1) * p.Limit
	if p.Limit <= 0 || start >= len(items) {
		return nil
	}
	return items[start:min(start+p.Limit, len(items))]
}

func (m *memoryListings) FindApproved(_ context.Context, kind domain.Kind, filter ListingFilter, p Paging) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range m.items {
		core := l.Core()
		if l.Kind() != kind || core.Status != domain.StatusApproved {
			continue
		}
		if filter.Keyword != "" && !domain.NewLocalizedText(core.Name, "", "").Contains(filter.Keyword) && !core.Description.Contains(filter.Keyword) {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return listedBefore(out[i].Core(), out[j].Core()) })
	return page(out, p), nil
}

func (m *memoryListings) FindApprovedByID(_ context.Context, kind domain.Kind, id string) (domain.Listing, error) {
	for _, l := range m.items {
		if l.Kind() == kind && l.Core().ID == id && l.Core().Status == domain.StatusApproved {
			return l, nil
		}
	}
	return nil, fmt.Errorf("listing %s: %w", id, apperrors.ErrNotFound)
}

type memoryReviews struct {
	items   []domain.Review
	created []domain.Review
}

func (m *memoryReviews) Create(_ context.Context, review domain.Review) (string, error) {
	review.ID = fmt.Sprintf("r%d", len(m.created)+1)
	m.created = append(m.created, review)
	return review.ID, nil
}

func (m *memoryReviews) FindApprovedByTarget(_ context.Context, target domain.ReviewTarget, p Paging) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range m.items {
		if r.Target == target && r.Status == domain.StatusApproved {
			out = append(out, r)
		}
	}
	return page(out, p), nil
}

func (m *memoryReviews) RatingSummaries(_ context.Context, kind domain.Kind, ids []string) (map[string]domain.RatingSummary, error) {
	out := map[string]domain.RatingSummary{}
	for _, id := range ids {
		var matching []domain.Review
		for _, r := range m.items {
			if r.Target.Kind() == kind && r.Target.ListingID() == id {
				matching = append(matching, r)
			}
		}
		out[id] = domain.SummarizeRatings(matching)
	}
	return out, nil
}

type recordingNotifier struct {
	listingNames []string
}

func (n *recordingNotifier) ReviewSubmitted(_ context.Context, _ domain.Review, listingName string) {
	n.listingNames = append(n.listingNames, listingName)
}

func cleaning(id, name string, status domain.Status, premium bool, created time.Time) *domain.CleaningListing {
	return &domain.CleaningListing{ListingCore: domain.ListingCore{
		ID: id, Name: name, Status: status, IsPremium: premium, CreatedAt: created,
	}}
}

func concierge(id, name string, premium bool, created time.Time) *domain.ConciergeListing {
	return &domain.ConciergeListing{ListingCore: domain.ListingCore{
		ID: id, Name: name, Status: domain.StatusApproved, IsPremium: premium, CreatedAt: created,
	}}
}

func fixture() (*memoryListings, *memoryReviews) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	listings := &memoryListings{items: []domain.Listing{
		cleaning("a", "Atlas Clean", domain.StatusApproved, false, t0),
		cleaning("b", "Bahia Menage", domain.StatusApproved, true, t0),
		cleaning("c", "Casa Shine", domain.StatusApproved, false, t0.Add(24*time.Hour)),
		cleaning("p", "Pending Co", domain.StatusPending, true, t0),
		cleaning("x", "Rejected Co", domain.StatusRejected, false, t0),
	}}
	target := domain.CleaningTarget("a")
	reviews := &memoryReviews{items: []domain.Review{
		{ID: "1", Target: target, Rating: 5, Status: domain.StatusApproved},
		{ID: "2", Target: target, Rating: 4, Status: domain.StatusApproved},
		{ID: "3", Target: target, Rating: 3, Status: domain.StatusApproved},
		{ID: "4", Target: target, Rating: 1, Status: domain.StatusPending},
	}}
	return listings, reviews
}

func TestListReturnsApprovedPremiumFirst(t *testing.T) {
	listings, reviews := fixture()
	svc := NewDirectoryService(listings, reviews)

	items, err := svc.List(context.Background(), domain.KindCleaning, ListingFilter{}, Paging{})

	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Listing.Core().ID)
		assert.Equal(t, domain.StatusApproved, item.Listing.Core().Status)
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)
	assert.Equal(t, 3, items[2].Rating.Count)
	assert.InDelta(t, 4.0, items[2].Rating.Average, 1e-9)
}

func TestProfileIgnoresPendingReviews(t *testing.T) {
	listings, reviews := fixture()
	svc := NewDirectoryService(listings, reviews)

	profile, err := svc.Profile(context.Background(), domain.KindCleaning, "a")

	require.NoError(t, err)
	assert.Len(t, profile.Reviews, 3)
	assert.Equal(t, domain.RatingSummary{Average: 4.0, Count: 3}, profile.Rating)
}

func TestProfileRatingCoversAllApprovedReviews(t *testing.T) {
	listings, _ := fixture()
	target := domain.CleaningTarget("a")
	reviews := &memoryReviews{}
	for i := 0; i < 100; i++ {
		reviews.items = append(reviews.items, domain.Review{ID: fmt.Sprintf("hi%d", i), Target: target, Rating: 5, Status: domain.StatusApproved})
	}
	for i := 0; i < 100; i++ {
		reviews.items = append(reviews.items, domain.Review{ID: fmt.Sprintf("lo%d", i), Target: target, Rating: 1, Status: domain.StatusApproved})
	}
	svc := NewDirectoryService(listings, reviews)

	profile, err := svc.Profile(context.Background(), domain.KindCleaning, "a")
	require.NoError(t, err)
	assert.Len(t, profile.Reviews, 100)
	assert.Equal(t, domain.RatingSummary{Average: 3, Count: 200}, profile.Rating)

	items, err := svc.List(context.Background(), domain.KindCleaning, ListingFilter{}, Paging{})
	require.NoError(t, err)
	for _, item := range items {
		if item.Listing.Core().ID == "a" {
			assert.Equal(t, profile.Rating, item.Rating)
		}
	}
}

func TestProfileHidesUnapprovedListings(t *testing.T) {
	listings, reviews := fixture()
	svc := NewDirectoryService(listings, reviews)

	for _, id := range []string{"p", "x"} {
		_, err := svc.Profile(context.Background(), domain.KindCleaning, id)
		assert.ErrorIs(t, err, apperrors.ErrNotFound, id)
	}
}

func TestSearch(t *testing.T) {
	listings, reviews := fixture()
	svc := NewDirectoryService(listings, reviews)

	items, err := svc.Search(context.Background(), "casa", Paging{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].Listing.Core().ID)

	_, err = svc.Search(context.Background(), "  ", Paging{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSearchPagesWalkEveryMatchOnce(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	listings := &memoryListings{}
	for i := 0; i < 4; i++ {
		created := t0.Add(time.Duration(i) * time.Hour)
		listings.items = append(listings.items,
			concierge(fmt.Sprintf("c%d", i), fmt.Sprintf("Riad Conciergerie %d", i), true, created),
			cleaning(fmt.Sprintf("m%d", i), fmt.Sprintf("Riad Menage %d", i), domain.StatusApproved, false, created),
		)
	}
	svc := NewDirectoryService(listings, &memoryReviews{})

	var seen []string
	for p := 1; p <= 4; p++ {
		items, err := svc.Search(context.Background(), "riad", Paging{Page: p, Limit: 2})
		require.NoError(t, err)
		require.Len(t, items, 2, "page %d", p)
		for _, item := range items {
			seen = append(seen, item.Listing.Core().ID)
		}
	}
	assert.Equal(t, []string{"c3", "c2", "c1", "c0", "m3", "m2", "m1", "m0"}, seen)

	items, err := svc.Search(context.Background(), "riad", Paging{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSubmitReviewStoresPending(t *testing.T) {
	listings, reviews := fixture()
	notifier := &recordingNotifier{}
	recorder := &events.Recorder{}
	svc := NewReviewService(listings, reviews, notifier, recorder)

	review, err := svc.Submit(context.Background(), SubmitReviewCommand{
		Kind: domain.KindCleaning, ListingID: "a", AuthorName: "Nadia", Rating: 5, Comment: "Appartement impeccable a chaque passage.",
	})

	require.NoError(t, err)
	assert.Equal(t, "r1", review.ID)
	assert.Equal(t, domain.StatusPending, review.Status)
	assert.Equal(t, []string{"Atlas Clean"}, notifier.listingNames)
	assert.Equal(t, []string{events.ReviewSubmitted}, recorder.Names())
}

func TestSubmitReviewRejectsInvalidInput(t *testing.T) {
	listings, reviews := fixture()
	svc := NewReviewService(listings, reviews, nil, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitReviewCommand{Kind: domain.KindCleaning, ListingID: "a", AuthorName: "N", Rating: 6, Comment: "Appartement impeccable"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Submit(ctx, SubmitReviewCommand{Kind: domain.KindCleaning, ListingID: "p", AuthorName: "N", Rating: 4, Comment: "Appartement impeccable"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Empty(t, reviews.created)
}
