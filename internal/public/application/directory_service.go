package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxProfileItems = 100
)

// DirectoryService answers visitor queries. Everything it returns is approved.
type DirectoryService struct {
	listings ListingQueryRepository
	reviews  ReviewRepository
}

func NewDirectoryService(listings ListingQueryRepository, reviews ReviewRepository) *DirectoryService {
	return &DirectoryService{listings: listings, reviews: reviews}
}

// List returns approved listings of a kind, premium first, each with its rating.
func (s *DirectoryService) List(ctx context.Context, kind domain.Kind, filter ListingFilter, paging Paging) ([]RatedListing, error) {
	listings, err := s.listings.FindApproved(ctx, kind, filter, normalizePaging(paging))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return s.withRatings(ctx, kind, listings)
}

// Search runs a keyword query across all kinds. Each kind contributes its
// leading page*limit matches so the merged order is stable across pages.
func (s *DirectoryService) Search(ctx context.Context, keyword string, paging Paging) ([]RatedListing, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("search query is required: %w", apperrors.ErrValidation)
	}
	paging = normalizePaging(paging)
	window := paging.Page * paging.Limit
	filter := ListingFilter{Keyword: keyword}

	merged := make([]domain.Listing, 0)
	for _, kind := range domain.AllKinds {
		items, err := s.leadingApproved(ctx, kind, filter, window)
		if err != nil {
			return nil, err
		}
		merged = append(merged, items...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return listedBefore(merged[i].Core(), merged[j].Core())
	})

	start := (paging.Page - 1) * paging.Limit
	if start >= len(merged) {
		return []RatedListing{}, nil
	}
	end := min(start+paging.Limit, len(merged))

	byKind := map[domain.Kind][]domain.Listing{}
	for _, listing := range merged[start:end] {
		byKind[listing.Kind()] = append(byKind[listing.Kind()], listing)
	}
	result := make([]RatedListing, 0, end-start)
	for _, kind := range domain.AllKinds {
		rated, err := s.withRatings(ctx, kind, byKind[kind])
		if err != nil {
			return nil, err
		}
		result = append(result, rated...)
	}
	sortListings(result)
	return result, nil
}

// leadingApproved returns up to n approved listings of kind in directory order.
func (s *DirectoryService) leadingApproved(ctx context.Context, kind domain.Kind, filter ListingFilter, n int) ([]domain.Listing, error) {
	out := make([]domain.Listing, 0, n)
	for page := 1; len(out) < n; page++ {
		batch, err := s.listings.FindApproved(ctx, kind, filter, Paging{Page: page, Limit: maxPageSize})
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", kind, err)
		}
		out = append(out, batch...)
		if len(batch) < maxPageSize {
			break
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Profile returns an approved listing with approved reviews and their rating.
// Pending and rejected listings are reported as not found.
func (s *DirectoryService) Profile(ctx context.Context, kind domain.Kind, id string) (Profile, error) {
	listing, err := s.listings.FindApprovedByID(ctx, kind, id)
	if err != nil {
		return Profile{}, err
	}
	target, err := domain.NewReviewTarget(kind, id)
	if err != nil {
		return Profile{}, err
	}
	reviews, err := s.reviews.FindApprovedByTarget(ctx, target, Paging{Limit: maxProfileItems})
	if err != nil {
		return Profile{}, fmt.Errorf("reviews of %s: %w", target, err)
	}
	// The rating covers every approved review, not just the displayed ones.
	summaries, err := s.reviews.RatingSummaries(ctx, kind, []string{id})
	if err != nil {
		return Profile{}, fmt.Errorf("rating of %s: %w", target, err)
	}
	approved := make([]domain.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.Status == domain.StatusApproved {
			approved = append(approved, review)
		}
	}
	return Profile{
		Listing: listing,
		Reviews: approved,
		Rating:  summaries[id],
	}, nil
}

func (s *DirectoryService) withRatings(ctx context.Context, kind domain.Kind, listings []domain.Listing) ([]RatedListing, error) {
	ids := make([]string, 0, len(listings))
	for _, listing := range listings {
		ids = append(ids, listing.Core().ID)
	}
	summaries := map[string]domain.RatingSummary{}
	if len(ids) > 0 {
		var err error
		summaries, err = s.reviews.RatingSummaries(ctx, kind, ids)
		if err != nil {
			return nil, fmt.Errorf("ratings for %s: %w", kind, err)
		}
	}
	result := make([]RatedListing, 0, len(listings))
	for _, listing := range listings {
		if !listing.Core().Status.IsPublic() {
			continue
		}
		result = append(result, RatedListing{Listing: listing, Rating: summaries[listing.Core().ID]})
	}
	sortListings(result)
	return result, nil
}

// sortListings orders premium listings first, then newest.
func sortListings(items []RatedListing) {
	sort.SliceStable(items, func(i, j int) bool {
		return listedBefore(items[i].Listing.Core(), items[j].Listing.Core())
	})
}

func listedBefore(a, b *domain.ListingCore) bool {
	if a.IsPremium != b.IsPremium {
		return a.IsPremium
	}
	return a.CreatedAt.After(b.CreatedAt)
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
