package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
)

const (
	MinRating          = 1
	MaxRating          = 5
	MinCommentRunes    = 10
	MaxCommentRunes    = 2000
	MaxAuthorNameRunes = 100
)

// ReviewTarget points a review at exactly one listing of one kind.
// The zero value is invalid; build targets with NewReviewTarget or the kind helpers.
type ReviewTarget struct {
	kind      Kind
	listingID string
}

// NewReviewTarget validates kind and id.
func NewReviewTarget(kind Kind, listingID string) (ReviewTarget, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return ReviewTarget{}, err
	}
	id := strings.TrimSpace(listingID)
	if id == "" {
		return ReviewTarget{}, fmt.Errorf("review target id is required: %w", apperrors.ErrValidation)
	}
	return ReviewTarget{kind: kind, listingID: id}, nil
}

func ConciergeTarget(id string) ReviewTarget { return ReviewTarget{kind: KindConcierge, listingID: id} }
func CleaningTarget(id string) ReviewTarget  { return ReviewTarget{kind: KindCleaning, listingID: id} }
func DesignerTarget(id string) ReviewTarget  { return ReviewTarget{kind: KindDesigner, listingID: id} }

func (t ReviewTarget) Kind() Kind        { return t.kind }
func (t ReviewTarget) ListingID() string { return t.listingID }

// IsZero reports whether the target was never set.
func (t ReviewTarget) IsZero() bool { return t.kind == "" && t.listingID == "" }

func (t ReviewTarget) String() string {
	return fmt.Sprintf("%s/%s", t.kind, t.listingID)
}

// Review is a visitor review awaiting or past moderation.
type Review struct {
	ID         string
	Target     ReviewTarget
	AuthorName string
	Rating     int
	Comment    string
	Status     Status
	CreatedAt  time.Time
}

// NewReview validates the visitor input and returns a pending review.
func NewReview(target ReviewTarget, authorName string, rating int, comment string, now time.Time) (Review, error) {
	if target.IsZero() {
		return Review{}, fmt.Errorf("review target is required: %w", apperrors.ErrValidation)
	}
	author := strings.TrimSpace(authorName)
	if author == "" {
		return Review{}, fmt.Errorf("author name is required: %w", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(author) > MaxAuthorNameRunes {
		return Review{}, fmt.Errorf("author name must be at most %d characters: %w", MaxAuthorNameRunes, apperrors.ErrValidation)
	}
	if rating < MinRating || rating > MaxRating {
		return Review{}, fmt.Errorf("rating must be between %d and %d: %w", MinRating, MaxRating, apperrors.ErrValidation)
	}
	text := strings.TrimSpace(comment)
	length := utf8.RuneCountInString(text)
	if length < MinCommentRunes || length > MaxCommentRunes {
		return Review{}, fmt.Errorf("comment must be %d-%d characters: %w", MinCommentRunes, MaxCommentRunes, apperrors.ErrValidation)
	}
	return Review{
		Target:     target,
		AuthorName: author,
		Rating:     rating,
		Comment:    text,
		Status:     StatusPending,
		CreatedAt:  now,
	}, nil
}

// RatingSummary is the aggregate rating of one target.
type RatingSummary struct {
	Average float64
	Count   int
}

// SummarizeRatings averages the approved reviews in reviews. Pending and
// rejected reviews are ignored. An empty input yields a zero summary.
func SummarizeRatings(reviews []Review) RatingSummary {
	sum, count := 0, 0
	for _, review := range reviews {
		if review.Status != StatusApproved {
			continue
		}
		sum += review.Rating
		count++
	}
	if count == 0 {
		return RatingSummary{}
	}
	return RatingSummary{Average: float64(sum) / float64(count), Count: count}
}
