package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeRatingsCountsApprovedOnly(t *testing.T) {
	reviews := []Review{
		{Rating: 5, Status: StatusApproved},
		{Rating: 4, Status: StatusApproved},
		{Rating: 3, Status: StatusApproved},
		{Rating: 1, Status: StatusPending},
		{Rating: 1, Status: StatusRejected},
	}

	summary := SummarizeRatings(reviews)

	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 4.0, summary.Average, 1e-9)
}

func TestSummarizeRatingsEmpty(t *testing.T) {
	assert.Equal(t, RatingSummary{}, SummarizeRatings(nil))
	assert.Equal(t, RatingSummary{}, SummarizeRatings([]Review{{Rating: 2, Status: StatusPending}}))
}

func TestNewReview(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	target := CleaningTarget("665f1c2e8a1b2c3d4e5f6a7b")

	review, err := NewReview(target, "  Salma  ", 4, "Equipe ponctuelle et soigneuse.", now)

	require.NoError(t, err)
	assert.Equal(t, StatusPending, review.Status)
	assert.Equal(t, "Salma", review.AuthorName)
	assert.Equal(t, KindCleaning, review.Target.Kind())
	assert.Equal(t, now, review.CreatedAt)
}

func TestNewReviewValidation(t *testing.T) {
	target := ConciergeTarget("abc")
	now := time.Now()
	cases := []struct {
		name    string
		target  ReviewTarget
		author  string
		rating  int
		comment string
	}{
		{"zero target", ReviewTarget{}, "Ali", 5, "Tres bon service"},
		{"missing author", target, " ", 5, "Tres bon service"},
		{"rating too low", target, "Ali", 0, "Tres bon service"},
		{"rating too high", target, "Ali", 6, "Tres bon service"},
		{"comment too short", target, "Ali", 3, "court"},
		{"comment too long", target, "Ali", 3, strings.Repeat("x", MaxCommentRunes+1)},
		{"author too long", target, strings.Repeat("a", MaxAuthorNameRunes+1), 3, "Tres bon service"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReview(tc.target, tc.author, tc.rating, tc.comment, now)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestNewReviewCountsRunesNotBytes(t *testing.T) {
	comment := strings.Repeat("خ", MinCommentRunes)

	_, err := NewReview(DesignerTarget("x"), "Youssef", 5, comment, time.Now())

	assert.NoError(t, err)
}

func TestNewReviewTarget(t *testing.T) {
	target, err := NewReviewTarget(KindDesigner, " 42 ")
	require.NoError(t, err)
	assert.Equal(t, "42", target.ListingID())
	assert.Equal(t, "designer/42", target.String())

	_, err = NewReviewTarget("hotel", "42")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = NewReviewTarget(KindDesigner, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
