package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	publicapp "github.com/hostlink-ma/hostlink-services/api/internal/public/application"
)

// listingListHandler serves the approved directory of one kind, premium first.
func (h *Handler) listingListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		query := r.URL.Query()
		filter := publicapp.ListingFilter{
			City:        strings.TrimSpace(query.Get("city")),
			Service:     strings.TrimSpace(query.Get("service")),
			Keyword:     strings.TrimSpace(query.Get("q")),
			PremiumOnly: common.ParseBool(query.Get("premium")),
		}
		page, limit := common.PageParams(r, 20)
		lang := common.Language(r)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listings, err := h.directory.List(ctx, kind, filter, publicapp.Paging{Page: page, Limit: limit})
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to load listings")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, listingListResponse{
			Items: ratedListings(listings, lang),
			Page:  page,
			Limit: limit,
		})
	}
}

func (h *Handler) searchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := common.PageParams(r, 20)
		lang := common.Language(r)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listings, err := h.directory.Search(ctx, r.URL.Query().Get("q"), publicapp.Paging{Page: page, Limit: limit})
		if err != nil {
			common.WriteError(h.logger, w, r, err, "search failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, listingListResponse{
			Items: ratedListings(listings, lang),
			Page:  page,
			Limit: limit,
		})
	}
}

// listingProfileHandler returns 404 for listings that are not approved.
func (h *Handler) listingProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}
		lang := common.Language(r)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		profile, err := h.directory.Profile(ctx, kind, common.IDParam(r))
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to load listing")
			return
		}

		reviews := make([]common.ReviewResponse, 0, len(profile.Reviews))
		for _, review := range profile.Reviews {
			reviews = append(reviews, common.NewReviewResponse(review, false))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, profileResponse{
			Listing: common.NewPublicListingResponse(profile.Listing, profile.Rating, lang),
			Reviews: reviews,
			Rating:  common.NewRatingResponse(profile.Rating),
		})
	}
}

func ratedListings(listings []publicapp.RatedListing, lang string) []common.PublicListingResponse {
	items := make([]common.PublicListingResponse, 0, len(listings))
	for _, item := range listings {
		items = append(items, common.NewPublicListingResponse(item.Listing, item.Rating, lang))
	}
	return items
}
