package admin

import (
	"context"
	"net/http"
	"strings"

	adminapp "github.com/hostlink-ma/hostlink-services/api/internal/admin/application"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
)

func (h *Handler) listingListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		query := r.URL.Query()
		filter := adminapp.ListingFilter{
			Keyword: strings.TrimSpace(query.Get("q")),
			OwnerID: strings.TrimSpace(query.Get("ownerId")),
		}
		if raw := strings.TrimSpace(query.Get("status")); raw != "" {
			if filter.Status, err = domain.ParseStatus(raw); err != nil {
				common.WriteError(h.logger, w, r, err, "")
				return
			}
		}
		page, limit := common.PageParams(r, 20)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listings, err := h.moderation.Listings(ctx, common.ActorFromContext(ctx), kind, filter, adminapp.Paging{Page: page, Limit: limit})
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to list listings")
			return
		}

		items := make([]common.ListingResponse, 0, len(listings))
		for _, listing := range listings {
			items = append(items, common.NewListingResponse(listing))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, listingListResponse{Items: items, Page: page, Limit: limit})
	}
}

func (h *Handler) listingDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listing, err := h.moderation.Listing(ctx, common.ActorFromContext(ctx), kind, common.IDParam(r))
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to load listing")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewListingResponse(listing))
	}
}

func (h *Handler) listingStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		var req statusRequest
		if err := h.validator.DecodeJSON(r, common.MaxRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}
		target, err := domain.ParseDecision(req.Status)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listing, err := h.moderation.SetListingStatus(ctx, common.ActorFromContext(ctx), kind, common.IDParam(r), target)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to update listing status")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewListingResponse(listing))
	}
}

func (h *Handler) listingPremiumHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		var req premiumRequest
		if err := h.validator.DecodeJSON(r, common.MaxRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listing, err := h.moderation.SetPremium(ctx, common.ActorFromContext(ctx), kind, common.IDParam(r), *req.IsPremium)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to update premium flag")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewListingResponse(listing))
	}
}

type photoAction int

const (
	photoApprove photoAction = iota
	photoReject
	photoApproveAll
	photoRejectAll
)

func (a photoAction) bulk() bool {
	return a == photoApproveAll || a == photoRejectAll
}

// photoHandler serves the four queue operations. Single-photo actions take
// {"url": "..."}; bulk actions ignore the body.
func (h *Handler) photoHandler(action photoAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		var req photoRequest
		if !action.bulk() {
			if err := h.validator.DecodeJSON(r, common.MaxRequestBody, &req); err != nil {
				common.WriteError(h.logger, w, r, err, "")
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		actor := common.ActorFromContext(ctx)
		id := common.IDParam(r)
		var listing domain.Listing
		switch action {
		case photoApprove:
			listing, err = h.moderation.ApprovePhoto(ctx, actor, kind, id, req.URL)
		case photoReject:
			listing, err = h.moderation.RejectPhoto(ctx, actor, kind, id, req.URL)
		case photoApproveAll:
			listing, err = h.moderation.ApproveAllPhotos(ctx, actor, kind, id)
		case photoRejectAll:
			listing, err = h.moderation.RejectAllPhotos(ctx, actor, kind, id)
		}
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to moderate photos")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewListingResponse(listing))
	}
}

func (h *Handler) pendingPhotosHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := common.PageParams(r, 50)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		queue, err := h.moderation.PendingPhotoQueue(ctx, common.ActorFromContext(ctx), adminapp.Paging{Page: page, Limit: limit})
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to load photo queue")
			return
		}
		items := make([]pendingPhotosResponse, 0, len(queue))
		for _, item := range queue {
			items = append(items, newPendingPhotosResponse(item))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) statsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		stats, err := h.moderation.Stats(ctx, common.ActorFromContext(ctx))
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to load stats")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, newStatsResponse(stats))
	}
}
