package owner

import (
	"context"
	"net/http"

	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
)

func (h *Handler) mineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listings, err := h.listings.Mine(ctx, common.ActorFromContext(ctx))
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to load your listings")
			return
		}
		items := make([]common.ListingResponse, 0, len(listings))
		for _, listing := range listings {
			items = append(items, common.NewListingResponse(listing))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, listingListResponse{Items: items})
	}
}

func (h *Handler) createHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		var req listingRequest
		if err := h.validator.DecodeJSON(r, common.MaxRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listing, err := h.listings.Create(ctx, common.ActorFromContext(ctx), kind, req.content())
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to create listing")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, common.NewListingResponse(listing))
	}
}

func (h *Handler) detailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listing, err := h.listings.Get(ctx, common.ActorFromContext(ctx), kind, common.IDParam(r))
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to load listing")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewListingResponse(listing))
	}
}

// updateHandler merges the present fields over the stored content. Status,
// premium flag and photo queues cannot be set here.
func (h *Handler) updateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		var req listingPatchRequest
		if err := h.validator.DecodeJSON(r, common.MaxRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		actor := common.ActorFromContext(ctx)
		id := common.IDParam(r)
		current, err := h.listings.Get(ctx, actor, kind, id)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to load listing")
			return
		}
		listing, err := h.listings.Update(ctx, actor, kind, id, req.apply(domain.ContentOf(current)))
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to update listing")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewListingResponse(listing))
	}
}

func (h *Handler) photoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		var req photoRequest
		if err := h.validator.DecodeJSON(r, common.MaxRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		listing, err := h.listings.SubmitPhoto(ctx, common.ActorFromContext(ctx), kind, common.IDParam(r), req.URL)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to submit photo")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusAccepted, common.NewListingResponse(listing))
	}
}
