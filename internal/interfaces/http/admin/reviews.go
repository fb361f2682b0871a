package admin

import (
	"context"
	"net/http"
	"strings"

	adminapp "github.com/hostlink-ma/hostlink-services/api/internal/admin/application"
	calcapp "github.com/hostlink-ma/hostlink-services/api/internal/calculator/application"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
)

func (h *Handler) reviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := adminapp.ReviewFilter{ListingID: strings.TrimSpace(query.Get("listingId"))}

		var err error
		if raw := strings.TrimSpace(query.Get("status")); raw != "" {
			if filter.Status, err = domain.ParseStatus(raw); err != nil {
				common.WriteError(h.logger, w, r, err, "")
				return
			}
		}
		if raw := strings.TrimSpace(query.Get("kind")); raw != "" {
			if filter.Kind, err = domain.ParseKind(raw); err != nil {
				common.WriteError(h.logger, w, r, err, "")
				return
			}
		}
		page, limit := common.PageParams(r, 20)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		reviews, err := h.moderation.Reviews(ctx, common.ActorFromContext(ctx), filter, adminapp.Paging{Page: page, Limit: limit})
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to list reviews")
			return
		}

		items := make([]common.ReviewResponse, 0, len(reviews))
		for _, review := range reviews {
			items = append(items, common.NewReviewResponse(review, true))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, reviewListResponse{Items: items, Page: page, Limit: limit})
	}
}

func (h *Handler) reviewStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
		h.decideReview(w, r, target)
	}
}

func (h *Handler) reviewDecisionHandler(target domain.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.decideReview(w, r, target)
	}
}

func (h *Handler) decideReview(w http.ResponseWriter, r *http.Request, target domain.Status) {
	ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
	defer cancel()

	review, err := h.moderation.SetReviewStatus(ctx, common.ActorFromContext(ctx), common.IDParam(r), target)
	if err != nil {
		common.WriteError(h.logger, w, r, err, "failed to update review status")
		return
	}
	common.WriteJSON(h.logger, w, http.StatusOK, common.NewReviewResponse(review, true))
}

func (h *Handler) leadListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := common.ActorFromContext(r.Context())
		if err := actor.RequireAdmin(); err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}
		page, limit := common.PageParams(r, 50)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		leads, err := h.leads.List(ctx, calcapp.Paging{Page: page, Limit: limit})
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to list leads")
			return
		}

		items := make([]leadResponse, 0, len(leads))
		for _, lead := range leads {
			items = append(items, leadResponse{
				ID:         lead.ID,
				Email:      lead.Email,
				Inputs:     common.NewInputsResponse(lead.Inputs),
				Estimate:   common.NewEstimateResponse(lead.Estimate),
				CapturedAt: lead.CapturedAt,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, leadListResponse{Items: items, Page: page, Limit: limit})
	}
}
