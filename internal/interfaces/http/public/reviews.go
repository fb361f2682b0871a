package public

import (
	"context"
	"net/http"

	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	publicapp "github.com/hostlink-ma/hostlink-services/api/internal/public/application"
)

// reviewCreateHandler accepts an anonymous review. It is stored pending and
// only shows up on the profile once approved.
func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := common.KindParam(r)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		var req reviewCreateRequest
		if err := h.validator.DecodeJSON(r, common.MaxRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		review, err := h.reviews.Submit(ctx, publicapp.SubmitReviewCommand{
			Kind:       kind,
			ListingID:  common.IDParam(r),
			AuthorName: req.AuthorName,
			Rating:     req.Rating,
			Comment:    req.Comment,
		})
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to submit review")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, common.NewReviewResponse(review, true))
	}
}
