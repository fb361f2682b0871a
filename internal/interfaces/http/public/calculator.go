package public

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	"github.com/hostlink-ma/hostlink-services/api/internal/logging"
)

// estimateHandler is called on every form change, so incomplete or invalid
// inputs answer 200 with a null estimate instead of an error.
func (h *Handler) estimateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req calculatorInputsRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteBadRequest(h.logger, w, "malformed JSON body")
			return
		}

		resp := estimateResponse{}
		if inputs, ok := req.inputs(); ok {
			if estimate, ok := h.calculator.Estimate(inputs); ok {
				yearly := estimate.YearlyProfit()
				view := common.NewEstimateResponse(estimate)
				resp.Estimate = &view
				resp.YearlyProfit = &yearly
			}
		}
		common.WriteJSON(h.logger, w, http.StatusOK, resp)
	}
}

// leadCreateHandler recomputes the estimate server side before capturing the
// lead, then hands back the report link.
func (h *Handler) leadCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req leadCreateRequest
		if err := h.validator.DecodeJSON(r, common.MaxRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}
		inputs, ok := req.Inputs.inputs()
		if !ok {
			common.WriteError(h.logger, w, r, fmt.Errorf("purchase price, nightly rate and occupancy are required: %w", apperrors.ErrValidation), "")
			return
		}
		estimate, ok := h.calculator.Estimate(inputs)
		if !ok {
			common.WriteError(h.logger, w, r, fmt.Errorf("calculator inputs out of range: %w", apperrors.ErrValidation), "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := h.calculator.CaptureLead(ctx, req.Email, inputs, estimate)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to save lead")
			return
		}

		resp := leadCreateResponse{ID: id, Estimate: common.NewEstimateResponse(estimate)}
		if url, err := h.calculator.ReportURL(ctx); err != nil {
			logging.FromContext(r.Context(), h.logger).Warn("report link unavailable", "err", err, "lead_id", id)
		} else {
			resp.ReportURL = url
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, resp)
	}
}
