package shop

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	shopdomain "github.com/hostlink-ma/hostlink-services/api/internal/shop/domain"
)

type productResponse struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
}

func newProductResponse(p shopdomain.Product, lang string) productResponse {
	currency := p.Currency
	if currency == "" {
		currency = shopdomain.DefaultCurrency
	}
	return productResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.LocalizedTitle(lang),
		Description: p.LocalizedDescription(lang),
		Price:       p.Price,
		Currency:    currency,
	}
}

type checkoutRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Email     string `json:"email" validate:"required,email,max=254"`
}

type checkoutResponse struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}

type purchaseResponse struct {
	Ready       bool       `json:"ready"`
	SessionID   string     `json:"sessionId"`
	ProductID   string     `json:"productId,omitempty"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
}

func (h *Handler) productListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := common.Language(r)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		products, err := h.store.Products(ctx)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to load products")
			return
		}
		items := make([]productResponse, 0, len(products))
		for _, p := range products {
			items = append(items, newProductResponse(p, lang))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) productDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := common.Language(r)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		product, err := h.store.Product(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to load product")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, newProductResponse(product, lang))
	}
}

func (h *Handler) checkoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := h.validator.DecodeJSON(r, common.MaxRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, r, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		session, err := h.store.Checkout(ctx, req.ProductID, req.Email)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "checkout is unavailable")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, checkoutResponse{SessionID: session.ID, RedirectURL: session.RedirectURL})
	}
}

// webhookHandler acknowledges replays with 200 so the gateway stops retrying.
func (h *Handler) webhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, common.MaxWebhookBody))
		if err != nil {
			common.WriteBadRequest(h.logger, w, "failed to read webhook body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		if err := h.store.HandleWebhook(ctx, payload, strings.TrimSpace(r.Header.Get(h.signatureHeader))); err != nil {
			common.WriteError(h.logger, w, r, err, "failed to record purchase")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "received"})
	}
}

// purchaseHandler answers 202 while the webhook has not landed yet.
func (h *Handler) purchaseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(chi.URLParam(r, "sessionID"))

		ctx, cancel := context.WithTimeout(r.Context(), h.confirmTimeout)
		defer cancel()

		confirmation, err := h.store.Confirm(ctx, sessionID)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to confirm purchase")
			return
		}
		if !confirmation.Ready {
			common.WriteJSON(h.logger, w, http.StatusAccepted, purchaseResponse{Ready: false, SessionID: sessionID})
			return
		}
		paidAt := confirmation.Purchase.CreatedAt
		common.WriteJSON(h.logger, w, http.StatusOK, purchaseResponse{
			Ready:       true,
			SessionID:   confirmation.Purchase.SessionID,
			ProductID:   confirmation.Purchase.ProductID,
			DownloadURL: confirmation.DownloadURL,
			PaidAt:      &paidAt,
		})
	}
}
