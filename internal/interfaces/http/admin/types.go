package admin

import (
	"time"

	adminapp "github.com/hostlink-ma/hostlink-services/api/internal/admin/application"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
)

type listingListResponse struct {
	Items []common.ListingResponse `json:"items"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type premiumRequest struct {
	IsPremium *bool `json:"isPremium" validate:"required"`
}

type photoRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

type pendingPhotosResponse struct {
	Kind      string   `json:"kind"`
	ListingID string   `json:"listingId"`
	Name      string   `json:"name"`
	Approved  []string `json:"approved"`
	Pending   []string `json:"pending"`
}

func newPendingPhotosResponse(item adminapp.PendingPhotos) pendingPhotosResponse {
	return pendingPhotosResponse{
		Kind:      item.Kind.String(),
		ListingID: item.ListingID,
		Name:      item.Name,
		Approved:  item.Approved,
		Pending:   item.Pending,
	}
}

type reviewListResponse struct {
	Items []common.ReviewResponse `json:"items"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

type statsResponse struct {
	Listings      map[string]map[string]int64 `json:"listings"`
	Reviews       map[string]int64            `json:"reviews"`
	PendingPhotos int64                       `json:"pendingPhotos"`
}

func newStatsResponse(stats adminapp.Stats) statsResponse {
	resp := statsResponse{
		Listings:      make(map[string]map[string]int64, len(stats.Listings)),
		Reviews:       make(map[string]int64, len(stats.Reviews)),
		PendingPhotos: stats.PendingPhotos,
	}
	for kind, counts := range stats.Listings {
		byStatus := make(map[string]int64, len(counts))
		for status, n := range counts {
			byStatus[status.String()] = n
		}
		resp.Listings[kind.String()] = byStatus
	}
	for status, n := range stats.Reviews {
		resp.Reviews[status.String()] = n
	}
	return resp
}

type leadResponse struct {
	ID         string                  `json:"id"`
	Email      string                  `json:"email"`
	Inputs     common.InputsResponse   `json:"inputs"`
	Estimate   common.EstimateResponse `json:"estimate"`
	CapturedAt time.Time               `json:"capturedAt"`
}

type leadListResponse struct {
	Items []leadResponse `json:"items"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
