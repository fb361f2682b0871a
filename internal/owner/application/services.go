package application

import (
	"context"
	"io"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
)

// ListingRepository is the owner's view of listing storage.
type ListingRepository interface {
	Create(ctx context.Context, listing domain.Listing) (string, error)
	FindByID(ctx context.Context, kind domain.Kind, id string) (domain.Listing, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error)
	// UpdateContent overwrites the editable fields of a listing owned by ownerID.
	UpdateContent(ctx context.Context, listing domain.Listing, ownerID string) error
	// SubmitPhoto adds url to the pending queue unless it is already approved or pending.
	SubmitPhoto(ctx context.Context, kind domain.Kind, id, ownerID, url string) (bool, error)
}

// SubmissionNotifier alerts the admin channels about new listings.
type SubmissionNotifier interface {
	ListingSubmitted(ctx context.Context, listing domain.Listing)
}

// ObjectStorage stores uploaded media.
type ObjectStorage interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) error
	PublicURL(key string) string
}

// UploadPurpose selects the size policy of an upload.
type UploadPurpose string

const (
	UploadLogo      UploadPurpose = "logo"
	UploadPortfolio UploadPurpose = "portfolio"
)

// UploadFile is one file of an upload batch.
type UploadFile struct {
	Name string
	Size int64
	Body io.Reader
}

// StoredFile describes a saved upload.
type StoredFile struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
