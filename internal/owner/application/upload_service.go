package application

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
)

const (
	MaxLogoBytes           = 10 << 20
	MaxPortfolioBatchBytes = 100 << 20
	MaxPortfolioBatchFiles = 30
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadService stores owner media under owners/{ownerID}/{purpose}/.
type UploadService struct {
	storage ObjectStorage
	now     func() time.Time
	newID   func() string
}

func NewUploadService(storage ObjectStorage) *UploadService {
	return &UploadService{
		storage: storage,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Upload validates the batch against the purpose policy, sniffs each file's
// type from its content and saves it. Nothing is stored if any file fails.
func (s *UploadService) Upload(ctx context.Context, actor domain.Actor, purpose UploadPurpose, files []UploadFile) ([]StoredFile, error) {
	if err := actor.RequireIdentity(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files uploaded: %w", apperrors.ErrValidation)
	}

	var limitPerFile, limitTotal int64
	switch purpose {
	case UploadLogo:
		if len(files) != 1 {
			return nil, fmt.Errorf("a logo upload takes exactly one file: %w", apperrors.ErrValidation)
		}
		limitPerFile, limitTotal = MaxLogoBytes, MaxLogoBytes
	case UploadPortfolio:
		if len(files) > MaxPortfolioBatchFiles {
			return nil, fmt.Errorf("at most %d files per batch: %w", MaxPortfolioBatchFiles, apperrors.ErrValidation)
		}
		limitPerFile, limitTotal = MaxPortfolioBatchBytes, MaxPortfolioBatchBytes
	default:
		return nil, fmt.Errorf("unknown upload purpose %q: %w", purpose, apperrors.ErrValidation)
	}

	type prepared struct {
		data        []byte
		contentType string
		ext         string
	}
	batch := make([]prepared, 0, len(files))
	var total int64
	for _, file := range files {
		data, err := io.ReadAll(io.LimitReader(file.Body, limitPerFile+1))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file.Name, err)
		}
		size := int64(len(data))
		if size == 0 {
			return nil, fmt.Errorf("%s is empty: %w", file.Name, apperrors.ErrValidation)
		}
		if size > limitPerFile {
			return nil, fmt.Errorf("%s exceeds %d MB: %w", file.Name, limitPerFile>>20, apperrors.ErrValidation)
		}
		total += size
		if total > limitTotal {
			return nil, fmt.Errorf("upload batch exceeds %d MB: %w", limitTotal>>20, apperrors.ErrValidation)
		}
		mtype := mimetype.Detect(data)
		ext, ok := allowedImageTypes[mtype.String()]
		if !ok {
			return nil, fmt.Errorf("%s has unsupported type %s: %w", file.Name, mtype.String(), apperrors.ErrValidation)
		}
		batch = append(batch, prepared{data: data, contentType: mtype.String(), ext: ext})
	}

	stored := make([]StoredFile, 0, len(batch))
	for _, item := range batch {
		key := path.Join("owners", actor.ID, string(purpose), s.newID()+item.ext)
		if err := s.storage.Save(ctx, key, bytes.NewReader(item.data), item.contentType); err != nil {
			return nil, fmt.Errorf("save %s: %w: %w", key, apperrors.ErrDependency, err)
		}
		stored = append(stored, StoredFile{
			Key:         key,
			URL:         s.storage.PublicURL(key),
			ContentType: item.contentType,
			Size:        int64(len(item.data)),
			UploadedAt:  s.now(),
		})
	}
	return stored, nil
}
