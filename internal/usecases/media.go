package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/pkg/logger"
)

// MediaStore persists uploaded images.
type MediaStore interface {
	Save(ctx context.Context, dir, filename string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

type imageField struct {
	media    MediaStore
	dir      string
	maxBytes int64
}

// apply resolves the image URL for a write: an upload wins over an explicit
// URL, and nil inputs keep current.
func (f imageField) apply(ctx context.Context, current string, url *string, upload *entities.Upload) (string, error) {
	if upload != nil {
		if f.media == nil {
			return "", domainerrors.NewError("image uploads are not configured", domainerrors.ErrBadRequest)
		}
		if f.maxBytes > 0 && int64(len(upload.Data)) > f.maxBytes {
			return "", fieldError("image", fmt.Sprintf("image must be at most %d bytes", f.maxBytes))
		}
		return f.media.Save(ctx, f.dir, upload.Filename, upload.Data)
	}
	if url != nil {
		return *url, nil
	}
	return current, nil
}

// release drops an image that is no longer referenced. Failures only log.
func (f imageField) release(ctx context.Context, url string) {
	if f.media == nil || url == "" {
		return
	}
	if err := f.media.Delete(ctx, url); err != nil {
		logger.Warn(ctx, "Failed to delete media", zap.String("url", url), zap.Error(err))
	}
}
