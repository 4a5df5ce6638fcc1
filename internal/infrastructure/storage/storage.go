package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"sarb.backend/internal/config"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/pkg/utils"
)

// MediaStorage persists uploaded images and returns the URL they are served from.
type MediaStorage interface {
	Save(ctx context.Context, dir, filename string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

// ValidateImage sniffs data and rejects anything that is not a raster image
// or is larger than maxBytes (0 disables the size check).
func ValidateImage(data []byte, maxBytes int64) (*mimetype.MIME, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image is empty: %w", domainerrors.ErrInvalidInput)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes: %w", maxBytes, domainerrors.ErrInvalidInput)
	}
	mime := mimetype.Detect(data)
	if _, ok := allowedImageTypes[mime.String()]; !ok {
		return nil, fmt.Errorf("%s is not an accepted image type: %w", mime.String(), domainerrors.ErrUnsupportedMedia)
	}
	return mime, nil
}

var unsafeName = regexp.MustCompile(`[^a-z0-9._-]+`)

// objectName builds a collision free name keeping a readable stem.
func objectName(filename, ext string) string {
	base := strings.ToLower(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.Trim(unsafeName.ReplaceAllString(base, "-"), "-.")
	if len(base) > 40 {
		base = base[:40]
	}
	if base == "" {
		base = "image"
	}
	return utils.NewID() + "-" + base + ext
}

// New returns the backend selected by cfg.
func New(ctx context.Context, cfg config.MediaConfig) (MediaStorage, error) {
	switch cfg.Backend {
	case config.MediaBackendLocal, "":
		return NewLocalStorage(cfg.Root, cfg.BaseURL)
	case config.MediaBackendS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported media backend %q", cfg.Backend)
	}
}
