package usecases

import (
	"context"
	"fmt"
	"strings"

	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/pkg/utils"
)

const maxSlugSuffix = 1000

type slugChecker func(ctx context.Context, slug string, excludeID int64) (bool, error)

// uniqueSlug returns base, or base-1, base-2 ... when taken by another row.
func uniqueSlug(ctx context.Context, base string, excludeID int64, exists slugChecker) (string, error) {
	candidate := base
	for i := 1; i <= maxSlugSuffix; i++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", domainerrors.NewError("could not allocate a unique slug", domainerrors.ErrAlreadyExists)
}

// resolveSlug normalises an explicit slug, or derives one from source when
// blank. Explicit slugs must be free; derived ones get a numeric suffix.
func resolveSlug(ctx context.Context, explicit *string, source, fallback string, excludeID int64, exists slugChecker) (string, error) {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		slug := utils.Slugify(*explicit)
		if slug == "" {
			return "", fieldError("slug", "enter a valid slug")
		}
		taken, err := exists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", domainerrors.Conflict("slug already in use").WithDetails(map[string]string{"slug": "already in use"})
		}
		return slug, nil
	}
	base := utils.Slugify(source)
	if base == "" {
		base = fallback
	}
	return uniqueSlug(ctx, base, excludeID, exists)
}

// requireFields reports every blank field by name.
func requireFields(fields map[string]string) error {
	details := map[string]string{}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			details[name] = "this field is required"
		}
	}
	if len(details) == 0 {
		return nil
	}
	return domainerrors.BadRequest("Validation error").WithDetails(details)
}

func fieldError(field, message string) error {
	return domainerrors.BadRequest(message).WithDetails(map[string]string{field: message})
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setList(dst *entities.StringList, src *entities.StringList) {
	if src != nil {
		*dst = entities.ParseStringList(*src)
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
