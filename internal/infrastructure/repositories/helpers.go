package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/infrastructure/models"
)

func slugExists(q *gorm.DB, slug string, excludeID int64) (bool, error) {
	q = q.Where("slug = ?", slug)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateUniqueErr maps unique constraint violations from Postgres and
// SQLite to ErrAlreadyExists.
func translateUniqueErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domainerrors.ErrAlreadyExists, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", domainerrors.ErrAlreadyExists, pqErr.Constraint)
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505") {
		return fmt.Errorf("%w: %v", domainerrors.ErrAlreadyExists, err)
	}
	return err
}

func toStringArray(l entities.StringList) models.StringArray {
	if l == nil {
		return models.StringArray{}
	}
	return models.StringArray(l)
}

func toStringList(a models.StringArray) entities.StringList {
	if a == nil {
		return entities.StringList{}
	}
	return entities.StringList(a)
}
