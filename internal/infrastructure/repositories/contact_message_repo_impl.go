package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/infrastructure/models"
	"sarb.backend/pkg/utils"
)

type ContactMessageRepository struct {
	db *gorm.DB
}

func NewContactMessageRepository(db *gorm.DB) *ContactMessageRepository {
	return &ContactMessageRepository{db: db}
}

func (r *ContactMessageRepository) Create(ctx context.Context, msg *entities.ContactMessage) error {
	m := r.toModel(msg)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	*msg = *r.toEntity(m)
	return nil
}

func (r *ContactMessageRepository) GetByID(ctx context.Context, id int64) (*entities.ContactMessage, error) {
	var m models.ContactMessage
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *ContactMessageRepository) List(ctx context.Context, filter entities.ContactMessageFilter, page utils.PaginationParams) ([]*entities.ContactMessage, int64, error) {
	filtered := func(db *gorm.DB) *gorm.DB {
		if filter.IsRead != nil {
			return db.Where("is_read = ?", *filter.IsRead)
		}
		return db
	}

	var total int64
	if err := GetDB(ctx, r.db).Model(&models.ContactMessage{}).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.ContactMessage
	if err := GetDB(ctx, r.db).
		Scopes(filtered).
		Order("created_at DESC, id DESC").
		Limit(page.PageSize).
		Offset(page.CalculateOffset()).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.ContactMessage, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *ContactMessageRepository) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&n).Error
	return n, err
}

// Update persists the read state; the submitted content is immutable.
func (r *ContactMessageRepository) Update(ctx context.Context, msg *entities.ContactMessage) error {
	result := GetDB(ctx, r.db).
		Model(&models.ContactMessage{ID: msg.ID}).
		Select("is_read", "read_at").
		Updates(&models.ContactMessage{IsRead: msg.IsRead, ReadAt: msg.ReadAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	fresh, err := r.GetByID(ctx, msg.ID)
	if err != nil {
		return err
	}
	*msg = *fresh
	return nil
}

func (r *ContactMessageRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).Delete(&models.ContactMessage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ContactMessageRepository) PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := GetDB(ctx, r.db).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.ContactMessage{})
	return result.RowsAffected, result.Error
}

func (r *ContactMessageRepository) toEntity(m *models.ContactMessage) *entities.ContactMessage {
	return &entities.ContactMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Company:   m.Company,
		Message:   m.Message,
		IsRead:    m.IsRead,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}

func (r *ContactMessageRepository) toModel(e *entities.ContactMessage) *models.ContactMessage {
	return &models.ContactMessage{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Company:   e.Company,
		Message:   e.Message,
		IsRead:    e.IsRead,
		ReadAt:    e.ReadAt,
		CreatedAt: e.CreatedAt,
	}
}
