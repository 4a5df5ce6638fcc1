package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/infrastructure/models"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, service *entities.Service) error {
	m := r.toModel(service)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateUniqueErr(err)
	}
	*service = *r.toEntity(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*entities.Service, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ServiceRepository) GetBySlug(ctx context.Context, slug string) (*entities.Service, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *ServiceRepository) first(ctx context.Context, query string, arg interface{}) (*entities.Service, error) {
	var m models.Service
	if err := GetDB(ctx, r.db).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*entities.Service, error) {
	var ms []models.Service
	if err := GetDB(ctx, r.db).Order("display_order ASC, name ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Service, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *ServiceRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return slugExists(GetDB(ctx, r.db).Model(&models.Service{}), slug, excludeID)
}

func (r *ServiceRepository) Update(ctx context.Context, service *entities.Service) error {
	result := GetDB(ctx, r.db).
		Model(&models.Service{ID: service.ID}).
		Select("name", "slug", "description", "icon", "features", "display_order", "updated_at").
		Updates(r.toModel(service))
	if result.Error != nil {
		return translateUniqueErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	fresh, err := r.GetByID(ctx, service.ID)
	if err != nil {
		return err
	}
	*service = *fresh
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ServiceRepository) DeleteAll(ctx context.Context) error {
	return GetDB(ctx, r.db).Where("1 = 1").Delete(&models.Service{}).Error
}

func (r *ServiceRepository) toEntity(m *models.Service) *entities.Service {
	return &entities.Service{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Icon:        entities.ResolveIcon(m.Icon),
		Features:    toStringList(m.Features),
		Order:       m.DisplayOrder,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *ServiceRepository) toModel(e *entities.Service) *models.Service {
	return &models.Service{
		ID:           e.ID,
		Name:         e.Name,
		Slug:         e.Slug,
		Description:  e.Description,
		Icon:         string(e.Icon),
		Features:     toStringArray(e.Features),
		DisplayOrder: e.Order,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
