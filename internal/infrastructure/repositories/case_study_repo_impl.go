package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/infrastructure/models"
)

type CaseStudyRepository struct {
	db *gorm.DB
}

func NewCaseStudyRepository(db *gorm.DB) *CaseStudyRepository {
	return &CaseStudyRepository{db: db}
}

func (r *CaseStudyRepository) Create(ctx context.Context, study *entities.CaseStudy) error {
	m := r.toModel(study)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateUniqueErr(err)
	}
	*study = *r.toEntity(m)
	return nil
}

func (r *CaseStudyRepository) GetByID(ctx context.Context, id int64) (*entities.CaseStudy, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *CaseStudyRepository) GetBySlug(ctx context.Context, slug string) (*entities.CaseStudy, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *CaseStudyRepository) first(ctx context.Context, query string, arg interface{}) (*entities.CaseStudy, error) {
	var m models.CaseStudy
	if err := GetDB(ctx, r.db).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *CaseStudyRepository) List(ctx context.Context) ([]*entities.CaseStudy, error) {
	var ms []models.CaseStudy
	if err := GetDB(ctx, r.db).Order("display_order ASC, title ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.CaseStudy, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *CaseStudyRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return slugExists(GetDB(ctx, r.db).Model(&models.CaseStudy{}), slug, excludeID)
}

// MaxOrder returns the highest display order, or 0 when there are no rows.
func (r *CaseStudyRepository) MaxOrder(ctx context.Context) (int, error) {
	var highest int
	row := GetDB(ctx, r.db).Model(&models.CaseStudy{}).Select("COALESCE(MAX(display_order), 0)").Row()
	if err := row.Scan(&highest); err != nil {
		return 0, err
	}
	return highest, nil
}

func (r *CaseStudyRepository) Update(ctx context.Context, study *entities.CaseStudy) error {
	result := GetDB(ctx, r.db).
		Model(&models.CaseStudy{ID: study.ID}).
		Select("title", "slug", "description", "client_name", "client_industry", "challenge", "solution",
			"results", "technologies", "image", "display_order", "updated_at").
		Updates(r.toModel(study))
	if result.Error != nil {
		return translateUniqueErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	fresh, err := r.GetByID(ctx, study.ID)
	if err != nil {
		return err
	}
	*study = *fresh
	return nil
}

func (r *CaseStudyRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).Delete(&models.CaseStudy{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *CaseStudyRepository) DeleteAll(ctx context.Context) error {
	return GetDB(ctx, r.db).Where("1 = 1").Delete(&models.CaseStudy{}).Error
}

func (r *CaseStudyRepository) toEntity(m *models.CaseStudy) *entities.CaseStudy {
	return &entities.CaseStudy{
		ID:             m.ID,
		Title:          m.Title,
		Slug:           m.Slug,
		Description:    m.Description,
		ClientName:     m.ClientName,
		ClientIndustry: m.ClientIndustry,
		Challenge:      m.Challenge,
		Solution:       m.Solution,
		Results:        toStringList(m.Results),
		Technologies:   toStringList(m.Technologies),
		Image:          m.Image,
		Order:          m.DisplayOrder,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (r *CaseStudyRepository) toModel(e *entities.CaseStudy) *models.CaseStudy {
	return &models.CaseStudy{
		ID:             e.ID,
		Title:          e.Title,
		Slug:           e.Slug,
		Description:    e.Description,
		ClientName:     e.ClientName,
		ClientIndustry: e.ClientIndustry,
		Challenge:      e.Challenge,
		Solution:       e.Solution,
		Results:        toStringArray(e.Results),
		Technologies:   toStringArray(e.Technologies),
		Image:          e.Image,
		DisplayOrder:   e.Order,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
