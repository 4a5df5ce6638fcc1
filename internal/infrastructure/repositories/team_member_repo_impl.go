package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/infrastructure/models"
	"sarb.backend/pkg/utils"
)

const teamOrder = "display_order ASC, name ASC, id ASC"

type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

func (r *TeamMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	m := r.toModel(member)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	*member = *r.toEntity(m)
	return nil
}

func (r *TeamMemberRepository) GetByID(ctx context.Context, id int64) (*entities.TeamMember, error) {
	var m models.TeamMember
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamMemberRepository) List(ctx context.Context, page utils.PaginationParams) ([]*entities.TeamMember, int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.TeamMember{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.TeamMember
	if err := GetDB(ctx, r.db).
		Order(teamOrder).
		Limit(page.PageSize).
		Offset(page.CalculateOffset()).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), total, nil
}

func (r *TeamMemberRepository) ListAll(ctx context.Context) ([]*entities.TeamMember, error) {
	var ms []models.TeamMember
	if err := GetDB(ctx, r.db).Order(teamOrder).Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *TeamMemberRepository) Update(ctx context.Context, member *entities.TeamMember) error {
	m := r.toModel(member)
	result := GetDB(ctx, r.db).
		Model(&models.TeamMember{ID: member.ID}).
		Select("name", "position", "bio", "image", "linkedin_url", "github_url", "twitter_url", "display_order", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	fresh, err := r.GetByID(ctx, member.ID)
	if err != nil {
		return err
	}
	*member = *fresh
	return nil
}

func (r *TeamMemberRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).Delete(&models.TeamMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamMemberRepository) DeleteAll(ctx context.Context) error {
	return GetDB(ctx, r.db).Where("1 = 1").Delete(&models.TeamMember{}).Error
}

func (r *TeamMemberRepository) toEntities(ms []models.TeamMember) []*entities.TeamMember {
	items := make([]*entities.TeamMember, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items
}

func (r *TeamMemberRepository) toEntity(m *models.TeamMember) *entities.TeamMember {
	return &entities.TeamMember{
		ID:          m.ID,
		Name:        m.Name,
		Position:    m.Position,
		Bio:         m.Bio,
		Image:       m.Image,
		LinkedInURL: m.LinkedInURL,
		GithubURL:   m.GithubURL,
		TwitterURL:  m.TwitterURL,
		Order:       m.DisplayOrder,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *TeamMemberRepository) toModel(e *entities.TeamMember) *models.TeamMember {
	return &models.TeamMember{
		ID:           e.ID,
		Name:         e.Name,
		Position:     e.Position,
		Bio:          e.Bio,
		Image:        e.Image,
		LinkedInURL:  e.LinkedInURL,
		GithubURL:    e.GithubURL,
		TwitterURL:   e.TwitterURL,
		DisplayOrder: e.Order,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
