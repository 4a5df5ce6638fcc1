package repositories

import (
	"context"
	"time"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/pkg/utils"
)

type TeamMemberRepository interface {
	Create(ctx context.Context, member *entities.TeamMember) error
	GetByID(ctx context.Context, id int64) (*entities.TeamMember, error)
	List(ctx context.Context, page utils.PaginationParams) ([]*entities.TeamMember, int64, error)
	ListAll(ctx context.Context) ([]*entities.TeamMember, error)
	Update(ctx context.Context, member *entities.TeamMember) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type ServiceRepository interface {
	Create(ctx context.Context, service *entities.Service) error
	GetByID(ctx context.Context, id int64) (*entities.Service, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Service, error)
	List(ctx context.Context) ([]*entities.Service, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Update(ctx context.Context, service *entities.Service) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type CaseStudyRepository interface {
	Create(ctx context.Context, study *entities.CaseStudy) error
	GetByID(ctx context.Context, id int64) (*entities.CaseStudy, error)
	GetBySlug(ctx context.Context, slug string) (*entities.CaseStudy, error)
	List(ctx context.Context) ([]*entities.CaseStudy, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	MaxOrder(ctx context.Context) (int, error)
	Update(ctx context.Context, study *entities.CaseStudy) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type ContactMessageRepository interface {
	Create(ctx context.Context, msg *entities.ContactMessage) error
	GetByID(ctx context.Context, id int64) (*entities.ContactMessage, error)
	List(ctx context.Context, filter entities.ContactMessageFilter, page utils.PaginationParams) ([]*entities.ContactMessage, int64, error)
	CountUnread(ctx context.Context) (int64, error)
	Update(ctx context.Context, msg *entities.ContactMessage) error
	Delete(ctx context.Context, id int64) error
	// PurgeReadBefore removes read messages created before cutoff.
	PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

// UnitOfWork defines the interface for atomic operations
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
