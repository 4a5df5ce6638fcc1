package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/internal/domain/repositories"
	"sarb.backend/pkg/logger"
	"sarb.backend/pkg/utils"
)

// ContactUsecase handles public contact submissions and the staff inbox.
type ContactUsecase struct {
	repo repositories.ContactMessageRepository
	now  func() time.Time
}

func NewContactUsecase(repo repositories.ContactMessageRepository) *ContactUsecase {
	return &ContactUsecase{repo: repo, now: time.Now}
}

func (u *ContactUsecase) Submit(ctx context.Context, input *entities.ContactMessageInput) (*entities.ContactMessage, error) {
	msg := &entities.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Message: strings.TrimSpace(input.Message),
	}
	if company := strings.TrimSpace(input.Company); company != "" {
		msg.Company = null.StringFrom(company)
	}
	if err := requireFields(map[string]string{
		"name":    msg.Name,
		"email":   msg.Email,
		"message": msg.Message,
	}); err != nil {
		return nil, err
	}

	if err := u.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Contact message received", zap.Int64("message_id", msg.ID))
	return msg, nil
}

func (u *ContactUsecase) List(ctx context.Context, filter entities.ContactMessageFilter, page utils.PaginationParams) ([]*entities.ContactMessage, int64, error) {
	return u.repo.List(ctx, filter, page)
}

func (u *ContactUsecase) Get(ctx context.Context, id int64) (*entities.ContactMessage, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *ContactUsecase) CountUnread(ctx context.Context) (int64, error) {
	return u.repo.CountUnread(ctx)
}

// SetRead toggles the read flag; read_at is stamped when it becomes read and
// cleared when it becomes unread.
func (u *ContactUsecase) SetRead(ctx context.Context, id int64, isRead bool) (*entities.ContactMessage, error) {
	msg, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.IsRead == isRead {
		return msg, nil
	}
	msg.IsRead = isRead
	if isRead {
		msg.ReadAt = null.TimeFrom(u.now())
	} else {
		msg.ReadAt = null.Time{}
	}
	if err := u.repo.Update(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (u *ContactUsecase) Delete(ctx context.Context, id int64) error {
	return u.repo.Delete(ctx, id)
}

// PurgeRead removes read messages older than retention.
func (u *ContactUsecase) PurgeRead(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	return u.repo.PurgeReadBefore(ctx, u.now().Add(-retention))
}
