package usecases

import (
	"context"
	"strconv"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/internal/domain/repositories"
)

// ServiceUsecase manages the offerings on the services page.
type ServiceUsecase struct {
	repo repositories.ServiceRepository
	uow  repositories.UnitOfWork
}

func NewServiceUsecase(repo repositories.ServiceRepository, uow repositories.UnitOfWork) *ServiceUsecase {
	return &ServiceUsecase{repo: repo, uow: uow}
}

func (u *ServiceUsecase) List(ctx context.Context) ([]*entities.Service, error) {
	return u.repo.List(ctx)
}

// Get looks a service up by numeric id or by slug.
func (u *ServiceUsecase) Get(ctx context.Context, ref string) (*entities.Service, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return u.repo.GetByID(ctx, id)
	}
	return u.repo.GetBySlug(ctx, ref)
}

func (u *ServiceUsecase) Create(ctx context.Context, input *entities.ServiceInput) (*entities.Service, error) {
	service := &entities.Service{Icon: entities.IconCategory}
	if err := applyServiceInput(service, input); err != nil {
		return nil, err
	}
	if err := validateService(service); err != nil {
		return nil, err
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		slug, err := resolveSlug(txCtx, input.Slug, service.Name, "service", 0, u.repo.SlugExists)
		if err != nil {
			return err
		}
		service.Slug = slug
		return u.repo.Create(txCtx, service)
	})
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (u *ServiceUsecase) Update(ctx context.Context, id int64, input *entities.ServiceInput) (*entities.Service, error) {
	var service *entities.Service
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		service, err = u.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := applyServiceInput(service, input); err != nil {
			return err
		}
		if err := validateService(service); err != nil {
			return err
		}
		if input.Slug != nil {
			slug, err := resolveSlug(txCtx, input.Slug, service.Name, "service", id, u.repo.SlugExists)
			if err != nil {
				return err
			}
			service.Slug = slug
		}
		return u.repo.Update(txCtx, service)
	})
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (u *ServiceUsecase) Delete(ctx context.Context, id int64) error {
	return u.repo.Delete(ctx, id)
}

func applyServiceInput(service *entities.Service, input *entities.ServiceInput) error {
	setString(&service.Name, input.NameValue())
	setString(&service.Description, input.Description)
	setList(&service.Features, input.Features)
	setInt(&service.Order, input.Order)
	if input.Icon != nil {
		icon, err := entities.ParseIcon(*input.Icon)
		if err != nil {
			return fieldError("icon", err.Error())
		}
		service.Icon = icon
	}
	return nil
}

func validateService(service *entities.Service) error {
	return requireFields(map[string]string{
		"name":        service.Name,
		"description": service.Description,
	})
}
