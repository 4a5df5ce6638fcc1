package usecases

import (
	"context"
	"strconv"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/internal/domain/repositories"
)

// CaseStudyUsecase manages client engagement write-ups.
type CaseStudyUsecase struct {
	repo  repositories.CaseStudyRepository
	uow   repositories.UnitOfWork
	image imageField
}

func NewCaseStudyUsecase(repo repositories.CaseStudyRepository, uow repositories.UnitOfWork, media MediaStore, maxImageBytes int64) *CaseStudyUsecase {
	return &CaseStudyUsecase{
		repo:  repo,
		uow:   uow,
		image: imageField{media: media, dir: "case_studies", maxBytes: maxImageBytes},
	}
}

func (u *CaseStudyUsecase) List(ctx context.Context) ([]*entities.CaseStudy, error) {
	return u.repo.List(ctx)
}

// Get looks a case study up by numeric id or by slug.
func (u *CaseStudyUsecase) Get(ctx context.Context, ref string) (*entities.CaseStudy, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return u.repo.GetByID(ctx, id)
	}
	return u.repo.GetBySlug(ctx, ref)
}

// Create stores a new case study. Without an explicit order it is placed
// after the current last one.
func (u *CaseStudyUsecase) Create(ctx context.Context, input *entities.CaseStudyInput) (*entities.CaseStudy, error) {
	study := &entities.CaseStudy{}
	applyCaseStudyInput(study, input)
	if err := validateCaseStudy(study); err != nil {
		return nil, err
	}

	image, err := u.image.apply(ctx, "", input.Image, input.Upload)
	if err != nil {
		return nil, err
	}
	study.Image = image

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		slug, err := resolveSlug(txCtx, input.Slug, study.Title, "case-study", 0, u.repo.SlugExists)
		if err != nil {
			return err
		}
		study.Slug = slug

		if input.Order == nil {
			highest, err := u.repo.MaxOrder(txCtx)
			if err != nil {
				return err
			}
			study.Order = highest + 1
		}
		return u.repo.Create(txCtx, study)
	})
	if err != nil {
		if input.Upload != nil {
			u.image.release(ctx, image)
		}
		return nil, err
	}
	return study, nil
}

func (u *CaseStudyUsecase) Update(ctx context.Context, id int64, input *entities.CaseStudyInput) (*entities.CaseStudy, error) {
	var (
		study         *entities.CaseStudy
		previousImage string
		uploaded      string
	)
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		study, err = u.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		previousImage = study.Image

		applyCaseStudyInput(study, input)
		if err := validateCaseStudy(study); err != nil {
			return err
		}
		if input.Slug != nil {
			slug, err := resolveSlug(txCtx, input.Slug, study.Title, "case-study", id, u.repo.SlugExists)
			if err != nil {
				return err
			}
			study.Slug = slug
		}

		image, err := u.image.apply(txCtx, study.Image, input.Image, input.Upload)
		if err != nil {
			return err
		}
		if input.Upload != nil {
			uploaded = image
		}
		study.Image = image
		return u.repo.Update(txCtx, study)
	})
	if err != nil {
		u.image.release(ctx, uploaded)
		return nil, err
	}
	if previousImage != study.Image {
		u.image.release(ctx, previousImage)
	}
	return study, nil
}

func (u *CaseStudyUsecase) Delete(ctx context.Context, id int64) error {
	study, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.image.release(ctx, study.Image)
	return nil
}

func applyCaseStudyInput(study *entities.CaseStudy, input *entities.CaseStudyInput) {
	setString(&study.Title, input.Title)
	setString(&study.Description, input.Description)
	setString(&study.ClientName, input.ClientName)
	setString(&study.ClientIndustry, input.ClientIndustry)
	setString(&study.Challenge, input.Challenge)
	setString(&study.Solution, input.Solution)
	setList(&study.Results, input.Results)
	setList(&study.Technologies, input.Technologies)
	setInt(&study.Order, input.Order)
}

func validateCaseStudy(study *entities.CaseStudy) error {
	return requireFields(map[string]string{
		"title":           study.Title,
		"description":     study.Description,
		"client_name":     study.ClientName,
		"client_industry": study.ClientIndustry,
	})
}
