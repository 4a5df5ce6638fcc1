package usecases

import (
	"context"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/internal/domain/repositories"
	"sarb.backend/pkg/utils"
)

// TeamUsecase manages the people on the team page.
type TeamUsecase struct {
	repo  repositories.TeamMemberRepository
	image imageField
}

func NewTeamUsecase(repo repositories.TeamMemberRepository, media MediaStore, maxImageBytes int64) *TeamUsecase {
	return &TeamUsecase{
		repo:  repo,
		image: imageField{media: media, dir: "team", maxBytes: maxImageBytes},
	}
}

func (u *TeamUsecase) List(ctx context.Context, page utils.PaginationParams) ([]*entities.TeamMember, int64, error) {
	return u.repo.List(ctx, page)
}

func (u *TeamUsecase) ListAll(ctx context.Context) ([]*entities.TeamMember, error) {
	return u.repo.ListAll(ctx)
}

func (u *TeamUsecase) Get(ctx context.Context, id int64) (*entities.TeamMember, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *TeamUsecase) Create(ctx context.Context, input *entities.TeamMemberInput) (*entities.TeamMember, error) {
	member := &entities.TeamMember{}
	applyTeamInput(member, input)
	if err := validateTeamMember(member); err != nil {
		return nil, err
	}

	image, err := u.image.apply(ctx, "", input.Image, input.Upload)
	if err != nil {
		return nil, err
	}
	member.Image = image

	if err := u.repo.Create(ctx, member); err != nil {
		if input.Upload != nil {
			u.image.release(ctx, image)
		}
		return nil, err
	}
	return member, nil
}

// Update applies the non-nil fields of input to the member.
func (u *TeamUsecase) Update(ctx context.Context, id int64, input *entities.TeamMemberInput) (*entities.TeamMember, error) {
	member, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousImage := member.Image

	applyTeamInput(member, input)
	if err := validateTeamMember(member); err != nil {
		return nil, err
	}

	image, err := u.image.apply(ctx, member.Image, input.Image, input.Upload)
	if err != nil {
		return nil, err
	}
	member.Image = image

	if err := u.repo.Update(ctx, member); err != nil {
		if input.Upload != nil {
			u.image.release(ctx, image)
		}
		return nil, err
	}
	if previousImage != member.Image {
		u.image.release(ctx, previousImage)
	}
	return member, nil
}

func (u *TeamUsecase) Delete(ctx context.Context, id int64) error {
	member, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.image.release(ctx, member.Image)
	return nil
}

func applyTeamInput(member *entities.TeamMember, input *entities.TeamMemberInput) {
	setString(&member.Name, input.Name)
	setString(&member.Position, input.PositionValue())
	setString(&member.Bio, input.Bio)
	setString(&member.LinkedInURL, input.LinkedInURL)
	setString(&member.GithubURL, input.GithubURL)
	setString(&member.TwitterURL, input.TwitterURL)
	setInt(&member.Order, input.Order)
}

func validateTeamMember(member *entities.TeamMember) error {
	return requireFields(map[string]string{
		"name":     member.Name,
		"position": member.Position,
	})
}
