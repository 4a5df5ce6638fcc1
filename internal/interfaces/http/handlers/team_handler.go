package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/internal/interfaces/http/response"
	"sarb.backend/pkg/utils"
)

type teamService interface {
	List(ctx context.Context, page utils.PaginationParams) ([]*entities.TeamMember, int64, error)
	Get(ctx context.Context, id int64) (*entities.TeamMember, error)
	Create(ctx context.Context, input *entities.TeamMemberInput) (*entities.TeamMember, error)
	Update(ctx context.Context, id int64, input *entities.TeamMemberInput) (*entities.TeamMember, error)
	Delete(ctx context.Context, id int64) error
}

type TeamHandler struct {
	team          teamService
	maxImageBytes int64
}

func NewTeamHandler(team teamService, maxImageBytes int64) *TeamHandler {
	return &TeamHandler{team: team, maxImageBytes: maxImageBytes}
}

// ListTeam returns one page of team members.
// GET /api/team
func (h *TeamHandler) ListTeam(c *gin.Context) {
	var q utils.PaginationParams
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page := utils.GetPaginationParams(q.Page, q.PageSize)

	items, total, err := h.team.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, utils.NewPage(items, total, page, absoluteURL(c)))
}

// GetTeamMember returns a single team member.
// GET /api/team/:id
func (h *TeamHandler) GetTeamMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	member, err := h.team.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, member)
}

// CreateTeamMember accepts JSON or a multipart form with an image file.
// POST /api/team
func (h *TeamHandler) CreateTeamMember(c *gin.Context) {
	input, ok := h.bind(c)
	if !ok {
		return
	}
	member, err := h.team.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, member)
}

// UpdateTeamMember applies the fields present in the request.
// PUT, PATCH /api/team/:id
func (h *TeamHandler) UpdateTeamMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := h.bind(c)
	if !ok {
		return
	}
	member, err := h.team.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, member)
}

// DeleteTeamMember removes a team member.
// DELETE /api/team/:id
func (h *TeamHandler) DeleteTeamMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.team.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *TeamHandler) bind(c *gin.Context) (*entities.TeamMemberInput, bool) {
	var input entities.TeamMemberInput
	if !bindPayload(c, &input) {
		return nil, false
	}
	upload, image, err := formImage(c, h.maxImageBytes)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	input.Upload = upload
	if image != nil {
		input.Image = image
	}
	return &input, true
}
