package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/internal/interfaces/http/response"
)

type caseStudyService interface {
	List(ctx context.Context) ([]*entities.CaseStudy, error)
	Get(ctx context.Context, ref string) (*entities.CaseStudy, error)
	Create(ctx context.Context, input *entities.CaseStudyInput) (*entities.CaseStudy, error)
	Update(ctx context.Context, id int64, input *entities.CaseStudyInput) (*entities.CaseStudy, error)
	Delete(ctx context.Context, id int64) error
}

type CaseStudyHandler struct {
	studies       caseStudyService
	maxImageBytes int64
}

func NewCaseStudyHandler(studies caseStudyService, maxImageBytes int64) *CaseStudyHandler {
	return &CaseStudyHandler{studies: studies, maxImageBytes: maxImageBytes}
}

// ListCaseStudies returns every case study as a plain array.
// GET /api/case-studies
func (h *CaseStudyHandler) ListCaseStudies(c *gin.Context) {
	items, err := h.studies.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetCaseStudy looks a case study up by id or slug.
// GET /api/case-studies/:id
func (h *CaseStudyHandler) GetCaseStudy(c *gin.Context) {
	study, err := h.studies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, study)
}

// POST /api/case-studies
func (h *CaseStudyHandler) CreateCaseStudy(c *gin.Context) {
	input, ok := h.bind(c)
	if !ok {
		return
	}
	study, err := h.studies.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, study)
}

// PUT, PATCH /api/case-studies/:id
func (h *CaseStudyHandler) UpdateCaseStudy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := h.bind(c)
	if !ok {
		return
	}
	study, err := h.studies.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, study)
}

// DELETE /api/case-studies/:id
func (h *CaseStudyHandler) DeleteCaseStudy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.studies.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *CaseStudyHandler) bind(c *gin.Context) (*entities.CaseStudyInput, bool) {
	var input entities.CaseStudyInput
	if !bindPayload(c, &input) {
		return nil, false
	}
	if isMultipart(c) {
		input.Results = formList(c, "results")
		input.Technologies = formList(c, "technologies")
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
