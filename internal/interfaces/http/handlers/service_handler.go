package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/internal/interfaces/http/response"
)

type serviceService interface {
	List(ctx context.Context) ([]*entities.Service, error)
	Get(ctx context.Context, ref string) (*entities.Service, error)
	Create(ctx context.Context, input *entities.ServiceInput) (*entities.Service, error)
	Update(ctx context.Context, id int64, input *entities.ServiceInput) (*entities.Service, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceHandler struct {
	services serviceService
}

func NewServiceHandler(services serviceService) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// ListServices returns every service as a plain array.
// GET /api/services
func (h *ServiceHandler) ListServices(c *gin.Context) {
	items, err := h.services.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetService looks a service up by id or slug.
// GET /api/services/:id
func (h *ServiceHandler) GetService(c *gin.Context) {
	svc, err := h.services.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

// POST /api/services
func (h *ServiceHandler) CreateService(c *gin.Context) {
	input, ok := bindServiceInput(c)
	if !ok {
		return
	}
	svc, err := h.services.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, svc)
}

// PUT, PATCH /api/services/:id
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := bindServiceInput(c)
	if !ok {
		return
	}
	svc, err := h.services.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

// DELETE /api/services/:id
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.services.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindServiceInput(c *gin.Context) (*entities.ServiceInput, bool) {
	var input entities.ServiceInput
	if !bindPayload(c, &input) {
		return nil, false
	}
	if isMultipart(c) {
		input.Features = formList(c, "features")
	}
	return &input, true
}
