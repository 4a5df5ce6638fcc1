package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/internal/interfaces/http/response"
	"sarb.backend/pkg/utils"
)

type contactService interface {
	Submit(ctx context.Context, input *entities.ContactMessageInput) (*entities.ContactMessage, error)
	List(ctx context.Context, filter entities.ContactMessageFilter, page utils.PaginationParams) ([]*entities.ContactMessage, int64, error)
	Get(ctx context.Context, id int64) (*entities.ContactMessage, error)
	SetRead(ctx context.Context, id int64, isRead bool) (*entities.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
}

type ContactHandler struct {
	contact contactService
}

func NewContactHandler(contact contactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// SubmitContact stores a message from the public contact form.
// POST /api/contact
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var input entities.ContactMessageInput
	if !bindPayload(c, &input) {
		return
	}
	msg, err := h.contact.Submit(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

// ListMessages returns one page of the inbox, newest first.
// GET /api/contact?is_read=&page=&page_size=
func (h *ContactHandler) ListMessages(c *gin.Context) {
	var q utils.PaginationParams
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	isRead, err := queryBool(c, "is_read")
	if err != nil {
		response.Error(c, err)
		return
	}
	page := utils.GetPaginationParams(q.Page, q.PageSize)

	items, total, err := h.contact.List(c.Request.Context(), entities.ContactMessageFilter{IsRead: isRead}, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, utils.NewPage(items, total, page, absoluteURL(c)))
}

// GET /api/contact/:id
func (h *ContactHandler) GetMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	msg, err := h.contact.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, msg)
}

// UpdateMessage toggles the read flag.
// PATCH /api/contact/:id
func (h *ContactHandler) UpdateMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input entities.ContactMessageUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	msg, err := h.contact.SetRead(c.Request.Context(), id, *input.IsRead)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, msg)
}

// DELETE /api/contact/:id
func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.contact.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
