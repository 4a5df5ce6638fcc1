package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Company   null.String `json:"company"`
	Message   string      `json:"message"`
	IsRead    bool        `json:"is_read"`
	ReadAt    null.Time   `json:"read_at"`
	CreatedAt time.Time   `json:"created_at"`
}

func (m ContactMessage) GetID() int64 { return m.ID }

type ContactMessageInput struct {
	Name    string `json:"name" form:"name" binding:"required,max=100"`
	Email   string `json:"email" form:"email" binding:"required,email,max=254"`
	Company string `json:"company" form:"company" binding:"max=100"`
	Message string `json:"message" form:"message" binding:"required,max=5000"`
}

type ContactMessageUpdateInput struct {
	IsRead *bool `json:"is_read" binding:"required"`
}

// ContactMessageFilter narrows the admin message list.
type ContactMessageFilter struct {
	IsRead *bool
}
