package entities

import (
	"encoding/json"
	"time"
)

// Service is an offering listed on the services page.
type Service struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Icon        Icon       `json:"icon"`
	Features    StringList `json:"features"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (s Service) GetID() int64 { return s.ID }

// UnmarshalJSON also accepts the legacy "title" key for name.
func (s *Service) UnmarshalJSON(data []byte) error {
	type alias Service
	aux := struct {
		*alias
		Title string `json:"title"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if s.Name == "" {
		s.Name = aux.Title
	}
	return nil
}

type ServiceInput struct {
	Name        *string     `json:"name" form:"name" binding:"omitempty,max=100"`
	Title       *string     `json:"title" form:"title" binding:"omitempty,max=100"`
	Slug        *string     `json:"slug" form:"slug" binding:"omitempty,max=120"`
	Description *string     `json:"description" form:"description"`
	Icon        *string     `json:"icon" form:"icon"`
	Features    *StringList `json:"features" form:"-"`
	Order       *int        `json:"order" form:"order" binding:"omitempty,min=0"`
}

// NameValue resolves name, falling back to the legacy title field.
func (in ServiceInput) NameValue() *string {
	if in.Name != nil {
		return in.Name
	}
	return in.Title
}
