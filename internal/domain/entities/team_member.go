package entities

import (
	"encoding/json"
	"time"
)

// TeamMember is a person shown on the team page.
type TeamMember struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	Bio         string    `json:"bio"`
	Image       string    `json:"image"`
	LinkedInURL string    `json:"linkedin_url"`
	GithubURL   string    `json:"github_url"`
	TwitterURL  string    `json:"twitter_url"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m TeamMember) GetID() int64 { return m.ID }

// UnmarshalJSON also accepts the legacy "role" key for position.
func (m *TeamMember) UnmarshalJSON(data []byte) error {
	type alias TeamMember
	aux := struct {
		*alias
		Role string `json:"role"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if m.Position == "" {
		m.Position = aux.Role
	}
	return nil
}

// TeamMemberInput is a create or partial update payload. Nil fields are left
// untouched on update.
type TeamMemberInput struct {
	Name        *string `json:"name" form:"name" binding:"omitempty,max=100"`
	Position    *string `json:"position" form:"position" binding:"omitempty,max=100"`
	Role        *string `json:"role" form:"role" binding:"omitempty,max=100"`
	Bio         *string `json:"bio" form:"bio"`
	Image       *string `json:"image" form:"-"`
	LinkedInURL *string `json:"linkedin_url" form:"linkedin_url" binding:"omitempty,url"`
	GithubURL   *string `json:"github_url" form:"github_url" binding:"omitempty,url"`
	TwitterURL  *string `json:"twitter_url" form:"twitter_url" binding:"omitempty,url"`
	Order       *int    `json:"order" form:"order" binding:"omitempty,min=0"`

	Upload *Upload `json:"-" form:"-"`
}

// PositionValue resolves position, falling back to the legacy role field.
func (in TeamMemberInput) PositionValue() *string {
	if in.Position != nil {
		return in.Position
	}
	return in.Role
}
