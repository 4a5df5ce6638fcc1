package entities

import "time"

// CaseStudy describes a client engagement.
type CaseStudy struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Description    string     `json:"description"`
	ClientName     string     `json:"client_name"`
	ClientIndustry string     `json:"client_industry"`
	Challenge      string     `json:"challenge"`
	Solution       string     `json:"solution"`
	Results        StringList `json:"results"`
	Technologies   StringList `json:"technologies"`
	Image          string     `json:"image"`
	Order          int        `json:"order"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (c CaseStudy) GetID() int64 { return c.ID }

type CaseStudyInput struct {
	Title          *string     `json:"title" form:"title" binding:"omitempty,max=200"`
	Slug           *string     `json:"slug" form:"slug" binding:"omitempty,max=220"`
	Description    *string     `json:"description" form:"description"`
	ClientName     *string     `json:"client_name" form:"client_name" binding:"omitempty,max=100"`
	ClientIndustry *string     `json:"client_industry" form:"client_industry" binding:"omitempty,max=100"`
	Challenge      *string     `json:"challenge" form:"challenge"`
	Solution       *string     `json:"solution" form:"solution"`
	Results        *StringList `json:"results" form:"-"`
	Technologies   *StringList `json:"technologies" form:"-"`
	Image          *string     `json:"image" form:"-"`
	Order          *int        `json:"order" form:"order" binding:"omitempty,min=0"`

	Upload *Upload `json:"-" form:"-"`
}
