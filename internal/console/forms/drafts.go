// Package forms holds the console's editable drafts and the add/edit dialog
// they are submitted through.
package forms

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/pkg/apiclient"
)

// Draft is a form's editable state.
type Draft interface {
	Validate() error
	Payload() apiclient.Payload
}

// FieldErrors maps a JSON field name to its problem.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "missing required fields: " + strings.Join(fields, ", ")
}

func required(values ...string) error {
	errs := FieldErrors{}
	for i := 0; i+1 < len(values); i += 2 {
		if strings.TrimSpace(values[i+1]) == "" {
			errs[values[i]] = "This field is required."
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// FallbackSlug derives a slug from a name: lowercased, with each run of
// characters outside [a-z0-9] replaced by one hyphen.
func FallbackSlug(name string) string {
	return nonSlug.ReplaceAllString(strings.ToLower(name), "-")
}

// body is built as form fields and sent as JSON unless an image is attached.
type body struct {
	fields url.Values
	lists  map[string][]string
	ints   map[string]int
	image  *ImageSelection
}

func newBody() *body {
	return &body{fields: url.Values{}, lists: map[string][]string{}, ints: map[string]int{}}
}

func (b *body) set(k, v string) { b.fields.Set(k, v) }

func (b *body) setList(k string, v []string) { b.lists[k] = v }

func (b *body) setInt(k string, v int) { b.ints[k] = v }

func (b *body) payload() apiclient.Payload {
	if b.image != nil {
		mp := &apiclient.MultipartPayload{Fields: url.Values{}, Files: []apiclient.File{b.image.file("image")}}
		for k, v := range b.fields {
			mp.Fields[k] = v
		}
		for k, v := range b.lists {
			if len(v) == 0 {
				// one blank part so the server clears the list
				v = []string{""}
			}
			mp.Fields[k] = v
		}
		for k, v := range b.ints {
			mp.Fields.Set(k, strconv.Itoa(v))
		}
		return mp
	}

	doc := map[string]interface{}{}
	for k := range b.fields {
		doc[k] = b.fields.Get(k)
	}
	for k, v := range b.lists {
		doc[k] = entities.StringList(v)
	}
	for k, v := range b.ints {
		doc[k] = v
	}
	return apiclient.JSONPayload(doc)
}

type TeamDraft struct {
	Name        string
	Position    string
	Bio         string
	LinkedInURL string
	GithubURL   string
	TwitterURL  string
	Order       int
	Image       *ImageSelection
	// CurrentImage is the stored image URL when editing.
	CurrentImage string
}

func TeamDraftFrom(m entities.TeamMember) TeamDraft {
	return TeamDraft{
		Name:         m.Name,
		Position:     m.Position,
		Bio:          m.Bio,
		LinkedInURL:  m.LinkedInURL,
		GithubURL:    m.GithubURL,
		TwitterURL:   m.TwitterURL,
		Order:        m.Order,
		CurrentImage: m.Image,
	}
}

func (d TeamDraft) Validate() error {
	return required("name", d.Name, "position", d.Position, "bio", d.Bio)
}

func (d TeamDraft) Payload() apiclient.Payload {
	b := newBody()
	b.set("name", d.Name)
	b.set("position", d.Position)
	b.set("bio", d.Bio)
	b.set("linkedin_url", d.LinkedInURL)
	b.set("github_url", d.GithubURL)
	b.set("twitter_url", d.TwitterURL)
	b.setInt("order", d.Order)
	b.image = d.Image
	return b.payload()
}

type ServiceDraft struct {
	Name        string
	Slug        string
	Description string
	Icon        string
	Features    []string
	Order       int
}

func ServiceDraftFrom(s entities.Service) ServiceDraft {
	return ServiceDraft{
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		Icon:        string(s.Icon),
		Features:    append([]string(nil), s.Features...),
		Order:       s.Order,
	}
}

func (d ServiceDraft) Validate() error {
	return required("name", d.Name, "description", d.Description)
}

// Payload always sends a slug, deriving it from the name when left blank.
func (d ServiceDraft) Payload() apiclient.Payload {
	slug := strings.TrimSpace(d.Slug)
	if slug == "" {
		slug = FallbackSlug(d.Name)
	}
	b := newBody()
	b.set("name", d.Name)
	b.set("slug", slug)
	b.set("description", d.Description)
	if d.Icon != "" {
		b.set("icon", d.Icon)
	}
	b.setList("features", entities.ParseStringList(d.Features))
	b.setInt("order", d.Order)
	return b.payload()
}

type CaseStudyDraft struct {
	Title          string
	Slug           string
	Description    string
	ClientName     string
	ClientIndustry string
	Challenge      string
	Solution       string
	Results        []string
	Technologies   []string
	// Order is left to the server when nil.
	Order        *int
	Image        *ImageSelection
	CurrentImage string
}

func CaseStudyDraftFrom(c entities.CaseStudy) CaseStudyDraft {
	order := c.Order
	return CaseStudyDraft{
		Title:          c.Title,
		Slug:           c.Slug,
		Description:    c.Description,
		ClientName:     c.ClientName,
		ClientIndustry: c.ClientIndustry,
		Challenge:      c.Challenge,
		Solution:       c.Solution,
		Results:        append([]string(nil), c.Results...),
		Technologies:   append([]string(nil), c.Technologies...),
		Order:          &order,
		CurrentImage:   c.Image,
	}
}

func (d CaseStudyDraft) Validate() error {
	return required(
		"title", d.Title,
		"description", d.Description,
		"client_name", d.ClientName,
		"client_industry", d.ClientIndustry,
	)
}

func (d CaseStudyDraft) Payload() apiclient.Payload {
	b := newBody()
	b.set("title", d.Title)
	if slug := strings.TrimSpace(d.Slug); slug != "" {
		b.set("slug", slug)
	}
	b.set("description", d.Description)
	b.set("client_name", d.ClientName)
	b.set("client_industry", d.ClientIndustry)
	b.set("challenge", d.Challenge)
	b.set("solution", d.Solution)
	b.setList("results", entities.ParseStringList(d.Results))
	b.setList("technologies", entities.ParseStringList(d.Technologies))
	if d.Order != nil {
		b.setInt("order", *d.Order)
	}
	b.image = d.Image
	return b.payload()
}

type ContactDraft struct {
	Name    string
	Email   string
	Company string
	Message string
}

func (d ContactDraft) Validate() error {
	return required("name", d.Name, "email", d.Email, "message", d.Message)
}

func (d ContactDraft) Payload() apiclient.Payload {
	return apiclient.JSONPayload(entities.ContactMessageInput{
		Name:    d.Name,
		Email:   d.Email,
		Company: d.Company,
		Message: d.Message,
	})
}
