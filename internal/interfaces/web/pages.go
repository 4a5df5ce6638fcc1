package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/interfaces/http/response"
	"sarb.backend/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

const featuredCount = 3

type teamLister interface {
	ListAll(ctx context.Context) ([]*entities.TeamMember, error)
}

type serviceLister interface {
	List(ctx context.Context) ([]*entities.Service, error)
}

type caseStudyReader interface {
	List(ctx context.Context) ([]*entities.CaseStudy, error)
	Get(ctx context.Context, ref string) (*entities.CaseStudy, error)
}

type contactSubmitter interface {
	Submit(ctx context.Context, input *entities.ContactMessageInput) (*entities.ContactMessage, error)
}

// Pages renders the public marketing site.
type Pages struct {
	team     teamLister
	services serviceLister
	studies  caseStudyReader
	contact  contactSubmitter
}

func NewPages(team teamLister, services serviceLister, studies caseStudyReader, contact contactSubmitter) *Pages {
	return &Pages{team: team, services: services, studies: studies, contact: contact}
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(template.FuncMap{
		"year":  func() int { return time.Now().Year() },
		"icon":  func(i entities.Icon) string { return string(entities.ResolveIcon(string(i))) },
		"lines": func(s string) []string { return strings.Split(strings.TrimSpace(s), "\n") },
		"fieldError": func(errs map[string]string, field string) string {
			return errs[field]
		},
	}).ParseFS(templateFS, "templates/*.html")
}

// Register mounts the pages. contactGuards run before the contact form submit.
func (p *Pages) Register(r gin.IRoutes, contactGuards ...gin.HandlerFunc) {
	r.GET("/", p.Home)
	r.GET("/services", p.Services)
	r.GET("/case-studies", p.CaseStudies)
	r.GET("/case-studies/:slug", p.CaseStudy)
	r.GET("/team", p.Team)
	r.GET("/contact", p.ContactForm)
	r.POST("/contact", append(contactGuards, p.SubmitContact)...)
}

// GET /
func (p *Pages) Home(c *gin.Context) {
	ctx := c.Request.Context()
	services, err := p.services.List(ctx)
	if err != nil {
		p.fail(c, err)
		return
	}
	studies, err := p.studies.List(ctx)
	if err != nil {
		p.fail(c, err)
		return
	}
	p.render(c, http.StatusOK, "home", gin.H{
		"Services":    firstN(services, featuredCount),
		"CaseStudies": firstN(studies, featuredCount),
	})
}

// GET /services
func (p *Pages) Services(c *gin.Context) {
	services, err := p.services.List(c.Request.Context())
	if err != nil {
		p.fail(c, err)
		return
	}
	p.render(c, http.StatusOK, "services", gin.H{"Title": "Services", "Services": services})
}

// GET /case-studies
func (p *Pages) CaseStudies(c *gin.Context) {
	studies, err := p.studies.List(c.Request.Context())
	if err != nil {
		p.fail(c, err)
		return
	}
	p.render(c, http.StatusOK, "case_studies", gin.H{"Title": "Case Studies", "CaseStudies": studies})
}

// GET /case-studies/:slug
func (p *Pages) CaseStudy(c *gin.Context) {
	study, err := p.studies.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		p.fail(c, err)
		return
	}
	p.render(c, http.StatusOK, "case_study", gin.H{"Title": study.Title, "Study": study})
}

// GET /team
func (p *Pages) Team(c *gin.Context) {
	members, err := p.team.ListAll(c.Request.Context())
	if err != nil {
		p.fail(c, err)
		return
	}
	p.render(c, http.StatusOK, "team", gin.H{"Title": "Team", "Members": members})
}

// GET /contact
func (p *Pages) ContactForm(c *gin.Context) {
	p.render(c, http.StatusOK, "contact", gin.H{"Title": "Contact", "Form": entities.ContactMessageInput{}})
}

// SubmitContact stores the form and shows a confirmation, or re-renders the
// form with per-field errors.
// POST /contact
func (p *Pages) SubmitContact(c *gin.Context) {
	var input entities.ContactMessageInput
	if err := c.ShouldBindWith(&input, formBinding(c)); err != nil {
		p.render(c, http.StatusBadRequest, "contact", gin.H{
			"Title":  "Contact",
			"Form":   input,
			"Errors": response.FromBinding(err).Details,
		})
		return
	}
	if _, err := p.contact.Submit(c.Request.Context(), &input); err != nil {
		var appErr *domainerrors.AppError
		if errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError {
			p.render(c, appErr.Status, "contact", gin.H{"Title": "Contact", "Form": input, "Errors": appErr.Details, "Message": appErr.Message})
			return
		}
		p.fail(c, err)
		return
	}
	p.render(c, http.StatusOK, "contact", gin.H{"Title": "Contact", "Sent": true, "Form": entities.ContactMessageInput{}})
}

func (p *Pages) render(c *gin.Context, status int, name string, data gin.H) {
	data["Path"] = c.Request.URL.Path
	c.HTML(status, name, data)
}

func (p *Pages) fail(c *gin.Context, err error) {
	if errors.Is(err, domainerrors.ErrNotFound) {
		p.render(c, http.StatusNotFound, "error", gin.H{"Title": "Not found", "Message": "The page you are looking for does not exist."})
		return
	}
	logger.Error(c.Request.Context(), "Page render failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	p.render(c, http.StatusInternalServerError, "error", gin.H{"Title": "Error", "Message": "Something went wrong. Please try again later."})
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func formBinding(c *gin.Context) binding.Binding {
	if strings.HasPrefix(c.ContentType(), binding.MIMEMultipartPOSTForm) {
		return binding.FormMultipart
	}
	return binding.FormPost
}
