package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
)

type contentStub struct {
	members  []*entities.TeamMember
	services []*entities.Service
	studies  []*entities.CaseStudy
	err      error
	received *entities.ContactMessageInput
}

func (s *contentStub) ListAll(context.Context) ([]*entities.TeamMember, error) {
	return s.members, s.err
}

func (s *contentStub) List(context.Context) ([]*entities.Service, error) {
	return s.services, s.err
}

type studyStub struct{ *contentStub }

func (s studyStub) List(context.Context) ([]*entities.CaseStudy, error) {
	return s.studies, s.err
}

func (s studyStub) Get(_ context.Context, ref string) (*entities.CaseStudy, error) {
	for _, st := range s.studies {
		if st.Slug == ref {
			return st, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *contentStub) Submit(_ context.Context, in *entities.ContactMessageInput) (*entities.ContactMessage, error) {
	s.received = in
	return &entities.ContactMessage{ID: 1}, s.err
}

func newTestRouter(t *testing.T, stub *contentStub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tmpl, err := Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	NewPages(stub, stub, studyStub{stub}, stub).Register(r)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func sampleContent() *contentStub {
	return &contentStub{
		members: []*entities.TeamMember{{ID: 1, Name: "Ana Ruiz", Position: "Principal", GithubURL: "https://github.com/ana"}},
		services: []*entities.Service{
			{ID: 1, Name: "ML Strategy", Icon: entities.IconPsychology, Features: entities.StringList{"Roadmaps"}},
			{ID: 2, Name: "MLOps", Icon: entities.IconCloudQueue},
			{ID: 3, Name: "Data Engineering", Icon: entities.IconAnalytics},
			{ID: 4, Name: "Training", Icon: entities.IconCategory},
		},
		studies: []*entities.CaseStudy{{
			ID: 1, Title: "Crop disease detection", Slug: "crop-disease-detection",
			ClientName: "AgriCo", ClientIndustry: "Agriculture",
			Results: entities.StringList{"92% accuracy"}, Technologies: entities.StringList{"Go", "PyTorch"},
		}},
	}
}

func TestPages_Render(t *testing.T) {
	r := newTestRouter(t, sampleContent())

	rec := get(r, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ML Strategy")
	assert.Contains(t, body, "Data Engineering")
	assert.NotContains(t, body, "Training", "home shows only featured services")
	assert.Contains(t, body, "/case-studies/crop-disease-detection")

	rec = get(r, "/services")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Training")
	assert.Contains(t, rec.Body.String(), "cloud_queue")
	assert.Contains(t, rec.Body.String(), "<li>Roadmaps</li>")

	rec = get(r, "/team")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ana Ruiz")
	assert.Contains(t, rec.Body.String(), "https://github.com/ana")

	rec = get(r, "/case-studies/crop-disease-detection")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "92% accuracy")
	assert.Contains(t, rec.Body.String(), "Go, PyTorch")

	rec = get(r, "/case-studies/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPages_EmptyStates(t *testing.T) {
	r := newTestRouter(t, &contentStub{})
	assert.Contains(t, get(r, "/services").Body.String(), "No services published yet")
	assert.Contains(t, get(r, "/case-studies").Body.String(), "No case studies published yet")
	assert.Contains(t, get(r, "/team").Body.String(), "coming soon")
}

func TestPages_BackendFailure(t *testing.T) {
	r := newTestRouter(t, &contentStub{err: errors.New("db down")})
	rec := get(r, "/team")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func postForm(r http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPages_Contact(t *testing.T) {
	stub := sampleContent()
	r := newTestRouter(t, stub)

	rec := get(r, "/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="email"`)

	rec = postForm(r, url.Values{"name": {"Ana"}, "email": {"not-an-email"}, "message": {"Hello"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "enter a valid email address")
	assert.Contains(t, rec.Body.String(), `value="Ana"`)
	assert.Nil(t, stub.received)

	rec = postForm(r, url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "message": {"Hello"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thanks for reaching out")
	require.NotNil(t, stub.received)
	assert.Equal(t, "ana@example.com", stub.received.Email)
}

func TestPages_ContactGuardsRunFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tmpl, err := Templates()
	require.NoError(t, err)
	stub := sampleContent()

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	NewPages(stub, stub, studyStub{stub}, stub).Register(r, func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTooManyRequests)
	})

	rec := postForm(r, url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "message": {"Hello"}})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Nil(t, stub.received)
}
