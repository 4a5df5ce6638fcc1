package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"sarb.backend/internal/domain/entities"
	"sarb.backend/pkg/jwt"
)

// fakeAPI is a small in-memory stand-in for the content API.
type fakeAPI struct {
	t     *testing.T
	token string

	mu       sync.Mutex
	nextID   int64
	team     []entities.TeamMember
	services []entities.Service
	messages []entities.ContactMessage
	lastSlug string
	failTeam bool
	revoked  bool
	uploads  int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	token, err := jwt.NewJWTService("secret", time.Hour, time.Hour).GenerateAccessToken(jwt.Subject{UserID: 1, Username: "admin", IsStaff: true})
	require.NoError(t, err)
	return &fakeAPI{
		t:        t,
		token:    token,
		nextID:   100,
		team:     []entities.TeamMember{{ID: 1, Name: "Ana", Position: "CEO", Bio: "Founder"}},
		services: []entities.Service{},
		messages: []entities.ContactMessage{
			{ID: 7, Name: "Dana", Email: "dana@example.com", Company: null.StringFrom("Acme"), Message: "Can you help with forecasting?", CreatedAt: time.Now()},
			{ID: 6, Name: "Eli", Email: "eli@example.com", Message: "Hello", IsRead: true, CreatedAt: time.Now()},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+f.token || f.revoked {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": true, "message": "Token is invalid or expired"})
		return false
	}
	return true
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/token", func(w http.ResponseWriter, r *http.Request) {
		var in entities.LoginInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": true, "message": "Invalid username or password"})
			return
		}
		f.mu.Lock()
		f.revoked = false
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, entities.TokenResponse{Access: f.token, User: &entities.User{ID: 1, Username: in.Username, IsStaff: true}})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if f.authorized(w, r) {
			writeJSON(w, http.StatusOK, entities.User{ID: 1, Username: "admin", IsStaff: true})
		}
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if f.authorized(w, r) {
			f.mu.Lock()
			f.revoked = true
			f.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		}
	})

	mux.HandleFunc("GET /api/team", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failTeam {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(f.team), "next": nil, "previous": nil, "results": f.team})
	})
	mux.HandleFunc("POST /api/team", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		in := f.teamInput(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		m := entities.TeamMember{ID: f.nextID}
		applyTeam(&m, in)
		f.team = append(f.team, m)
		writeJSON(w, http.StatusCreated, m)
	})
	mux.HandleFunc("PATCH /api/team/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		in := f.teamInput(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.team {
			if f.team[i].ID == id {
				applyTeam(&f.team[i], in)
				writeJSON(w, http.StatusOK, f.team[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": true, "message": "Team member not found"})
	})
	mux.HandleFunc("DELETE /api/team/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		kept := f.team[:0]
		for _, m := range f.team {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		f.team = kept
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/services", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.services)
	})
	mux.HandleFunc("POST /api/services", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		var in entities.ServiceInput
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&in))
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		s := entities.Service{ID: f.nextID, Name: *in.NameValue(), Slug: *in.Slug}
		if in.Features != nil {
			s.Features = *in.Features
		}
		f.lastSlug = s.Slug
		f.services = append(f.services, s)
		writeJSON(w, http.StatusCreated, s)
	})

	mux.HandleFunc("GET /api/contact", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(f.messages), "next": nil, "previous": nil, "results": f.messages})
	})
	mux.HandleFunc("PATCH /api/contact/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var in entities.ContactMessageUpdateInput
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&in))
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.messages {
			if f.messages[i].ID == id {
				f.messages[i].IsRead = *in.IsRead
				f.messages[i].ReadAt = null.TimeFrom(time.Now())
				writeJSON(w, http.StatusOK, f.messages[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": true, "message": "Message not found"})
	})
	return mux
}

func (f *fakeAPI) teamInput(r *http.Request) entities.TeamMemberInput {
	var in entities.TeamMemberInput
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&in))
		return in
	}
	assert.NoError(f.t, r.ParseMultipartForm(1<<20))
	str := func(k string) *string {
		if vs, ok := r.MultipartForm.Value[k]; ok {
			return &vs[0]
		}
		return nil
	}
	in.Name, in.Position, in.Bio = str("name"), str("position"), str("bio")
	if _, hdr, err := r.FormFile("image"); err == nil {
		image := "/media/" + hdr.Filename
		in.Image = &image
		f.mu.Lock()
		f.uploads++
		f.mu.Unlock()
	}
	return in
}

func applyTeam(m *entities.TeamMember, in entities.TeamMemberInput) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&m.Name, in.Name)
	set(&m.Position, in.PositionValue())
	set(&m.Bio, in.Bio)
	set(&m.Image, in.Image)
	set(&m.TwitterURL, in.TwitterURL)
	if in.Order != nil {
		m.Order = *in.Order
	}
}
