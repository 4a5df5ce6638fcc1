package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"sarb.backend/internal/console/listparse"
	"sarb.backend/internal/console/notify"
	"sarb.backend/internal/console/session"
	"sarb.backend/internal/domain/entities"
	"sarb.backend/pkg/apiclient"
)

// MessageSlice is the contact message slice with read tracking.
type MessageSlice struct {
	*Slice[entities.ContactMessage]
}

// MarkRead sets is_read on one message and splices the returned message in.
func (m *MessageSlice) MarkRead(ctx context.Context, id int64) (entities.ContactMessage, error) {
	return m.update(ctx, id, apiclient.JSONPayload(map[string]bool{"is_read": true}), "Failed to mark message as read")
}

// Unread counts unread messages among the loaded items.
func (m *MessageSlice) Unread() int {
	n := 0
	for _, msg := range m.State().Items {
		if !msg.IsRead {
			n++
		}
	}
	return n
}

// Store is the console's state container. Build one per process and pass it
// to whatever needs it.
type Store struct {
	Client        *apiclient.Client
	Session       *session.Session
	Guard         *session.Guard
	Notifications *notify.Center

	Team        *Slice[entities.TeamMember]
	Services    *Slice[entities.Service]
	CaseStudies *Slice[entities.CaseStudy]
	Messages    *MessageSlice
}

type Config struct {
	BaseURL    string
	Tokens     apiclient.TokenStorage
	Timeout    time.Duration
	Mode       listparse.Mode
	HTTPClient *http.Client
	// SliceOptions apply to every resource slice.
	SliceOptions []Option
	// OnRedirect receives the login route after a logout.
	OnRedirect func(route string)
}

func New(cfg Config) (*Store, error) {
	s := &Store{Notifications: notify.NewCenter()}

	opts := []apiclient.Option{apiclient.WithUnauthorizedHandler(s.unauthorized)}
	if cfg.Tokens != nil {
		opts = append(opts, apiclient.WithTokenStorage(cfg.Tokens))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, apiclient.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, apiclient.WithTimeout(cfg.Timeout))
	}
	client, err := apiclient.New(cfg.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("console client: %w", err)
	}
	s.Client = client

	s.Session = session.New(client, func() {
		if cfg.OnRedirect != nil {
			cfg.OnRedirect(session.LoginRoute)
		}
	})
	s.Guard = session.NewGuard(s.Session)

	s.Team = NewSlice[entities.TeamMember]("team",
		NewRESTResource[entities.TeamMember](client, "/team", cfg.Mode),
		MessagesFor("team member", "team members"), cfg.SliceOptions...)
	s.Services = NewSlice[entities.Service]("services",
		NewRESTResource[entities.Service](client, "/services", cfg.Mode),
		MessagesFor("service", "services"), cfg.SliceOptions...)
	s.CaseStudies = NewSlice[entities.CaseStudy]("case studies",
		NewRESTResource[entities.CaseStudy](client, "/case-studies", cfg.Mode),
		MessagesFor("case study", "case studies"), cfg.SliceOptions...)
	s.Messages = &MessageSlice{NewSlice[entities.ContactMessage]("messages",
		NewRESTResource[entities.ContactMessage](client, "/contact", cfg.Mode),
		Messages{
			Fetch:  "Failed to load messages",
			Create: "Failed to send message",
			Update: "Failed to update message",
			Delete: "Failed to delete message",
		}, cfg.SliceOptions...)}
	return s, nil
}

// unauthorized runs after the client has already dropped the token. Only a
// live session is announced as expired.
func (s *Store) unauthorized() {
	if !s.Session.Authenticated() {
		return
	}
	s.Session.Logout()
	s.Notifications.Add("Session expired", "Please sign in again.", notify.Warning)
}

// Overview holds the dashboard counts.
type Overview struct {
	TeamMembers    int
	Services       int
	CaseStudies    int
	Messages       int
	UnreadMessages int
}

// Overview fetches every slice concurrently. Each slice keeps its own error;
// the first failure is returned.
func (s *Store) Overview(ctx context.Context) (Overview, error) {
	var g errgroup.Group
	g.Go(func() error { return s.Team.Fetch(ctx) })
	g.Go(func() error { return s.Services.Fetch(ctx) })
	g.Go(func() error { return s.CaseStudies.Fetch(ctx) })
	g.Go(func() error { return s.Messages.Fetch(ctx) })
	err := g.Wait()

	return Overview{
		TeamMembers:    len(s.Team.State().Items),
		Services:       len(s.Services.State().Items),
		CaseStudies:    len(s.CaseStudies.State().Items),
		Messages:       len(s.Messages.State().Items),
		UnreadMessages: s.Messages.Unread(),
	}, err
}
