// Package session holds the console's authentication state and the guard
// that protects every command except login.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"sarb.backend/pkg/apiclient"
	"sarb.backend/pkg/logger"
)

// LoginRoute is where a denied guard sends the user.
const LoginRoute = "/login"

var ErrNoAccessToken = errors.New("No access token received")

// User describes the signed in account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

type State struct {
	Token         string
	Authenticated bool
	User          *User
	Loading       bool
	Error         string
}

type Session struct {
	client   *apiclient.Client
	onLogout func()

	mu            sync.Mutex
	authenticated bool
	user          *User
	loading       bool
	err           string
}

// New builds a session over client's token storage. A stored token counts as
// signed in until the guard says otherwise. onLogout runs after every logout.
func New(client *apiclient.Client, onLogout func()) *Session {
	token, _ := client.Tokens().Token()
	return &Session{client: client, onLogout: onLogout, authenticated: token != ""}
}

func (s *Session) State() State {
	token, _ := s.client.Tokens().Token()

	s.mu.Lock()
	defer s.mu.Unlock()
	var user *User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return State{Token: token, Authenticated: s.authenticated, User: user, Loading: s.loading, Error: s.err}
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Session) Token() (string, error) {
	return s.client.Tokens().Token()
}

type loginResponse struct {
	Access string `json:"access"`
	Token  string `json:"token"`
	User   *User  `json:"user"`
}

// Login exchanges credentials for a token and persists it.
func (s *Session) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.authenticated = false
	s.mu.Unlock()

	// a new login replaces whatever token was stored before
	if err := s.client.Tokens().ClearToken(); err != nil {
		logger.Warn(ctx, "Failed to clear previous token", zap.Error(err))
	}

	var resp loginResponse
	err := s.client.Post(ctx, "/token", apiclient.JSONPayload(map[string]string{
		"username": username,
		"password": password,
	}), &resp)
	if err == nil {
		err = s.store(resp)
	}
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.authenticated = false
		s.user = nil
		s.err = loginError(err)
		s.mu.Unlock()
		logger.Warn(ctx, "Login failed", zap.String("username", username), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.loading = false
	s.authenticated = true
	s.user = resp.User
	s.mu.Unlock()
	logger.Info(ctx, "Signed in", zap.String("username", username))
	return nil
}

func (s *Session) store(resp loginResponse) error {
	token := resp.Access
	if token == "" {
		token = resp.Token
	}
	if token == "" {
		return ErrNoAccessToken
	}
	return s.client.Tokens().SetToken(token)
}

func loginError(err error) string {
	if msg := apiclient.MessageOf(err); msg != "" {
		return msg
	}
	if errors.Is(err, ErrNoAccessToken) {
		return err.Error()
	}
	return "Login failed"
}

// LoadUser fetches the signed in user's descriptor.
func (s *Session) LoadUser(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return &user, nil
}

// SignOut asks the server to revoke the token, then logs out locally even if
// the server could not be reached.
func (s *Session) SignOut(ctx context.Context) {
	if token, _ := s.Token(); token != "" {
		if err := s.client.Post(ctx, "/auth/logout", nil, nil); err != nil && !errors.Is(err, apiclient.ErrUnauthorized) {
			logger.Warn(ctx, "Token revocation failed", zap.Error(err))
		}
	}
	s.Logout()
}

// Logout clears the token and state and fires the logout handler.
func (s *Session) Logout() {
	if err := s.client.Tokens().ClearToken(); err != nil {
		logger.Warn(context.Background(), "Failed to clear token", zap.Error(err))
	}
	s.mu.Lock()
	s.authenticated = false
	s.user = nil
	s.loading = false
	s.mu.Unlock()

	if s.onLogout != nil {
		s.onLogout()
	}
}

func (s *Session) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}
