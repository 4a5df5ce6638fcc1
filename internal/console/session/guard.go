package session

import (
	"time"

	"sarb.backend/pkg/jwt"
)

// Decision is the guard's verdict for one command.
type Decision struct {
	Allowed  bool
	Redirect string
	Reason   string
}

// Guard admits a command only while the stored token is unexpired. It is
// evaluated on every call.
type Guard struct {
	session *Session
	now     func() time.Time
}

func NewGuard(s *Session) *Guard {
	return &Guard{session: s, now: time.Now}
}

// Check decodes the stored token without verifying it and compares exp with
// the clock. A denial logs the session out.
func (g *Guard) Check() Decision {
	token, err := g.session.Token()
	if err != nil || token == "" {
		return g.deny("not signed in")
	}
	if !g.session.Authenticated() {
		return g.deny("not signed in")
	}
	exp, err := jwt.DecodeExpiry(token)
	if err != nil {
		return g.deny("stored token is invalid")
	}
	if !exp.After(g.now()) {
		return g.deny("session expired")
	}
	return Decision{Allowed: true}
}

func (g *Guard) deny(reason string) Decision {
	g.session.Logout()
	return Decision{Redirect: LoginRoute, Reason: reason}
}
