package claims

import (
	"context"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// Session is the payload carried by a session token.
type Session struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"-"`
}

// Claims is the signed JWT body. ExpiresAt lives in the standard exp claim.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

func (c *Claims) Session() Session {
	return Session{
		Email:     c.Email,
		Role:      c.Role,
		ExpiresAt: time.Unix(c.ExpiresAt, 0).UTC(),
	}
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(SessionContextKey).(*Session)
	return s, ok && s != nil
}
