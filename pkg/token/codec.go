package token

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"sessionlogin/pkg/claims"
)

const TTL = time.Hour

var (
	ErrEmptySecret  = errors.New("token: signing secret is empty")
	ErrInvalidToken = errors.New("token: invalid token")
)

type Option func(*Codec)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// Codec signs and verifies HS256 session tokens. It holds no mutable state
// and is safe for concurrent use.
type Codec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

func New(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	c := &Codec{
		secret: secret,
		now:    time.Now,
		// exp is checked against c.now below, not the package-level jwt.TimeFunc.
		parser: &jwt.Parser{
			ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
			SkipClaimsValidation: true,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs s with a fixed one hour lifetime. The returned Session is the
// one embedded in the token, ExpiresAt included.
func (c *Codec) Issue(s claims.Session) (string, claims.Session, error) {
	now := c.now()

	body := &claims.Claims{
		Email: s.Email,
		Role:  s.Role,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   s.Email,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(TTL).Unix(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, body).SignedString(c.secret)
	if err != nil {
		return "", claims.Session{}, fmt.Errorf("token signing: %w", err)
	}

	return signed, body.Session(), nil
}

// Verify returns the session embedded in tokenString. Every failure wraps
// ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (*claims.Session, error) {
	body := &claims.Claims{}

	tok, err := c.parser.ParseWithClaims(tokenString, body, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}

	// exp must lie strictly after now.
	if body.ExpiresAt == 0 || !c.now().Before(time.Unix(body.ExpiresAt, 0)) {
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}
	if body.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrInvalidToken)
	}

	s := body.Session()
	return &s, nil
}
