package user

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultEmail    = "user@example.com"
	DefaultPassword = "password"
	RoleUser        = "user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service accepts exactly one email/password pair. The password is kept only
// as a bcrypt digest.
type Service struct {
	email  []byte
	digest []byte
	role   string
}

func NewService() (*Service, error) {
	return NewFixedService(DefaultEmail, DefaultPassword, RoleUser, bcrypt.DefaultCost)
}

func NewFixedService(email, password, role string, cost int) (*Service, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password error: %w", err)
	}
	return &Service{email: []byte(email), digest: digest, role: role}, nil
}

// Check reports ErrInvalidCredentials for any mismatch without saying which
// field was wrong. Both comparisons always run.
func (s *Service) Check(email, password string) (*User, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), s.email) == 1
	passwordOK := bcrypt.CompareHashAndPassword(s.digest, []byte(password)) == nil

	if !emailOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	return &User{Email: email, Role: s.role}, nil
}
