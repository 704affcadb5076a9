package session

import (
	"net/http"
	"time"
)

const (
	CookieName = "currentUser"
	MaxAge     = time.Hour
)

// CookieStore keeps the session token on the client. Secure is set only in
// production so the cookie also works over plain http during development.
type CookieStore struct {
	Secure bool
	now    func() time.Time
}

func NewCookieStore(secure bool) *CookieStore {
	return &CookieStore{Secure: secure, now: time.Now}
}

// Set issues the session cookie carrying token.
func (s *CookieStore) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.now().Add(MaxAge),
		MaxAge:   int(MaxAge / time.Second),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear overwrites the session cookie with an empty, already expired one.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the session token sent with r. An empty cookie is absent.
func (s *CookieStore) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
