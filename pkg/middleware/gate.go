package middleware

import (
	"net/http"
	"path"
	"strings"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

var (
	bypassPrefixes = []string{"/api/", "/_next/", "/static/"}
	bypassExts     = map[string]struct{}{
		".png":  {},
		".jpg":  {},
		".jpeg": {},
		".gif":  {},
	}
)

// TokenReader reports whether a session token came with the request.
type TokenReader interface {
	Read(r *http.Request) (string, bool)
}

// Gate redirects on session presence alone: a session goes to the dashboard,
// no session goes to the login page. The token is not verified here, so a
// malformed or expired cookie still counts as a session; the dashboard does
// the full check.
func Gate(store TokenReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path

			if bypass(p) {
				next.ServeHTTP(w, r)
				return
			}

			_, ok := store.Read(r)

			if ok && !strings.HasPrefix(p, DashboardPath) {
				http.Redirect(w, r, DashboardPath, http.StatusTemporaryRedirect)
				return
			}

			if !ok && !strings.HasPrefix(p, LoginPath) {
				http.Redirect(w, r, LoginPath, http.StatusTemporaryRedirect)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bypass(p string) bool {
	if p == "/api" {
		return true
	}
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	_, ok := bypassExts[path.Ext(p)]
	return ok
}
