package middleware

import (
	"log/slog"
	"net/http"

	"sessionlogin/pkg/claims"
)

// TokenVerifier decodes a session token.
type TokenVerifier interface {
	Verify(token string) (*claims.Session, error)
}

// LoadSession verifies the session cookie and, when it is valid, stores the
// decoded session in the request context. It never rejects a request;
// handlers decide what an absent session means.
func LoadSession(store TokenReader, verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := store.Read(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			s, err := verifier.Verify(tok)
			if err != nil {
				logger.Debug("session rejected", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(claims.WithSession(r.Context(), s)))
		})
	}
}
