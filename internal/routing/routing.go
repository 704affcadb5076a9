package routing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"sessionlogin/internal/config"
	"sessionlogin/pkg/handlers"
	"sessionlogin/pkg/middleware"
	"sessionlogin/pkg/session"
	"sessionlogin/pkg/token"
	"sessionlogin/pkg/user"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// NewHandler wires the whole application. The gate wraps the router rather
// than being registered with Use, because mux only runs route middleware on
// matched routes and the gate must see every request.
func NewHandler(cfg *config.Config, checker user.Checker, logger *slog.Logger) (http.Handler, error) {
	codec, err := token.New(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	store := session.NewCookieStore(cfg.Production)

	authHandler := handlers.NewAuthHandler(checker, codec, store, logger)
	pageHandler := handlers.NewPageHandler(authHandler, logger)

	r := mux.NewRouter()
	InitRoutes(r, authHandler, pageHandler, middleware.LoadSession(store, codec, logger), logger)
	ServeStaticFiles(r, cfg.StaticDir)

	return middleware.Panic(logger)(middleware.Gate(store)(r)), nil
}

func InitRoutes(r *mux.Router, authHandler *handlers.AuthHandler, pageHandler *handlers.PageHandler, loadSession mux.MiddlewareFunc, logger *slog.Logger) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost).Name("login")
	api.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost).Name("logout")
	api.NotFoundHandler = handlers.NotFound(logger)

	r.HandleFunc(middleware.LoginPath, pageHandler.LoginPage).Methods(http.MethodGet)
	r.HandleFunc(middleware.LoginPath, pageHandler.LoginSubmit).Methods(http.MethodPost)

	r.Handle(middleware.DashboardPath, loadSession(http.HandlerFunc(pageHandler.Dashboard))).Methods(http.MethodGet)
}

func ServeStaticFiles(r *mux.Router, dir string) {
	fs := http.FileServer(http.Dir(dir))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))
}

// StartServer serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("the server is running", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
