package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"sessionlogin/pkg/claims"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"join": func(msgs []string) string { return strings.Join(msgs, ", ") },
}

type loginPage struct {
	Email  string
	Errors FieldErrors
}

type dashboardPage struct {
	Session *claims.Session
}

// PageHandler serves the server-rendered login and dashboard pages.
type PageHandler struct {
	Auth      *AuthHandler
	Logger    *slog.Logger
	login     *template.Template
	dashboard *template.Template
}

func NewPageHandler(auth *AuthHandler, logger *slog.Logger) *PageHandler {
	base := template.Must(template.New("layout.html").Funcs(pageFuncs).ParseFS(templateFS, "templates/layout.html"))

	return &PageHandler{
		Auth:      auth,
		Logger:    logger,
		login:     template.Must(template.Must(base.Clone()).ParseFS(templateFS, "templates/login.html")),
		dashboard: template.Must(template.Must(base.Clone()).ParseFS(templateFS, "templates/dashboard.html")),
	}
}

// LoginPage is GET /login.
func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, h.login, "login.html", loginPage{Errors: FieldErrors{}}, http.StatusOK)
}

// LoginSubmit is POST /login, the form post used when scripts are off.
func (h *PageHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	errs, status := h.Auth.authenticate(w, r)
	if errs != nil {
		h.render(w, h.login, "login.html", loginPage{Email: r.PostFormValue(fieldEmail), Errors: errs}, status)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Dashboard is GET /dashboard. It expects LoadSession to have run.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, _ := claims.FromContext(r.Context())
	h.render(w, h.dashboard, "dashboard.html", dashboardPage{Session: s}, http.StatusOK)
}

func (h *PageHandler) render(w http.ResponseWriter, t *template.Template, name string, data any, status int) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		h.Logger.Error("render", "template", name, "error", err)
		http.Error(w, msgSomethingWrong, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("failed to write page", "template", name, "error", err)
	}
}
