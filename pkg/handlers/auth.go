package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"

	"sessionlogin/pkg/claims"
	"sessionlogin/pkg/user"
)

const maxFormBytes = 1 << 20

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(s claims.Session) (string, claims.Session, error)
}

// SessionStore keeps the session token on the client.
type SessionStore interface {
	Set(w http.ResponseWriter, token string)
	Clear(w http.ResponseWriter)
	Read(r *http.Request) (string, bool)
}

type AuthHandler struct {
	Service  user.Checker
	Tokens   TokenIssuer
	Sessions SessionStore
	Logger   *slog.Logger
	validate *validator.Validate
}

func NewAuthHandler(service user.Checker, tokens TokenIssuer, sessions SessionStore, logger *slog.Logger) *AuthHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	return &AuthHandler{
		Service:  service,
		Tokens:   tokens,
		Sessions: sessions,
		Logger:   logger,
		validate: v,
	}
}

// Login is POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	errs, status := h.authenticate(w, r)
	if errs != nil {
		writeErrors(w, h.Logger, errs, status)
		return
	}
	writeSuccess(w, h.Logger)
}

// Logout is POST /api/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	if ok := writeSuccess(w, h.Logger); ok {
		h.Logger.Info("logout")
	}
}

// authenticate runs the whole login pass: parse, validate, check, issue and
// store. On success the session cookie is set and errs is nil.
func (h *AuthHandler) authenticate(w http.ResponseWriter, r *http.Request) (errs FieldErrors, status int) {
	form, err := parseLoginForm(w, r)
	if err != nil {
		h.Logger.Error("login", "error", err, "path", r.URL.Path)
		return generalError(msgSomethingWrong), http.StatusInternalServerError
	}

	if errs := h.validateForm(form); errs != nil {
		h.Logger.Info("login", "error", "validation failed", "fields", len(errs))
		return errs, http.StatusBadRequest
	}

	u, err := h.Service.Check(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			h.Logger.Warn("login", "error", "invalid credentials", "email", form.Email)
			return FieldErrors{fieldCredentials: {msgInvalidCredentials}}, http.StatusBadRequest
		}
		h.Logger.Error("login", "error", err)
		return generalError(msgSomethingWrong), http.StatusInternalServerError
	}

	token, issued, err := h.Tokens.Issue(claims.Session{Email: u.Email, Role: u.Role})
	if err != nil {
		h.Logger.Error("token signing", "error", err)
		return generalError(msgSomethingWrong), http.StatusInternalServerError
	}

	h.Sessions.Set(w, token)
	h.Logger.Info("login", "user", issued.Email, "expires", issued.ExpiresAt)
	return nil, http.StatusOK
}

func parseLoginForm(w http.ResponseWriter, r *http.Request) (LoginForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxFormBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return LoginForm{}, fmt.Errorf("parse form: %w", err)
	}

	return LoginForm{
		Email:    r.PostFormValue(fieldEmail),
		Password: r.PostFormValue(fieldPassword),
	}, nil
}

var fieldMessages = map[string]map[string]string{
	fieldEmail: {
		"required": msgEmailRequired,
		"email":    msgEmailInvalid,
	},
	fieldPassword: {
		"required": msgPasswordRequired,
	},
}

func (h *AuthHandler) validateForm(form LoginForm) FieldErrors {
	err := h.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return generalError(msgSomethingWrong)
	}

	errs := FieldErrors{}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()][fe.Tag()]
		if !ok {
			msg = "Invalid " + fe.Field()
		}
		errs.Add(fe.Field(), msg)
	}
	return errs
}
