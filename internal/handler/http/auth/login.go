package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"yatube/internal/handler/http/form"
	"yatube/internal/handler/http/respond"
	"yatube/internal/observability/logging"
	authservice "yatube/internal/service/auth"
)

// loginForm is the document served by GET /auth/login/.
type loginForm struct {
	Form   string   `json:"form"`
	Fields []string `json:"fields"`
	Next   string   `json:"next"`
}

// LoginHandler serves the login form and checks submitted credentials.
// On success it sets the session cookie and redirects to the "next" target.
type LoginHandler struct {
	Auth     *authservice.Service
	Sessions *Sessions
	// SecureCookie marks the session cookie Secure.
	SecureCookie bool
	Logger       *slog.Logger
}

func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		respond.JSON(w, http.StatusOK, loginForm{
			Form:   "login",
			Fields: []string{"username", "password"},
			Next:   safeNext(r.URL.Query().Get("next")),
		})
		return
	}

	ctx := r.Context()
	start := time.Now()
	logger := logging.For(ctx, h.Logger)

	values, err := form.Decode(r)
	if err != nil {
		RecordAuthRequest("invalid_request")
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid login form"))
		return
	}
	next := safeNext(values.Get("next"))
	if next == "/" {
		next = safeNext(r.URL.Query().Get("next"))
	}
	username := values.Get("username")

	user, err := h.Auth.Authenticate(ctx, username, values["password"])
	RecordAuthDuration(time.Since(start).Seconds())
	if errors.Is(err, authservice.ErrInvalidCredentials) {
		logger.Warn("login failed",
			slog.String("username", username),
			slog.String("reason", "invalid_credentials"))
		RecordAuthRequest("failure")
		respond.FormErrors(w, "login",
			map[string]string{"__all__": err.Error()},
			map[string]string{"username": username, "next": next})
		return
	}
	if err != nil {
		logger.Error("login failed", slog.Any("error", err))
		RecordAuthRequest("error")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	token, expires, err := h.Sessions.Issue(user)
	if err != nil {
		logger.Error("failed to issue session", slog.Any("error", err))
		RecordAuthRequest("error")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	RecordAuthRequest("success")
	logger.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	respond.Redirect(w, r, next)
}

// LogoutHandler clears the session cookie and redirects to the index.
type LogoutHandler struct {
	SecureCookie bool
}

func (h LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	respond.Redirect(w, r, "/")
}
