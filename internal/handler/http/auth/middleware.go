package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"yatube/internal/domain/entity"
	"yatube/internal/handler/http/respond"
	"yatube/internal/repository"
)

// CookieName is the session cookie set on login.
const CookieName = "yatube_session"

// LoginPath is where anonymous users are sent for pages that need a login.
const LoginPath = "/auth/login/"

type ctxKey struct{}

// WithUser returns a context carrying user.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the current user, or an anonymous user when the
// request carries no valid session.
func UserFromContext(ctx context.Context) *entity.User {
	if u, ok := ctx.Value(ctxKey{}).(*entity.User); ok && u != nil {
		return u
	}
	return &entity.User{}
}

// Session resolves the caller from the session cookie or a Bearer token.
// Invalid or expired sessions are treated as anonymous.
func Session(sessions *Sessions, users repository.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := sessions.Parse(token)
			if err != nil {
				RecordSessionRejected("invalid")
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.Get(r.Context(), id)
			if err != nil {
				logger.Error("failed to load session user",
					slog.Int64("user_id", id),
					slog.Any("error", err))
				respond.SafeError(w, http.StatusInternalServerError, err)
				return
			}
			if user == nil {
				RecordSessionRejected("unknown_user")
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, prefix))
	}
	return ""
}

// LoginURL returns the login page address that comes back to next.
func LoginURL(next string) string {
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// RequireLogin redirects anonymous callers to the login page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()).IsAnonymous() {
			respond.Redirect(w, r, LoginURL(r.URL.RequestURI()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// safeNext accepts only local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}
