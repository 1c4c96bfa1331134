// Package follow serves the follow and unfollow links on author profiles.
package follow

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"yatube/internal/domain/entity"
	"yatube/internal/handler/http/auth"
	"yatube/internal/handler/http/respond"
	"yatube/internal/observability/logging"
	followUC "yatube/internal/usecase/follow"
)

// Handler changes the follow edge from the caller to the profile's author
// and redirects back to the profile.
type Handler struct {
	Graph  *followUC.Graph
	Logger *slog.Logger
}

type changeFunc func(ctx context.Context, follower *entity.User, username string) error

func (h Handler) serve(w http.ResponseWriter, r *http.Request, change changeFunc) {
	username := r.PathValue("username")
	err := change(r.Context(), auth.UserFromContext(r.Context()), username)
	switch {
	case err == nil:
		respond.Redirect(w, r, "/profile/"+username+"/")
	case errors.Is(err, followUC.ErrAuthorNotFound):
		respond.NotFound(w)
	case errors.Is(err, followUC.ErrUnauthenticated):
		respond.Redirect(w, r, auth.LoginURL(r.URL.RequestURI()))
	default:
		logging.For(r.Context(), h.Logger).Error("follow change failed",
			slog.String("author", username),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// Follow makes the caller follow the author. Repeating it or following
// oneself changes nothing.
func (h Handler) Follow(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.Graph.Follow)
}

// Unfollow removes the edge if it exists.
func (h Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.Graph.Unfollow)
}

// Register registers the follow endpoints. Both require a login.
func Register(mux *http.ServeMux, h Handler) {
	mux.Handle("GET /profile/{username}/follow/{$}", auth.RequireLogin(http.HandlerFunc(h.Follow)))
	mux.Handle("GET /profile/{username}/unfollow/{$}", auth.RequireLogin(http.HandlerFunc(h.Unfollow)))
}
