package feed

import (
	"errors"
	"log/slog"
	"net/http"

	"yatube/internal/common/pagination"
	"yatube/internal/handler/http/auth"
	"yatube/internal/handler/http/pathutil"
	"yatube/internal/handler/http/respond"
	"yatube/internal/observability/logging"
	feedUC "yatube/internal/usecase/feed"
)

// writeError maps feed errors onto responses.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, feedUC.ErrGroupNotFound),
		errors.Is(err, feedUC.ErrAuthorNotFound),
		errors.Is(err, feedUC.ErrPostNotFound):
		respond.NotFound(w)
	case errors.Is(err, feedUC.ErrUnauthenticated):
		respond.Redirect(w, r, auth.LoginURL(r.URL.RequestURI()))
	default:
		logging.For(r.Context(), logger).Error("feed request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// IndexHandler serves the global feed.
type IndexHandler struct {
	Svc           *feedUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := h.Svc.Global(r.Context(), pagination.ParsePage(r, h.PaginationCfg))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, newPageDTO(page))
}

// GroupHandler serves the feed of one group.
type GroupHandler struct {
	Svc           *feedUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h GroupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gp, err := h.Svc.Group(r.Context(), r.PathValue("slug"), pagination.ParsePage(r, h.PaginationCfg))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, GroupPageDTO{
		Group:   newGroupDTO(gp.Group),
		PageDTO: newPageDTO(gp.Page),
	})
}

// ProfileHandler serves an author's posts.
type ProfileHandler struct {
	Svc           *feedUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := auth.UserFromContext(r.Context())
	pp, err := h.Svc.Profile(r.Context(), r.PathValue("username"), viewer, pagination.ParsePage(r, h.PaginationCfg))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, newProfileDTO(pp, viewer))
}

// DetailHandler serves a single post with its comments.
type DetailHandler struct {
	Svc    *feedUC.Service
	Logger *slog.Logger
}

func (h DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.NotFound(w)
		return
	}
	d, err := h.Svc.Detail(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, newDetailDTO(d, auth.UserFromContext(r.Context())))
}

// FollowHandler serves the posts of the authors the caller follows.
type FollowHandler struct {
	Svc           *feedUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h FollowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := h.Svc.Follow(r.Context(), auth.UserFromContext(r.Context()), pagination.ParsePage(r, h.PaginationCfg))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, newPageDTO(page))
}
