package feed

import (
	"log/slog"
	"net/http"

	"yatube/internal/common/pagination"
	"yatube/internal/handler/http/auth"
	feedUC "yatube/internal/usecase/feed"
)

// Register registers the read-only feed views.
// cacheIndex wraps the global feed; pass nil to serve it uncached.
func Register(mux *http.ServeMux, svc *feedUC.Service, paginationCfg pagination.Config, cacheIndex func(http.Handler) http.Handler, logger *slog.Logger) {
	var index http.Handler = IndexHandler{Svc: svc, PaginationCfg: paginationCfg, Logger: logger}
	if cacheIndex != nil {
		index = cacheIndex(index)
	}
	mux.Handle("GET /{$}", index)
	mux.Handle("GET /group/{slug}/{$}", GroupHandler{Svc: svc, PaginationCfg: paginationCfg, Logger: logger})
	mux.Handle("GET /profile/{username}/{$}", ProfileHandler{Svc: svc, PaginationCfg: paginationCfg, Logger: logger})
	mux.Handle("GET /posts/{id}/{$}", DetailHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /follow/{$}", auth.RequireLogin(FollowHandler{Svc: svc, PaginationCfg: paginationCfg, Logger: logger}))
}
