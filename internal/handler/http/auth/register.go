package auth

import (
	"net/http"
)

// Register registers the login and logout endpoints.
// limit wraps credential submission; pass nil to leave it unthrottled.
func Register(mux *http.ServeMux, login LoginHandler, limit func(http.Handler) http.Handler) {
	var submit http.Handler = login
	if limit != nil {
		submit = limit(login)
	}
	mux.Handle("GET /auth/login/{$}", login)
	mux.Handle("POST /auth/login/{$}", submit)
	mux.Handle("POST /auth/logout/{$}", LogoutHandler{SecureCookie: login.SecureCookie})
}
