package post

import (
	"net/http"

	"yatube/internal/handler/http/auth"
)

// Register registers the post write endpoints. All of them require a login.
func Register(mux *http.ServeMux, h Handler) {
	mux.Handle("GET /create/{$}", auth.RequireLogin(http.HandlerFunc(h.CreateForm)))
	mux.Handle("POST /create/{$}", auth.RequireLogin(http.HandlerFunc(h.Create)))
	mux.Handle("GET /posts/{id}/edit/{$}", auth.RequireLogin(http.HandlerFunc(h.EditForm)))
	mux.Handle("POST /posts/{id}/edit/{$}", auth.RequireLogin(http.HandlerFunc(h.Edit)))
	mux.Handle("POST /posts/{id}/comment/{$}", auth.RequireLogin(http.HandlerFunc(h.Comment)))
	mux.Handle("POST /posts/{id}/delete/{$}", auth.RequireLogin(http.HandlerFunc(h.Delete)))
}
