package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/handler/http/respond"
	"yatube/internal/repository/repotest"
	authservice "yatube/internal/service/auth"
)

func newLoginMux(t *testing.T) (*http.ServeMux, *Sessions) {
	t.Helper()
	store := repotest.New()
	svc := authservice.NewService(store.Users())
	_, err := svc.Register(context.Background(), "leo", "correct-horse")
	require.NoError(t, err)

	sessions := NewSessions(testSecret, time.Hour)
	mux := http.NewServeMux()
	Register(mux, LoginHandler{Auth: svc, Sessions: sessions, Logger: discardLogger()}, nil)
	return mux, sessions
}

func postLogin(mux http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestLogin_Form(t *testing.T) {
	mux, _ := newLoginMux(t)

	r := httptest.NewRequest(http.MethodGet, "/auth/login/?next=%2Fcreate%2F", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var doc loginForm
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
	assert.Equal(t, "login", doc.Form)
	assert.Equal(t, "/create/", doc.Next)
}

func TestLogin_Success(t *testing.T) {
	mux, sessions := newLoginMux(t)

	w := postLogin(mux, "/auth/login/?next=%2Fposts%2F1%2Fedit%2F",
		url.Values{"username": {"leo"}, "password": {"correct-horse"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1/edit/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	id, err := sessions.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestLogin_NextFromForm(t *testing.T) {
	mux, _ := newLoginMux(t)

	w := postLogin(mux, "/auth/login/",
		url.Values{"username": {"leo"}, "password": {"correct-horse"}, "next": {"/follow/"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/follow/", w.Header().Get("Location"))
}

func TestLogin_RejectsOffsiteNext(t *testing.T) {
	mux, _ := newLoginMux(t)

	w := postLogin(mux, "/auth/login/?next=%2F%2Fevil.example",
		url.Values{"username": {"leo"}, "password": {"correct-horse"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mux, _ := newLoginMux(t)

	for _, values := range []url.Values{
		{"username": {"leo"}, "password": {"wrong-password"}},
		{"username": {"nobody"}, "password": {"correct-horse"}},
		{"username": {""}, "password": {""}},
	} {
		w := postLogin(mux, "/auth/login/", values)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Result().Cookies())
		var doc respond.Form
		require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
		assert.Equal(t, "login", doc.Form)
		assert.Contains(t, doc.Errors, "__all__")
		assert.NotContains(t, doc.Values, "password")
	}
}

func TestLogin_UnsupportedBody(t *testing.T) {
	mux, _ := newLoginMux(t)

	r := httptest.NewRequest(http.MethodPost, "/auth/login/", strings.NewReader("leo"))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	mux, _ := newLoginMux(t)

	r := httptest.NewRequest(http.MethodPost, "/auth/logout/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestRegister_RateLimitsSubmissionOnly(t *testing.T) {
	store := repotest.New()
	limited := 0
	limit := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limited++
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	mux := http.NewServeMux()
	Register(mux, LoginHandler{Auth: authservice.NewService(store.Users()), Sessions: NewSessions(testSecret, time.Hour), Logger: discardLogger()}, limit)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/login/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = postLogin(mux, "/auth/login/", url.Values{"username": {"leo"}})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 1, limited)
}
