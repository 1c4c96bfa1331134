package post

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/domain/entity"
	"yatube/internal/domain/event"
	"yatube/internal/handler/http/auth"
	"yatube/internal/handler/http/respond"
	"yatube/internal/repository"
	"yatube/internal/repository/repotest"
	postUC "yatube/internal/usecase/post"
)

type fixture struct {
	store *repotest.Store
	mux   *http.ServeMux
	leo   *entity.User
	mia   *entity.User
	cats  *entity.Group
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repotest.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		store: store,
		leo:   store.AddUser("leo"),
		mia:   store.AddUser("mia"),
		cats:  store.AddGroup("cats", "Cats"),
		mux:   http.NewServeMux(),
	}
	svc := &postUC.Service{
		Posts:    store.Posts(),
		Groups:   store.Groups(),
		Comments: store.Comments(),
		Events:   event.Discard{},
		Logger:   logger,
	}
	Register(f.mux, Handler{Svc: svc, Groups: store.Groups(), Logger: logger})
	return f
}

func (f *fixture) do(method, target string, user *entity.User, values url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	}
	r := httptest.NewRequest(method, target, body)
	if values != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if user != nil {
		r = r.WithContext(auth.WithUser(r.Context(), user))
	}
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, r)
	return w
}

func (f *fixture) posts(t *testing.T) []repository.PostView {
	t.Helper()
	views, err := f.store.Posts().ListPosts(context.Background(), repository.AllPosts(), repository.NewestFirst, 0, 100)
	require.NoError(t, err)
	return views
}

func TestAnonymousIsSentToLogin(t *testing.T) {
	f := newFixture(t)
	p := f.store.AddPost(f.leo, nil, "hello")

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/create/"},
		{http.MethodPost, "/create/"},
		{http.MethodGet, fmt.Sprintf("/posts/%d/edit/", p.ID)},
		{http.MethodPost, fmt.Sprintf("/posts/%d/edit/", p.ID)},
		{http.MethodPost, fmt.Sprintf("/posts/%d/comment/", p.ID)},
		{http.MethodPost, fmt.Sprintf("/posts/%d/delete/", p.ID)},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := f.do(tt.method, tt.target, nil, url.Values{"text": {"x"}})
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, auth.LoginURL(tt.target), w.Header().Get("Location"))
		})
	}
	assert.Len(t, f.posts(t), 1)
	assert.Equal(t, 0, f.store.CommentCount())
}

func TestCreateForm(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/create/", f.leo, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dto FormDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.False(t, dto.IsEdit)
	assert.Equal(t, "/create/", dto.Action)
	require.Len(t, dto.Groups, 1)
	assert.Equal(t, "cats", dto.Groups[0].Slug)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/create/", f.leo, url.Values{
		"text":  {"new post"},
		"group": {fmt.Sprint(f.cats.ID)},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))
	views := f.posts(t)
	require.Len(t, views, 1)
	assert.Equal(t, "new post", views[0].Post.Text)
	assert.Equal(t, f.leo.ID, views[0].Post.AuthorID)
	assert.Equal(t, "cats", views[0].GroupSlug)
}

func TestCreate_WithoutContentType(t *testing.T) {
	f := newFixture(t)
	r := httptest.NewRequest(http.MethodPost, "/create/", strings.NewReader("text=hi"))
	r = r.WithContext(auth.WithUser(r.Context(), f.leo))
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	views := f.posts(t)
	require.Len(t, views, 1)
	assert.Equal(t, "hi", views[0].Post.Text)
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		wantField string
	}{
		{name: "empty text", values: url.Values{"text": {"   "}}, wantField: "text"},
		{name: "unknown group", values: url.Values{"text": {"hi"}, "group": {"999"}}, wantField: "group"},
		{name: "malformed group", values: url.Values{"text": {"hi"}, "group": {"cats"}}, wantField: "group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			w := f.do(http.MethodPost, "/create/", f.leo, tt.values)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var doc respond.Form
			require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
			assert.Equal(t, "post", doc.Form)
			assert.Contains(t, doc.Errors, tt.wantField)
			assert.Equal(t, tt.values.Get("group"), doc.Values["group"])
			assert.Empty(t, f.posts(t))
		})
	}
}

func TestCreate_UnsupportedBody(t *testing.T) {
	f := newFixture(t)
	r := httptest.NewRequest(http.MethodPost, "/create/", strings.NewReader("hi"))
	r.Header.Set("Content-Type", "text/plain")
	r = r.WithContext(auth.WithUser(r.Context(), f.leo))
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestEditForm(t *testing.T) {
	f := newFixture(t)
	p := f.store.AddPost(f.leo, f.cats, "original")
	target := fmt.Sprintf("/posts/%d/edit/", p.ID)

	t.Run("author", func(t *testing.T) {
		w := f.do(http.MethodGet, target, f.leo, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var dto FormDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.True(t, dto.IsEdit)
		assert.Equal(t, "original", dto.Values["text"])
		assert.Equal(t, fmt.Sprint(f.cats.ID), dto.Values["group"])
	})

	t.Run("non-author", func(t *testing.T) {
		w := f.do(http.MethodGet, target, f.mia, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, fmt.Sprintf("/posts/%d/", p.ID), w.Header().Get("Location"))
	})

	t.Run("missing post", func(t *testing.T) {
		w := f.do(http.MethodGet, "/posts/999/edit/", f.leo, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEdit(t *testing.T) {
	f := newFixture(t)
	p := f.store.AddPost(f.leo, f.cats, "original")
	target := fmt.Sprintf("/posts/%d/edit/", p.ID)
	detail := fmt.Sprintf("/posts/%d/", p.ID)

	t.Run("non-author changes nothing", func(t *testing.T) {
		w := f.do(http.MethodPost, target, f.mia, url.Values{"text": {"hijacked"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detail, w.Header().Get("Location"))
		assert.Equal(t, "original", f.posts(t)[0].Post.Text)
	})

	t.Run("invalid form keeps the post", func(t *testing.T) {
		w := f.do(http.MethodPost, target, f.leo, url.Values{"text": {""}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "original", f.posts(t)[0].Post.Text)
	})

	t.Run("author edits text and drops group", func(t *testing.T) {
		before := f.posts(t)[0].Post
		w := f.do(http.MethodPost, target, f.leo, url.Values{"text": {"edited"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detail, w.Header().Get("Location"))

		after := f.posts(t)[0]
		assert.Equal(t, "edited", after.Post.Text)
		assert.Nil(t, after.Post.GroupID)
		assert.Equal(t, before.PubDate, after.Post.PubDate)
		assert.Equal(t, f.leo.ID, after.Post.AuthorID)
	})
}

func TestComment(t *testing.T) {
	f := newFixture(t)
	p := f.store.AddPost(f.leo, nil, "hello")
	target := fmt.Sprintf("/posts/%d/comment/", p.ID)
	detail := fmt.Sprintf("/posts/%d/", p.ID)

	w := f.do(http.MethodPost, target, f.mia, url.Values{"text": {"nice"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))
	assert.Equal(t, 1, f.store.CommentCount())

	w = f.do(http.MethodPost, target, f.mia, url.Values{"text": {"  "}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))
	assert.Equal(t, 1, f.store.CommentCount())

	w = f.do(http.MethodPost, "/posts/999/comment/", f.mia, url.Values{"text": {"lost"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, f.store.CommentCount())
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	p := f.store.AddPost(f.leo, nil, "hello")
	require.NoError(t, f.store.Comments().Create(context.Background(),
		&entity.Comment{PostID: p.ID, AuthorID: f.mia.ID, Text: "nice"}))
	target := fmt.Sprintf("/posts/%d/delete/", p.ID)

	w := f.do(http.MethodPost, target, f.mia, url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", p.ID), w.Header().Get("Location"))
	assert.Len(t, f.posts(t), 1)

	w = f.do(http.MethodPost, target, f.leo, url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))
	assert.Empty(t, f.posts(t))
	assert.Equal(t, 0, f.store.CommentCount())

	w = f.do(http.MethodPost, target, f.leo, url.Values{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
