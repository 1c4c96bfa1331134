package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/domain/entity"
	"yatube/internal/infra/adapter/persistence/sqlite"
	"yatube/internal/infra/db"
	"yatube/internal/repository"
)

type fixture struct {
	db       *sql.DB
	users    repository.UserRepository
	groups   repository.GroupRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, db.SQLite, filepath.Join(t.TempDir(), "yatube.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(ctx, conn, db.SQLite))

	return &fixture{
		db:       conn,
		users:    sqlite.NewUserRepo(conn),
		groups:   sqlite.NewGroupRepo(conn),
		posts:    sqlite.NewPostRepo(conn),
		comments: sqlite.NewCommentRepo(conn),
		follows:  sqlite.NewFollowRepo(conn),
	}
}

func (f *fixture) user(t *testing.T, name string) *entity.User {
	t.Helper()
	u := &entity.User{Username: name, PasswordHash: "x"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) post(t *testing.T, author *entity.User, group *entity.Group, text string) *entity.Post {
	t.Helper()
	p := &entity.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, f.posts.Create(context.Background(), p))
	return p
}

func TestPostRepo_PagesCoverSequenceNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leo := f.user(t, "leo")

	for i := 0; i < 13; i++ {
		f.post(t, leo, nil, fmt.Sprintf("post %d", i))
	}

	total, err := f.posts.CountPosts(ctx, repository.AllPosts())
	require.NoError(t, err)
	assert.Equal(t, int64(13), total)

	first, err := f.posts.ListPosts(ctx, repository.AllPosts(), repository.NewestFirst, 0, 10)
	require.NoError(t, err)
	second, err := f.posts.ListPosts(ctx, repository.AllPosts(), repository.NewestFirst, 10, 10)
	require.NoError(t, err)
	require.Len(t, first, 10)
	require.Len(t, second, 3)

	all := append(first, second...)
	seen := map[int64]bool{}
	for i, v := range all {
		assert.False(t, seen[v.Post.ID], "post %d listed twice", v.Post.ID)
		seen[v.Post.ID] = true
		if i > 0 {
			prev := all[i-1].Post
			assert.False(t, v.Post.PubDate.After(prev.PubDate), "order broken at %d", i)
		}
	}
	assert.Equal(t, "post 12", all[0].Post.Text)
	assert.Equal(t, "leo", all[0].AuthorUsername)
}

func TestPostRepo_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leo, ann, bob := f.user(t, "leo"), f.user(t, "ann"), f.user(t, "bob")

	cats := &entity.Group{Title: "Cats", Slug: "cats"}
	require.NoError(t, f.groups.Upsert(ctx, cats))

	f.post(t, leo, cats, "leo in cats")
	f.post(t, ann, nil, "ann alone")
	f.post(t, bob, cats, "bob in cats")

	_, err := f.follows.Create(ctx, &entity.Follow{UserID: leo.ID, AuthorID: ann.ID})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter repository.PostFilter
		want   []string
	}{
		{name: "group", filter: repository.ByGroup("cats"), want: []string{"bob in cats", "leo in cats"}},
		{name: "author", filter: repository.ByAuthor("ann"), want: []string{"ann alone"}},
		{name: "followed", filter: repository.ByFollowed(leo.ID), want: []string{"ann alone"}},
		{name: "unknown group", filter: repository.ByGroup("dogs"), want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := f.posts.ListPosts(ctx, tt.filter, repository.NewestFirst, 0, 10)
			require.NoError(t, err)
			got := make([]string, 0, len(views))
			for _, v := range views {
				got = append(got, v.Post.Text)
			}
			assert.Equal(t, tt.want, got)

			n, err := f.posts.CountPosts(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), n)
		})
	}
}

func TestPostRepo_UpdateKeepsPubDateAndAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leo := f.user(t, "leo")
	p := f.post(t, leo, nil, "draft")

	before, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)

	p.Text = "final"
	p.Image = "posts/cat.png"
	require.NoError(t, f.posts.Update(ctx, p))

	after, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", after.Post.Text)
	assert.Equal(t, "posts/cat.png", after.Post.Image)
	assert.True(t, before.Post.PubDate.Equal(after.Post.PubDate))
	assert.Equal(t, leo.ID, after.Post.AuthorID)
}

func TestGroupRepo_DeleteKeepsPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leo := f.user(t, "leo")
	cats := &entity.Group{Title: "Cats", Slug: "cats"}
	require.NoError(t, f.groups.Upsert(ctx, cats))
	p := f.post(t, leo, cats, "meow")

	require.NoError(t, f.groups.Delete(ctx, "cats"))

	got, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Post.GroupID)
	assert.Empty(t, got.GroupSlug)

	err = f.groups.Delete(ctx, "cats")
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestGroupRepo_UpsertUpdatesExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := &entity.Group{Title: "Cats", Slug: "cats"}
	require.NoError(t, f.groups.Upsert(ctx, g))
	firstID := g.ID

	g2 := &entity.Group{Title: "Cats and kittens", Slug: "cats", Description: "more"}
	require.NoError(t, f.groups.Upsert(ctx, g2))
	assert.Equal(t, firstID, g2.ID)

	got, err := f.groups.GetBySlug(ctx, "cats")
	require.NoError(t, err)
	assert.Equal(t, "Cats and kittens", got.Title)

	n, err := f.groups.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPostRepo_DeleteCascadesComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leo, ann := f.user(t, "leo"), f.user(t, "ann")
	p := f.post(t, leo, nil, "hello")

	require.NoError(t, f.comments.Create(ctx, &entity.Comment{PostID: p.ID, AuthorID: ann.ID, Text: "first"}))
	require.NoError(t, f.comments.Create(ctx, &entity.Comment{PostID: p.ID, AuthorID: leo.ID, Text: "second"}))

	list, err := f.comments.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Comment.Text)
	assert.Equal(t, "leo", list[0].AuthorUsername)

	require.NoError(t, f.posts.Delete(ctx, p.ID))
	list, err = f.comments.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFollowRepo_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leo, ann := f.user(t, "leo"), f.user(t, "ann")
	edge := &entity.Follow{UserID: leo.ID, AuthorID: ann.ID}

	created, err := f.follows.Create(ctx, edge)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.follows.Create(ctx, edge)
	require.NoError(t, err)
	assert.False(t, created)

	n, err := f.follows.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err := f.follows.Exists(ctx, leo.ID, ann.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ids, err := f.follows.ListFollowedAuthors(ctx, leo.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{ann.ID}, ids)

	require.NoError(t, f.follows.Delete(ctx, leo.ID, ann.ID))
	require.NoError(t, f.follows.Delete(ctx, leo.ID, ann.ID))
	ok, err = f.follows.Exists(ctx, leo.ID, ann.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowRepo_RejectsSelfFollow(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")

	_, err := f.follows.Create(context.Background(), &entity.Follow{UserID: leo.ID, AuthorID: leo.ID})
	assert.Error(t, err)
}

func TestUserRepo_Lookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leo := f.user(t, "leo")

	got, err := f.users.GetByUsername(ctx, "leo")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, leo.ID, got.ID)

	missing, err := f.users.Get(ctx, leo.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Error(t, f.users.Create(ctx, &entity.User{Username: "leo", PasswordHash: "y"}))
}
