// Package repotest provides an in-memory implementation of every repository
// interface for use in tests of the layers above persistence.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
)

// Store keeps all tables in memory and mirrors the SQL deletion policy.
// Each write advances an internal clock by one second so publication
// dates are strictly increasing.
type Store struct {
	mu       sync.Mutex
	users    map[int64]*entity.User
	groups   map[int64]*entity.Group
	posts    map[int64]*entity.Post
	comments map[int64]*entity.Comment
	follows  map[[2]int64]bool
	nextID   int64
	clock    time.Time

	// Err, when set, is returned by every operation.
	Err error
}

func New() *Store {
	return &Store{
		users:    map[int64]*entity.User{},
		groups:   map[int64]*entity.Group{},
		posts:    map[int64]*entity.Post{},
		comments: map[int64]*entity.Comment{},
		follows:  map[[2]int64]bool{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) tick() (int64, time.Time) {
	s.nextID++
	s.clock = s.clock.Add(time.Second)
	return s.nextID, s.clock
}

func (s *Store) Users() repository.UserRepository       { return userRepo{s} }
func (s *Store) Groups() repository.GroupRepository     { return groupRepo{s} }
func (s *Store) Posts() repository.PostRepository       { return postRepo{s} }
func (s *Store) Comments() repository.CommentRepository { return commentRepo{s} }
func (s *Store) Follows() repository.FollowRepository   { return followRepo{s} }

// AddUser stores a user and returns it.
func (s *Store) AddUser(username string) *entity.User {
	u := &entity.User{Username: username, PasswordHash: "x"}
	if err := s.Users().Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

// AddGroup stores a group and returns it.
func (s *Store) AddGroup(slug, title string) *entity.Group {
	g := &entity.Group{Slug: slug, Title: title}
	if err := s.Groups().Upsert(context.Background(), g); err != nil {
		panic(err)
	}
	return g
}

// AddPost stores a post by author, optionally in group.
func (s *Store) AddPost(author *entity.User, group *entity.Group, text string) *entity.Post {
	p := &entity.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		id := group.ID
		p.GroupID = &id
	}
	if err := s.Posts().Create(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}

type userRepo struct{ s *Store }

func (r userRepo) Get(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if u := r.s.userByName(username); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) userByName(username string) *entity.User {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.s.userByName(u.Username) != nil {
		return fmt.Errorf("username %q already exists", u.Username)
	}
	u.ID, u.CreatedAt = r.s.tick()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), r.s.Err
}

type groupRepo struct{ s *Store }

func (r groupRepo) GetBySlug(_ context.Context, slug string) (*entity.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if g := r.s.groupBySlug(slug); g != nil {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) groupBySlug(slug string) *entity.Group {
	for _, g := range s.groups {
		if g.Slug == slug {
			return g
		}
	}
	return nil
}

func (r groupRepo) Get(_ context.Context, id int64) (*entity.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if g, ok := r.s.groups[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (r groupRepo) List(_ context.Context) ([]*entity.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*entity.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r groupRepo) Upsert(_ context.Context, g *entity.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if existing := r.s.groupBySlug(g.Slug); existing != nil {
		existing.Title = g.Title
		existing.Description = g.Description
		g.ID = existing.ID
		return nil
	}
	g.ID, _ = r.s.tick()
	cp := *g
	r.s.groups[g.ID] = &cp
	return nil
}

func (r groupRepo) Delete(_ context.Context, slug string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	g := r.s.groupBySlug(slug)
	if g == nil {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	delete(r.s.groups, g.ID)
	for _, p := range r.s.posts {
		if p.GroupID != nil && *p.GroupID == g.ID {
			p.GroupID = nil
		}
	}
	return nil
}

func (r groupRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.groups)), r.s.Err
}

type postRepo struct{ s *Store }

func (s *Store) matches(p *entity.Post, f repository.PostFilter) bool {
	switch f.Kind {
	case repository.FilterByGroup:
		g := s.groupBySlug(f.GroupSlug)
		return g != nil && p.GroupID != nil && *p.GroupID == g.ID
	case repository.FilterByAuthor:
		u := s.userByName(f.Username)
		return u != nil && p.AuthorID == u.ID
	case repository.FilterByFollowed:
		return s.follows[[2]int64{f.FollowerID, p.AuthorID}]
	default:
		return true
	}
}

func (s *Store) view(p *entity.Post) repository.PostView {
	cp := *p
	if p.GroupID != nil {
		id := *p.GroupID
		cp.GroupID = &id
	}
	v := repository.PostView{Post: &cp}
	if u, ok := s.users[p.AuthorID]; ok {
		v.AuthorUsername = u.Username
	}
	if p.GroupID != nil {
		if g, ok := s.groups[*p.GroupID]; ok {
			v.GroupSlug = g.Slug
			v.GroupTitle = g.Title
		}
	}
	return v
}

func (s *Store) filtered(f repository.PostFilter, order repository.PostOrder) []*entity.Post {
	out := make([]*entity.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if s.matches(p, f) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.PubDate.Equal(b.PubDate) {
			if order == repository.OldestFirst {
				return a.PubDate.Before(b.PubDate)
			}
			return a.PubDate.After(b.PubDate)
		}
		if order == repository.OldestFirst {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
	return out
}

func (r postRepo) ListPosts(_ context.Context, f repository.PostFilter, order repository.PostOrder, offset, limit int) ([]repository.PostView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	all := r.s.filtered(f, order)
	out := make([]repository.PostView, 0, limit)
	for i := offset; i < len(all) && i < offset+limit; i++ {
		out = append(out, r.s.view(all[i]))
	}
	return out, nil
}

func (r postRepo) CountPosts(_ context.Context, f repository.PostFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return int64(len(r.s.filtered(f, repository.NewestFirst))), nil
}

func (r postRepo) Get(_ context.Context, id int64) (*repository.PostView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	v := r.s.view(p)
	return &v, nil
}

func (r postRepo) Create(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.users[p.AuthorID]; !ok {
		return fmt.Errorf("Create: author %d does not exist", p.AuthorID)
	}
	p.ID, p.PubDate = r.s.tick()
	cp := *p
	r.s.posts[p.ID] = &cp
	return nil
}

func (r postRepo) Update(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	stored, ok := r.s.posts[p.ID]
	if !ok {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	stored.Text = p.Text
	stored.GroupID = p.GroupID
	stored.Image = p.Image
	return nil
}

func (r postRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.posts[id]; !ok {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

type commentRepo struct{ s *Store }

func (r commentRepo) ListByPost(_ context.Context, postID int64) ([]repository.CommentView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]repository.CommentView, 0)
	for _, c := range r.s.comments {
		if c.PostID != postID {
			continue
		}
		cp := *c
		v := repository.CommentView{Comment: &cp}
		if u, ok := r.s.users[c.AuthorID]; ok {
			v.AuthorUsername = u.Username
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Comment.ID > out[j].Comment.ID })
	return out, nil
}

func (r commentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.posts[c.PostID]; !ok {
		return fmt.Errorf("Create: post %d does not exist", c.PostID)
	}
	c.ID, c.PubDate = r.s.tick()
	cp := *c
	r.s.comments[c.ID] = &cp
	return nil
}

// CommentCount returns the number of stored comments.
func (s *Store) CommentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

type followRepo struct{ s *Store }

func (r followRepo) Create(_ context.Context, f *entity.Follow) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	if f.UserID == f.AuthorID {
		return false, fmt.Errorf("Create: self follow violates check constraint")
	}
	key := [2]int64{f.UserID, f.AuthorID}
	if r.s.follows[key] {
		return false, nil
	}
	r.s.follows[key] = true
	return true, nil
}

func (r followRepo) Delete(_ context.Context, userID, authorID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	delete(r.s.follows, [2]int64{userID, authorID})
	return nil
}

func (r followRepo) Exists(_ context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	return r.s.follows[[2]int64{userID, authorID}], nil
}

func (r followRepo) ListFollowedAuthors(_ context.Context, userID int64) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	ids := make([]int64, 0)
	for k := range r.s.follows {
		if k[0] == userID {
			ids = append(ids, k[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r followRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.follows)), r.s.Err
}
