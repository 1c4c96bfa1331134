package feed

import (
	"strconv"
	"time"

	"yatube/internal/common/pagination"
	"yatube/internal/domain/entity"
	"yatube/internal/repository"
	feedUC "yatube/internal/usecase/feed"
)

// GroupDTO is a group as shown in listings.
type GroupDTO struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// PostDTO is a post as shown in listings and on its detail page.
type PostDTO struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Author  string    `json:"author"`
	Group   *GroupDTO `json:"group,omitempty"`
	Image   string    `json:"image,omitempty"`
	URL     string    `json:"url"`
}

// PageDTO is one page of a post listing.
type PageDTO struct {
	Posts      []PostDTO           `json:"posts"`
	Pagination pagination.Metadata `json:"pagination"`
}

// GroupPageDTO is a page of a group feed.
type GroupPageDTO struct {
	Group GroupDTO `json:"group"`
	PageDTO
}

// ProfileDTO is a page of an author's posts.
type ProfileDTO struct {
	Author    string `json:"author"`
	PostCount int64  `json:"post_count"`
	Following bool   `json:"following"`
	// FollowURL toggles the follow state; empty for anonymous viewers
	// and for the author's own profile.
	FollowURL string `json:"follow_url,omitempty"`
	PageDTO
}

// CommentDTO is a comment under a post.
type CommentDTO struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

// CommentFormDTO describes the form for adding a comment.
type CommentFormDTO struct {
	Form   string   `json:"form"`
	Action string   `json:"action"`
	Fields []string `json:"fields"`
}

// DetailDTO is a single post with its comments.
type DetailDTO struct {
	Post            PostDTO         `json:"post"`
	AuthorPostCount int64           `json:"author_post_count"`
	Comments        []CommentDTO    `json:"comments"`
	CommentForm     *CommentFormDTO `json:"comment_form"`
	EditURL         string          `json:"edit_url,omitempty"`
}

func postURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}

func groupURL(slug string) string {
	return "/group/" + slug + "/"
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func newGroupDTO(g *entity.Group) GroupDTO {
	return GroupDTO{Slug: g.Slug, Title: g.Title, Description: g.Description, URL: groupURL(g.Slug)}
}

func newPostDTO(v repository.PostView) PostDTO {
	dto := PostDTO{
		ID:      v.Post.ID,
		Text:    v.Post.Text,
		PubDate: v.Post.PubDate,
		Author:  v.AuthorUsername,
		Image:   v.Post.Image,
		URL:     postURL(v.Post.ID),
	}
	if v.GroupSlug != "" {
		dto.Group = &GroupDTO{Slug: v.GroupSlug, Title: v.GroupTitle, URL: groupURL(v.GroupSlug)}
	}
	return dto
}

func newPageDTO(p feedUC.Page) PageDTO {
	posts := make([]PostDTO, 0, len(p.Posts))
	for _, v := range p.Posts {
		posts = append(posts, newPostDTO(v))
	}
	return PageDTO{Posts: posts, Pagination: p.Pagination}
}

func newProfileDTO(p *feedUC.ProfilePage, viewer *entity.User) ProfileDTO {
	dto := ProfileDTO{
		Author:    p.Author.Username,
		PostCount: p.PostCount,
		Following: p.Following,
		PageDTO:   newPageDTO(p.Page),
	}
	if !viewer.IsAnonymous() && viewer.ID != p.Author.ID {
		if p.Following {
			dto.FollowURL = profileURL(p.Author.Username) + "unfollow/"
		} else {
			dto.FollowURL = profileURL(p.Author.Username) + "follow/"
		}
	}
	return dto
}

func newDetailDTO(d *feedUC.Detail, viewer *entity.User) DetailDTO {
	comments := make([]CommentDTO, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, CommentDTO{
			ID:      c.Comment.ID,
			Author:  c.AuthorUsername,
			Text:    c.Comment.Text,
			PubDate: c.Comment.PubDate,
		})
	}
	// Anonymous viewers get the form too; submitting it sends them to login.
	dto := DetailDTO{
		Post:            newPostDTO(d.Post),
		AuthorPostCount: d.AuthorPostCount,
		Comments:        comments,
		CommentForm: &CommentFormDTO{
			Form:   "comment",
			Action: postURL(d.Post.Post.ID) + "comment/",
			Fields: []string{"text"},
		},
	}
	if !viewer.IsAnonymous() && viewer.ID == d.Post.Post.AuthorID {
		dto.EditURL = postURL(d.Post.Post.ID) + "edit/"
	}
	return dto
}
