package post

import (
	"strconv"

	"yatube/internal/domain/entity"
)

// GroupChoice is one option of the group select.
type GroupChoice struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// FormDTO is the post form served on GET.
type FormDTO struct {
	Form   string            `json:"form"`
	IsEdit bool              `json:"is_edit"`
	Action string            `json:"action"`
	Fields []string          `json:"fields"`
	Values map[string]string `json:"values"`
	Groups []GroupChoice     `json:"groups"`
}

var postFields = []string{"text", "group", "image"}

func postURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func groupChoices(groups []*entity.Group) []GroupChoice {
	out := make([]GroupChoice, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupChoice{ID: g.ID, Slug: g.Slug, Title: g.Title})
	}
	return out
}

// formValues renders a stored post as form input.
func formValues(p *entity.Post) map[string]string {
	v := map[string]string{"text": p.Text, "group": "", "image": p.Image}
	if p.GroupID != nil {
		v["group"] = strconv.FormatInt(*p.GroupID, 10)
	}
	return v
}
