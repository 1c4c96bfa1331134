package post

import (
	"errors"
	"log/slog"
	"net/http"

	"yatube/internal/domain/entity"
	"yatube/internal/handler/http/auth"
	"yatube/internal/handler/http/form"
	"yatube/internal/handler/http/pathutil"
	"yatube/internal/handler/http/respond"
	"yatube/internal/observability/logging"
	"yatube/internal/repository"
	postUC "yatube/internal/usecase/post"
)

// Handler serves the post write endpoints. Every route is behind
// auth.RequireLogin, so the caller is always a stored user.
type Handler struct {
	Svc    *postUC.Service
	Groups repository.GroupRepository
	Logger *slog.Logger
}

func (h Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.For(r.Context(), h.Logger).Error("post request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	respond.SafeError(w, http.StatusInternalServerError, err)
}

// validationFields extracts per-field messages from a validation failure.
func validationFields(err error) (map[string]string, bool) {
	var many entity.ValidationErrors
	if errors.As(err, &many) {
		return many.Fields(), true
	}
	var one *entity.ValidationError
	if errors.As(err, &one) {
		return map[string]string{one.Field: one.Message}, true
	}
	return nil, false
}

// decodeInput reads the post form. A malformed group id is reported as a
// field error like any other invalid input.
func decodeInput(r *http.Request) (postUC.Input, form.Values, error) {
	values, err := form.Decode(r)
	if err != nil {
		return postUC.Input{}, nil, err
	}
	in := postUC.Input{Text: values.Get("text"), Image: values.Get("image")}
	groupID, err := values.OptionalID("group")
	if err != nil {
		return in, values, entity.ValidationErrors{{Field: "group", Message: "select a valid group"}}
	}
	in.GroupID = groupID
	return in, values, nil
}

func (h Handler) renderForm(w http.ResponseWriter, r *http.Request, dto FormDTO) {
	groups, err := h.Groups.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	dto.Form = "post"
	dto.Fields = postFields
	dto.Groups = groupChoices(groups)
	respond.JSON(w, http.StatusOK, dto)
}

func (h Handler) invalid(w http.ResponseWriter, r *http.Request, values form.Values, err error) {
	if errors.Is(err, form.ErrUnsupportedMediaType) {
		respond.Error(w, http.StatusUnsupportedMediaType, err)
		return
	}
	fields, ok := validationFields(err)
	if !ok {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}
	echo := map[string]string{}
	for _, f := range postFields {
		echo[f] = values.Get(f)
	}
	respond.FormErrors(w, "post", fields, echo)
}

// CreateForm serves the empty post form.
func (h Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, FormDTO{Action: "/create/", Values: map[string]string{"text": "", "group": "", "image": ""}})
}

// Create stores a post by the caller and redirects to their profile.
func (h Handler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	in, values, err := decodeInput(r)
	if err == nil {
		_, err = h.Svc.Create(r.Context(), user, in)
	}
	switch {
	case err == nil:
		respond.Redirect(w, r, profileURL(user.Username))
	case errors.Is(err, entity.ErrValidationFailed), values == nil:
		h.invalid(w, r, values, err)
	case errors.Is(err, postUC.ErrUnauthenticated):
		respond.Redirect(w, r, auth.LoginURL(r.URL.RequestURI()))
	default:
		h.fail(w, r, err)
	}
}

// EditForm serves the form prefilled with the post. Only the author
// gets the form; anyone else is sent to the post.
func (h Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.NotFound(w)
		return
	}
	view, err := h.Svc.Get(r.Context(), id)
	switch {
	case errors.Is(err, postUC.ErrPostNotFound):
		respond.NotFound(w)
		return
	case err != nil:
		h.fail(w, r, err)
		return
	}
	if view.Post.AuthorID != auth.UserFromContext(r.Context()).ID {
		respond.Redirect(w, r, postURL(id))
		return
	}
	h.renderForm(w, r, FormDTO{IsEdit: true, Action: postURL(id) + "edit/", Values: formValues(view.Post)})
}

// Edit applies the form to the post and redirects to it.
func (h Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.NotFound(w)
		return
	}
	user := auth.UserFromContext(r.Context())
	view, err := h.Svc.Get(r.Context(), id)
	switch {
	case errors.Is(err, postUC.ErrPostNotFound):
		respond.NotFound(w)
		return
	case err != nil:
		h.fail(w, r, err)
		return
	case view.Post.AuthorID != user.ID:
		respond.Redirect(w, r, postURL(id))
		return
	}

	in, values, err := decodeInput(r)
	if err == nil {
		_, err = h.Svc.Edit(r.Context(), user, id, in)
	}
	switch {
	case err == nil, errors.Is(err, postUC.ErrNotAuthor):
		respond.Redirect(w, r, postURL(id))
	case errors.Is(err, postUC.ErrPostNotFound):
		respond.NotFound(w)
	case errors.Is(err, entity.ErrValidationFailed), values == nil:
		h.invalid(w, r, values, err)
	default:
		h.fail(w, r, err)
	}
}

// Comment adds a comment by the caller and redirects to the post.
// An invalid comment is dropped and the caller still lands on the post.
func (h Handler) Comment(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.NotFound(w)
		return
	}
	values, err := form.Decode(r)
	if err != nil {
		respond.Redirect(w, r, postURL(id))
		return
	}
	_, err = h.Svc.AddComment(r.Context(), auth.UserFromContext(r.Context()), id, values.Get("text"))
	switch {
	case err == nil, errors.Is(err, entity.ErrValidationFailed):
		respond.Redirect(w, r, postURL(id))
	case errors.Is(err, postUC.ErrPostNotFound):
		respond.NotFound(w)
	case errors.Is(err, postUC.ErrUnauthenticated):
		respond.Redirect(w, r, auth.LoginURL(r.URL.RequestURI()))
	default:
		h.fail(w, r, err)
	}
}

// Delete removes the caller's post and redirects to their profile.
// Non-authors are sent back to the post unchanged.
func (h Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.NotFound(w)
		return
	}
	user := auth.UserFromContext(r.Context())
	err = h.Svc.Delete(r.Context(), user, id)
	switch {
	case err == nil:
		respond.Redirect(w, r, profileURL(user.Username))
	case errors.Is(err, postUC.ErrNotAuthor):
		respond.Redirect(w, r, postURL(id))
	case errors.Is(err, postUC.ErrPostNotFound):
		respond.NotFound(w)
	case errors.Is(err, postUC.ErrUnauthenticated):
		respond.Redirect(w, r, auth.LoginURL(r.URL.RequestURI()))
	default:
		h.fail(w, r, err)
	}
}
