package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]int{"page": 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, float64(2), decodeBody(t, w)["page"])
}

func TestJSON_NilBody(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]any{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code, "status is already sent")
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusConflict, errors.New("slug already exists"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slug already exists", decodeBody(t, w)["error"])
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decodeBody(t, w)["error"])
}

func TestRedirect(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/create/", nil)
	Redirect(w, r, "/profile/leo/")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))
	assert.Equal(t, "/profile/leo/", decodeBody(t, w)["redirect"])
}

func TestFormErrors(t *testing.T) {
	w := httptest.NewRecorder()
	FormErrors(w, "post",
		map[string]string{"text": "text is required"},
		map[string]string{"text": "", "group": "3"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var form Form
	require.NoError(t, json.NewDecoder(w.Body).Decode(&form))
	assert.Equal(t, "post", form.Form)
	assert.Equal(t, "text is required", form.Errors["text"])
	assert.Equal(t, "3", form.Values["group"])
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		err         error
		expectedMsg string
	}{
		{name: "required", code: http.StatusBadRequest, err: errors.New("text is required"), expectedMsg: "text is required"},
		{name: "invalid", code: http.StatusBadRequest, err: errors.New("invalid page"), expectedMsg: "invalid page"},
		{name: "not found", code: http.StatusNotFound, err: errors.New("group not found"), expectedMsg: "group not found"},
		{name: "exceed", code: http.StatusBadRequest, err: errors.New("title must not exceed 200 characters"), expectedMsg: "title must not exceed 200 characters"},
		{name: "unknown 4xx", code: http.StatusBadRequest, err: errors.New("pq: syntax error"), expectedMsg: "internal server error"},
		{name: "5xx always hidden", code: http.StatusInternalServerError, err: errors.New("field is required"), expectedMsg: "internal server error"},
		{name: "bad gateway", code: http.StatusBadGateway, err: errors.New("upstream unavailable"), expectedMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SafeError(w, tt.code, tt.err)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.expectedMsg, decodeBody(t, w)["error"])
		})
	}
}

func TestSafeError_NilError(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusBadRequest, nil)
	assert.Zero(t, w.Body.Len())
}

func TestSafeError_LogsSanitized(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	w := httptest.NewRecorder()
	SafeError(w, http.StatusInternalServerError, errors.New("connect postgres://app:topsecret@db/yatube"))

	assert.Contains(t, buf.String(), "app:****@db")
	assert.NotContains(t, buf.String(), "topsecret")
}
