// Package form decodes submitted forms. The same fields may arrive URL
// encoded, as multipart/form-data or as a JSON object.
package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
)

const urlEncoded = "application/x-www-form-urlencoded"

// maxMultipartMemory bounds the in-memory part of a multipart form.
const maxMultipartMemory = 8 << 20

// ErrUnsupportedMediaType is returned for bodies that are not a form.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// Values holds the first value of each submitted field.
type Values map[string]string

// Get returns the trimmed value of field.
func (v Values) Get(field string) string {
	return strings.TrimSpace(v[field])
}

// OptionalID parses field as a positive id. An empty field yields nil.
func (v Values) OptionalID(field string) (*int64, error) {
	raw := v.Get(field)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s must be a positive id", field)
	}
	return &id, nil
}

// Decode reads the request body according to its Content-Type.
// A missing Content-Type is treated as URL encoded.
func Decode(r *http.Request) (Values, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		// ParseForm reads the body only when the header names the encoding.
		ct = urlEncoded
		r.Header.Set("Content-Type", ct)
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ct)
	}

	switch mediaType {
	case urlEncoded:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		return first(r.PostForm), nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
		v := first(r.MultipartForm.Value)
		for field, files := range r.MultipartForm.File {
			if len(files) > 0 && v[field] == "" {
				v[field] = path.Join("posts", path.Base(files[0].Filename))
			}
		}
		return v, nil
	case "application/json":
		return decodeJSON(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

func first(src map[string][]string) Values {
	v := make(Values, len(src))
	for field, vals := range src {
		if len(vals) > 0 {
			v[field] = vals[0]
		}
	}
	return v
}

// decodeJSON accepts an object whose values are strings, numbers or null.
func decodeJSON(r *http.Request) (Values, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json form: %w", err)
	}

	v := make(Values, len(raw))
	for field, msg := range raw {
		var val interface{}
		if err := json.Unmarshal(msg, &val); err != nil {
			return nil, fmt.Errorf("decode json field %s: %w", field, err)
		}
		switch x := val.(type) {
		case nil:
			v[field] = ""
		case string:
			v[field] = x
		case float64:
			v[field] = strconv.FormatFloat(x, 'f', -1, 64)
		case bool:
			v[field] = strconv.FormatBool(x)
		default:
			return nil, fmt.Errorf("field %s must be a string or number", field)
		}
	}
	return v, nil
}
