// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// NotFound writes the standard 404 document.
func NotFound(w http.ResponseWriter) {
	JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

// Redirect sends a 302 to location with a small JSON body naming it.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	w.Header().Set("Location", location)
	JSON(w, http.StatusFound, map[string]string{"redirect": location})
}

// Form is the document returned when a submitted form fails validation.
// Values echoes the submitted input so a client can re-render the form.
type Form struct {
	Form   string            `json:"form"`
	Errors map[string]string `json:"errors"`
	Values map[string]string `json:"values"`
}

// FormErrors writes a 400 response describing the invalid form.
func FormErrors(w http.ResponseWriter, form string, fields, values map[string]string) {
	JSON(w, http.StatusBadRequest, Form{Form: form, Errors: fields, Values: values})
}

// safeFragments mark messages that are meant for users.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must",
	"cannot be",
	"too long",
	"too short",
	"exceed",
}

// SafeError sanitizes error messages before returning them to users.
// Internal errors (e.g., database errors) are returned as "internal server error",
// with details logged for debugging. Safe errors (validation errors) are returned as-is.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	if code < 500 {
		lowerMsg := strings.ToLower(msg)
		for _, safe := range safeFragments {
			if strings.Contains(lowerMsg, safe) {
				isSafe = true
				break
			}
		}
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}
