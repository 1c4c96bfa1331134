// Package responsewriter records what a handler sent: the status, the body
// size and, for the page cache, the body itself.
package responsewriter

import (
	"bytes"
	"net/http"
)

// ResponseWriter is an http.ResponseWriter that remembers the response.
type ResponseWriter struct {
	http.ResponseWriter
	status  int // zero until the header is sent
	written int
	copy    *bytes.Buffer
}

func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w}
}

// WrapCapturing also keeps the body, available from Body once the handler returns.
func WrapCapturing(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, copy: new(bytes.Buffer)}
}

// WriteHeader forwards only the first status, like net/http does.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.status != 0 {
		return
	}
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(p []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	n, err := w.ResponseWriter.Write(p)
	w.written += n
	if w.copy != nil {
		w.copy.Write(p[:n])
	}
	return n, err
}

// StatusCode is 200 if the handler never wrote a header.
func (w *ResponseWriter) StatusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *ResponseWriter) BytesWritten() int { return w.written }

// Body is nil unless the writer came from WrapCapturing.
func (w *ResponseWriter) Body() []byte {
	if w.copy == nil {
		return nil
	}
	return w.copy.Bytes()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
