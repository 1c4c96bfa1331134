// Package logging builds the slog loggers used by the binaries.
//
// The API and worker log JSON to stdout and the admin CLI logs text to stderr.
// LOG_LEVEL selects the level. Handlers call For to tag a line with the
// request id and the trace id of the current request:
//
//	logging.For(r.Context(), h.Logger).Error("post request failed", slog.Any("error", err))
package logging
