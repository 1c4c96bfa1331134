// Package pagecache caches whole rendered responses of read-only pages in a
// cache.Store. Entries live for a fixed TTL from the moment they are stored
// and are not invalidated by writes, so a cached page may lag behind new
// posts by up to one TTL.
package pagecache

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"yatube/internal/handler/http/responsewriter"
	"yatube/internal/infra/cache"
	"yatube/internal/observability/logging"
	"yatube/internal/observability/metrics"
)

// IndexPrefix is the key prefix of the global feed.
const IndexPrefix = "index_page"

// DefaultTTL is how long a global feed page is served from the cache.
const DefaultTTL = 20 * time.Second

// entry is the stored form of a response.
type entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Key returns the cache key of r under prefix. Every page number of the
// same view gets its own entry.
func Key(prefix string, r *http.Request) string {
	return prefix + ":" + r.URL.RequestURI()
}

// Middleware serves GET requests from store when an entry exists and
// stores successful responses for ttl. Store failures are logged and the
// request is served uncached.
func Middleware(store cache.Store, prefix string, ttl time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			log := logging.For(ctx, logger)
			key := Key(prefix, r)

			raw, ok, err := store.Get(ctx, key)
			switch {
			case err != nil:
				metrics.RecordPageCache(prefix, "error")
				log.Warn("page cache read failed", slog.String("key", key), slog.Any("error", err))
			case ok:
				var e entry
				if err := json.Unmarshal(raw, &e); err == nil {
					metrics.RecordPageCache(prefix, "hit")
					writeEntry(w, e)
					return
				}
				log.Warn("discarding malformed page cache entry", slog.String("key", key))
			}
			metrics.RecordPageCache(prefix, "miss")

			rw := responsewriter.WrapCapturing(w)
			w.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(rw, r)

			if rw.StatusCode() != http.StatusOK {
				return
			}
			payload, err := json.Marshal(entry{
				Status:      rw.StatusCode(),
				ContentType: w.Header().Get("Content-Type"),
				Body:        rw.Body(),
			})
			if err != nil {
				log.Warn("page cache encode failed", slog.String("key", key), slog.Any("error", err))
				return
			}
			if err := store.Set(ctx, key, payload, ttl); err != nil {
				log.Warn("page cache write failed", slog.String("key", key), slog.Any("error", err))
			}
		})
	}
}

func writeEntry(w http.ResponseWriter, e entry) {
	if e.ContentType != "" {
		w.Header().Set("Content-Type", e.ContentType)
	}
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(e.Status)
	_, _ = w.Write(e.Body)
}
