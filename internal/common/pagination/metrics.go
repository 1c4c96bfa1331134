package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts paginated feed requests.
	// Labels: view (global, group, profile, follow), page_range (1-10, 11-50, etc.)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_pagination_requests_total",
			Help: "Total number of paginated feed requests",
		},
		[]string{"view", "page_range"},
	)

	// ClampedTotal counts requests whose page number was out of range.
	ClampedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_pagination_clamped_total",
			Help: "Total number of page numbers clamped into range",
		},
		[]string{"view"},
	)
)

// RecordRequest records a paginated request for a feed view.
// requested is the raw page number, resolved the clamped one.
func RecordRequest(view string, requested, resolved int) {
	RequestsTotal.WithLabelValues(view, getPageRangeBucket(resolved)).Inc()
	if requested != resolved {
		ClampedTotal.WithLabelValues(view).Inc()
	}
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
