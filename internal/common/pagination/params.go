package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

// ParsePage reads the requested page number from the query string.
// A missing or non-integer value means page 1. Range checks are left to
// Resolve, which needs the item count to find the last page.
func ParsePage(r *http.Request, config Config) int {
	param := config.PageParam
	if param == "" {
		param = DefaultConfig().PageParam
	}
	raw := strings.TrimSpace(r.URL.Query().Get(param))
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
