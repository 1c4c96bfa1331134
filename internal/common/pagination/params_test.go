package pagination_test

import (
	"net/http/httptest"
	"testing"

	"yatube/internal/common/pagination"
)

func TestParsePage(t *testing.T) {
	t.Parallel()

	config := pagination.DefaultConfig()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "valid page", query: "page=2", want: 2},
		{name: "missing page", query: "", want: 1},
		{name: "empty page", query: "page=", want: 1},
		{name: "not a number", query: "page=abc", want: 1},
		{name: "zero is passed through", query: "page=0", want: 0},
		{name: "large number is passed through", query: "page=999", want: 999},
		{name: "other params ignored", query: "limit=5&page=3", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("GET", "/?"+tt.query, nil)
			if got := pagination.ParsePage(req, config); got != tt.want {
				t.Errorf("ParsePage(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}
