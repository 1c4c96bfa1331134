package pagination_test

import (
	"testing"

	"yatube/internal/common/pagination"
)

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		page  int
		limit int
		want  int
	}{
		{name: "first page", page: 1, limit: 10, want: 0},
		{name: "second page", page: 2, limit: 10, want: 10},
		{name: "third page with limit 5", page: 3, limit: 5, want: 10},
		{name: "zero page", page: 0, limit: 10, want: 0},
		{name: "negative page", page: -4, limit: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pagination.CalculateOffset(tt.page, tt.limit); got != tt.want {
				t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "no items still has one page", total: 0, limit: 10, want: 1},
		{name: "exactly one page", total: 10, limit: 10, want: 1},
		{name: "one item over", total: 11, limit: 10, want: 2},
		{name: "thirteen items", total: 13, limit: 10, want: 2},
		{name: "zero limit", total: 5, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pagination.CalculateTotalPages(tt.total, tt.limit); got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested int
		total     int64
		want      int
	}{
		{name: "in range", requested: 2, total: 13, want: 2},
		{name: "past last page", requested: 999, total: 13, want: 2},
		{name: "zero", requested: 0, total: 13, want: 1},
		{name: "negative", requested: -3, total: 13, want: 1},
		{name: "empty sequence", requested: 5, total: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pagination.ClampPage(tt.requested, tt.total, 10); got != tt.want {
				t.Errorf("ClampPage(%d, %d, 10) = %d, want %d", tt.requested, tt.total, got, tt.want)
			}
		})
	}
}
