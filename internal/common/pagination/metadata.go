package pagination

// Metadata contains pagination metadata included in API responses.
type Metadata struct {
	Total       int64 `json:"total"`        // Total number of items across all pages
	Page        int   `json:"page"`         // Current page number (1-based, already clamped)
	Limit       int   `json:"limit"`        // Items per page
	TotalPages  int   `json:"total_pages"`  // Calculated total number of pages
	HasPrevious bool  `json:"has_previous"` // A page before this one exists
	HasNext     bool  `json:"has_next"`     // A page after this one exists
}

// Resolve clamps the requested page against the item count and builds its metadata.
// A non-positive limit falls back to the default page size.
func Resolve(requested int, total int64, limit int) Metadata {
	if limit <= 0 {
		limit = DefaultConfig().PageSize
	}
	page := ClampPage(requested, total, limit)
	totalPages := CalculateTotalPages(total, limit)
	return Metadata{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}

// Offset is the number of rows to skip to reach the page.
func (m Metadata) Offset() int {
	return CalculateOffset(m.Page, m.Limit)
}

// Page is one slice of an ordered sequence plus its metadata.
type Page[T any] struct {
	Items      []T      `json:"items"`
	Pagination Metadata `json:"pagination"`
}

// Paginate slices an in-memory ordered sequence the same way the repositories
// slice query results.
func Paginate[T any](items []T, requested, limit int) Page[T] {
	meta := Resolve(requested, int64(len(items)), limit)
	start := meta.Offset()
	end := start + meta.Limit
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	return Page[T]{
		Items:      items[start:end],
		Pagination: meta,
	}
}
