package pagination

// CalculateOffset calculates the database OFFSET value based on page number and limit.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Formula: offset = (page - 1) * limit
//
// Examples:
//   - Page 1, Limit 10 -> Offset 0
//   - Page 2, Limit 10 -> Offset 10
//   - Page 3, Limit 5 -> Offset 10
func CalculateOffset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// CalculateTotalPages calculates the total number of pages based on total items and limit.
// Uses ceiling division to ensure all items are included.
//
// Special cases:
//   - If total is 0, returns 1 (an empty result still has one page)
//   - Otherwise, returns ceil(total / limit)
//
// Examples:
//   - Total 0, Limit 10 -> 1 page
//   - Total 10, Limit 10 -> 1 page
//   - Total 11, Limit 10 -> 2 pages
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ClampPage maps any requested page number onto an existing page.
// Numbers below 1 become the first page, numbers past the end become the last one.
func ClampPage(requested int, total int64, limit int) int {
	last := CalculateTotalPages(total, limit)
	switch {
	case requested < 1:
		return 1
	case requested > last:
		return last
	default:
		return requested
	}
}
