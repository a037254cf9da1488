package pagination

// Page-number pagination helpers shared by listing endpoints. Pages are
// 1-based; an empty result set still has exactly one (empty) page.

// TotalPages returns the number of pages needed for total items, never
// less than 1.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages >= 1 && page > totalPages {
		return totalPages
	}
	return page
}

// Bounds returns the [start, end) slice indexes for the requested page.
// The page is clamped first, so callers can pass user input directly.
func Bounds(page, pageSize, total int) (int, int) {
	if pageSize <= 0 || total <= 0 {
		return 0, 0
	}
	page = ClampPage(page, TotalPages(total, pageSize))
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}
