package services

import "math"

// Pagination is the page metadata attached to every paginated read
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NormalizePageSize clamps page/size to sane bounds: pages are 1-based,
// size falls back to 20 and is capped at 50.
func NormalizePageSize(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 50 {
		size = 20
	}
	return page, size
}

// NewPagination builds page metadata from the normalized page/size and the
// total row count.
func NewPagination(page, size int, total int64) Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(size)))
	return Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    size,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
