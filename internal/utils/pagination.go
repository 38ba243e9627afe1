// Package utils provides small helpers shared by the service and HTTP layers.
// Nothing here knows about appointments.
package utils

import "strconv"

// Page size bounds applied to every paginated listing.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AtoiDefault parses s as an int, returning def when s is empty or invalid.
//
//	utils.AtoiDefault("42", 0) // 42
//	utils.AtoiDefault("x", 5)  // 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampPage bounds a 1-based page and a page size. Pages below 1 become 1,
// sizes <= 0 become DefaultPageSize and sizes above MaxPageSize are capped.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset is the number of rows skipped before page.
func Offset(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}

// Page is the pagination block returned alongside list results.
type Page struct {
	Page       int   `json:"page" example:"1"`
	PageSize   int   `json:"page_size" example:"20"`
	Total      int64 `json:"total" example:"42"`
	TotalPages int   `json:"total_pages" example:"3"`
	HasNext    bool  `json:"has_next" example:"true"`
}

// NewPage derives the pagination block for an already clamped page.
func NewPage(page, pageSize int, total int64) Page {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Page{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}
