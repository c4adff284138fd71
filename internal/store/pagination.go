package store

import "math"

// Pagination bounds
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// PaginationParams contains parameters for paginated queries
type PaginationParams struct {
	Page     int    // Current page number (1-indexed)
	PageSize int    // Number of items per page
	Search   string // Search keyword
}

// PaginationResult contains pagination metadata
type PaginationResult struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"pages"`
	CurrentPage int   `json:"page"`
	PageSize    int   `json:"limit"`
	HasPrev     bool  `json:"hasPrev"`
	HasNext     bool  `json:"hasNext"`
}

// NewPaginationParams creates a new PaginationParams with default values
func NewPaginationParams(page, pageSize int, search string) PaginationParams {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
	}
}

// Offset returns the number of rows to skip for the current page
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// CalculatePagination calculates pagination metadata
func CalculatePagination(total int64, currentPage, pageSize int) PaginationResult {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	if currentPage < 1 {
		currentPage = 1
	}

	return PaginationResult{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}
