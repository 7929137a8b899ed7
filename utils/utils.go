package utils

import (
	"math"

	"salesdash/models"
)

// CreatePagination creates a Pagination object.
func CreatePagination(totalItems, page, pageSize int) models.Pagination {
	if pageSize <= 0 {
		pageSize = 50 // Default page size
	}
	if page <= 0 {
		page = 1 // Default page
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return models.Pagination{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}

// PageBounds returns the slice bounds of a page over n items.
func PageBounds(n int, p models.Pagination) (start, end int) {
	start = (p.CurrentPage - 1) * p.PageSize
	if start > n {
		start = n
	}
	end = start + p.PageSize
	if end > n {
		end = n
	}
	return start, end
}
