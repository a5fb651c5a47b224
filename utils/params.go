package utils

import (
	"net/http"
	"strconv"
)

const maxPageSize = 50

// CatalogQuery carries the listing filters shared by the product and vehicle
// catalogs.
type CatalogQuery struct {
	Page       int
	Limit      int
	Category   string // vehicleType for the vehicle catalog
	City       string // normalized lowercase
	SortBy     string
	SearchTerm string
}

func ParseCatalogQuery(r *http.Request, categoryParam string) CatalogQuery {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return CatalogQuery{
		Page:       page,
		Limit:      limit,
		Category:   q.Get(categoryParam),
		City:       NormalizeCity(q.Get("city")),
		SortBy:     q.Get("sortBy"),
		SearchTerm: q.Get("searchTerm"),
	}
}

// TotalPages rounds up total/limit, never below 1 page.
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return pages
}
