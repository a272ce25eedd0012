package api

import (
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Paginated wraps a page of results with the total match count.
type Paginated struct {
	Count   int64 `json:"count"`
	Results any   `json:"results"`
}

// parsePagination reads the page and limit query parameters, clamping them
// to sane bounds.
func parsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
