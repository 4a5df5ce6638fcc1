package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Page is the paginated list envelope: {count, next, previous, results}.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// GetPaginationParams clamps page to >= 1 and page size to
// [1, MaxPageSize], substituting DefaultPageSize for unset values.
func GetPaginationParams(page, pageSize int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PaginationParams{Page: page, PageSize: pageSize}
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the number of pages needed for total rows.
func (p PaginationParams) TotalPages(total int64) int {
	if p.PageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// NewPage assembles the envelope. self is the request URL; next and previous
// are derived from it by rewriting the page query parameter.
func NewPage[T any](items []T, total int64, p PaginationParams, self *url.URL) Page[T] {
	if items == nil {
		items = []T{}
	}
	page := Page[T]{Count: total, Results: items}
	if self == nil {
		return page
	}
	if p.Page < p.TotalPages(total) {
		page.Next = pageLink(self, p.Page+1, p.PageSize)
	}
	if p.Page > 1 {
		page.Previous = pageLink(self, p.Page-1, p.PageSize)
	}
	return page
}

func pageLink(self *url.URL, page, pageSize int) *string {
	u := *self
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
