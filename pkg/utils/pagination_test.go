package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(0, -1)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = GetPaginationParams(2, 500)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestCalculateOffsetAndTotalPages(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, PageSize: 20}.CalculateOffset())
	assert.Equal(t, 40, PaginationParams{Page: 3, PageSize: 20}.CalculateOffset())
	assert.Equal(t, 0, PaginationParams{Page: 0, PageSize: 20}.CalculateOffset())

	assert.Equal(t, 5, PaginationParams{PageSize: 20}.TotalPages(100))
	assert.Equal(t, 6, PaginationParams{PageSize: 20}.TotalPages(101))
	assert.Equal(t, 0, PaginationParams{PageSize: 20}.TotalPages(0))
}

func TestNewPage_Links(t *testing.T) {
	self, err := url.Parse("http://api.test/api/team?page=2&page_size=2")
	require.NoError(t, err)

	page := NewPage([]int{3, 4}, 5, PaginationParams{Page: 2, PageSize: 2}, self)
	assert.Equal(t, int64(5), page.Count)
	assert.Equal(t, []int{3, 4}, page.Results)
	require.NotNil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://api.test/api/team?page=3&page_size=2", *page.Next)
	assert.Equal(t, "http://api.test/api/team?page=1&page_size=2", *page.Previous)

	last := NewPage([]int{5}, 5, PaginationParams{Page: 3, PageSize: 2}, self)
	assert.Nil(t, last.Next)
}

func TestNewPage_NilItemsBecomeEmpty(t *testing.T) {
	page := NewPage[string](nil, 0, PaginationParams{Page: 1, PageSize: 20}, nil)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
}
