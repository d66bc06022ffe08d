package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPaginationParams(t *testing.T) {
	t.Run("defaults when absent", func(t *testing.T) {
		params := ExtractPaginationParams(httptest.NewRequest("GET", "/posts", nil))
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, 20, params.PageSize)
	})

	t.Run("reads query parameters", func(t *testing.T) {
		params := ExtractPaginationParams(httptest.NewRequest("GET", "/posts?page=3&page_size=5", nil))
		assert.Equal(t, 3, params.Page)
		assert.Equal(t, 5, params.PageSize)
	})

	t.Run("page size is capped", func(t *testing.T) {
		params := ExtractPaginationParams(httptest.NewRequest("GET", "/posts?page_size=9999", nil))
		assert.Equal(t, maxPageSize, params.PageSize)
	})

	t.Run("junk values fall back to defaults", func(t *testing.T) {
		params := ExtractPaginationParams(httptest.NewRequest("GET", "/posts?page=zero&page_size=-4", nil))
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, 20, params.PageSize)
	})
}

func TestPaginationParamsSlice(t *testing.T) {
	params := PaginationParams{Page: 2, PageSize: 10}

	t.Run("middle page", func(t *testing.T) {
		start, end := params.Slice(25)
		assert.Equal(t, 10, start)
		assert.Equal(t, 20, end)
	})

	t.Run("last partial page", func(t *testing.T) {
		start, end := PaginationParams{Page: 3, PageSize: 10}.Slice(25)
		assert.Equal(t, 20, start)
		assert.Equal(t, 25, end)
	})

	t.Run("page beyond the data is empty", func(t *testing.T) {
		start, end := PaginationParams{Page: 9, PageSize: 10}.Slice(25)
		assert.Equal(t, 25, start)
		assert.Equal(t, 25, end)
	})

	t.Run("empty data", func(t *testing.T) {
		start, end := params.Slice(0)
		assert.Equal(t, 0, start)
		assert.Equal(t, 0, end)
	})
}

func TestNewPaginatedResult(t *testing.T) {
	result := NewPaginatedResult([]string{"a", "b"}, PaginationParams{Page: 1, PageSize: 2}, 5)

	assert.Equal(t, []string{"a", "b"}, result.Items)
	assert.Equal(t, 5, result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrev)

	last := NewPaginatedResult([]string{"e"}, PaginationParams{Page: 3, PageSize: 2}, 5)
	assert.False(t, last.Pagination.HasNext)
	assert.True(t, last.Pagination.HasPrev)
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
}
