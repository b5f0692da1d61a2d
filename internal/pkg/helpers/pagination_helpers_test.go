package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		name   string
		page   int
		size   int
		offset uint64
		limit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative page clamps to first", -5, 10, 0, 10},
		{"zero size uses default", 2, 0, 10, DefaultPageSize},
		{"oversized page size uses default", 1, 500, 0, DefaultPageSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tc.page, tc.size)
			assert.Equal(t, tc.offset, offset)
			assert.Equal(t, tc.limit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, int64(45), info.TotalItems)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.CurrentPage)
	assert.Equal(t, 1, empty.TotalPages)

	beyond := NewPaginationInfo(10, 9, 10)
	assert.Equal(t, 1, beyond.CurrentPage, "page past the end clamps to the last page")
}
