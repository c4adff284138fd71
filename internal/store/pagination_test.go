package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", page: 0, size: 0, wantPage: 1, wantPageSize: DefaultPageSize},
		{name: "negative", page: -3, size: -1, wantPage: 1, wantPageSize: DefaultPageSize},
		{name: "clamped", page: 2, size: 500, wantPage: 2, wantPageSize: MaxPageSize},
		{name: "as given", page: 3, size: 20, wantPage: 3, wantPageSize: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginationParams(tt.page, tt.size, "q")
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
			assert.Equal(t, "q", p.Search)
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	assert.Equal(t, 0, NewPaginationParams(1, 10, "").Offset())
	assert.Equal(t, 20, NewPaginationParams(3, 10, "").Offset())
}

func TestCalculatePagination(t *testing.T) {
	r := CalculatePagination(25, 2, 10)
	assert.Equal(t, int64(25), r.Total)
	assert.Equal(t, 3, r.TotalPages)
	assert.Equal(t, 2, r.CurrentPage)
	assert.True(t, r.HasPrev)
	assert.True(t, r.HasNext)

	empty := CalculatePagination(0, 1, 10)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasPrev)
	assert.False(t, empty.HasNext)
}
