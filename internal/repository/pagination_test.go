package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"empty collection", 1, 10, 0, 0, false, false},
		{"single partial page", 1, 10, 7, 1, false, false},
		{"exact page boundary", 1, 10, 10, 1, false, false},
		{"two pages first", 1, 10, 11, 2, true, false},
		{"two pages second", 2, 10, 11, 2, false, true},
		{"middle page", 2, 10, 35, 4, true, true},
		{"past the end", 5, 10, 35, 4, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.totalPages, p.TotalPages, "totalPages should be ceil(total/limit)")
			assert.Equal(t, tt.total, p.TotalCount)
			assert.Equal(t, tt.hasNext, p.HasNext, "hasNext is true iff page*limit < total")
			assert.Equal(t, tt.hasPrev, p.HasPrev)
		})
	}
}

func TestListParams_Normalize(t *testing.T) {
	p := ListParams{Page: 0, Limit: -3}
	p.Normalize()
	assert.Equal(t, 1, p.Page, "Page should default to 1")
	assert.Equal(t, 10, p.Limit, "Limit should default to 10")

	p = ListParams{Page: 3, Limit: 25}
	p.Normalize()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
}

func TestListParams_Offset(t *testing.T) {
	p := ListParams{Page: 1, Limit: 10}
	assert.Equal(t, 0, p.Offset())

	p = ListParams{Page: 4, Limit: 10}
	assert.Equal(t, 30, p.Offset())
}
