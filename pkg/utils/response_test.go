package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		pages int
	}{
		{name: "exact fit", page: 1, limit: 10, total: 20, pages: 2},
		{name: "partial last page", page: 2, limit: 10, total: 15, pages: 2},
		{name: "single row", page: 1, limit: 10, total: 1, pages: 1},
		{name: "empty", page: 1, limit: 10, total: 0, pages: 0},
		{name: "zero limit", page: 1, limit: 0, total: 10, pages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.pages, p.Pages)
		})
	}
}
