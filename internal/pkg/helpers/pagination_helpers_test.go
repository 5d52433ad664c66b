package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 20, 0, 20},
		{"third page", 3, 10, 20, 10},
		{"zero page falls back to first", 0, 10, 0, 10},
		{"negative page falls back to first", -2, 10, 0, 10},
		{"zero size uses default", 2, 0, 20, DefaultPageSize},
		{"oversized page size uses default", 1, 500, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		info := NewPaginationInfo(97, 1, 20)
		assert.Equal(t, 5, info.TotalPages)
		assert.Equal(t, int64(97), info.TotalItems)
		assert.Equal(t, 1, info.CurrentPage)
	})

	t.Run("empty result still has one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 20)
		assert.Equal(t, 1, info.TotalPages)
	})

	t.Run("page beyond the end is clamped", func(t *testing.T) {
		info := NewPaginationInfo(10, 9, 20)
		assert.Equal(t, 1, info.CurrentPage)
	})
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("bogus", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
