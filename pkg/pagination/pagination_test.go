package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name                string
		page, limit         int64
		wantPage, wantLimit int64
	}{
		{"defaults", 0, 0, 1, DefaultLimit},
		{"negative page", -5, 20, 1, 20},
		{"limit capped", 2, 500, 2, MaxLimit},
		{"unchanged", 3, 25, 3, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := Normalize(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestSkip(t *testing.T) {
	assert.Equal(t, int64(0), Skip(1, 10))
	assert.Equal(t, int64(20), Skip(3, 10))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	assert.Equal(t, int64(3), TotalPages(25, 10))
}
