package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		params   Params
		lastPage int
		prev     *int
		next     *int
	}{
		{
			name:     "exactly one full page has no next",
			total:    10,
			params:   Params{Page: 1, Limit: 10},
			lastPage: 1,
		},
		{
			name:     "one item past a full page opens page two",
			total:    11,
			params:   Params{Page: 1, Limit: 10},
			lastPage: 2,
			next:     intPtr(2),
		},
		{
			name:     "middle page has both neighbours",
			total:    25,
			params:   Params{Page: 2, Limit: 10},
			lastPage: 3,
			prev:     intPtr(1),
			next:     intPtr(3),
		},
		{
			name:     "last page has no next",
			total:    25,
			params:   Params{Page: 3, Limit: 10},
			lastPage: 3,
			prev:     intPtr(2),
		},
		{
			name:     "empty set still reports one page",
			total:    0,
			params:   Params{Page: 1, Limit: 10},
			lastPage: 1,
		},
		{
			name:     "defaults applied to zero params",
			total:    5,
			params:   Params{},
			lastPage: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(tt.total, tt.params)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.lastPage, meta.LastPage)
			assert.Equal(t, tt.prev, meta.Prev)
			assert.Equal(t, tt.next, meta.Next)
		})
	}
}

func TestParamsOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, Params{Page: -1, Limit: 0}.Offset())
}

func intPtr(i int) *int { return &i }
