package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	id   int
	name string
}

func itemKey(i item) int { return i.id }

func TestUpsert(t *testing.T) {
	tests := []struct {
		name     string
		items    []item
		incoming item
		expected []item
	}{
		{
			name:     "appends to empty",
			items:    nil,
			incoming: item{1, "a"},
			expected: []item{{1, "a"}},
		},
		{
			name:     "appends unknown identity",
			items:    []item{{1, "a"}},
			incoming: item{2, "b"},
			expected: []item{{1, "a"}, {2, "b"}},
		},
		{
			name:     "replaces in place",
			items:    []item{{1, "a"}, {2, "b"}, {3, "c"}},
			incoming: item{2, "B"},
			expected: []item{{1, "a"}, {2, "B"}, {3, "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before []item
			if tt.items != nil {
				before = append([]item{}, tt.items...)
			}

			got := Upsert(tt.items, tt.incoming, itemKey)

			assert.Equal(t, tt.expected, got)
			assert.Equal(t, before, tt.items, "input must not be modified")
		})
	}
}

func TestUpsert_DoesNotShareSpareCapacity(t *testing.T) {
	base := make([]item, 1, 4)
	base[0] = item{1, "a"}

	first := Upsert(base, item{2, "b"}, itemKey)
	second := Upsert(base, item{3, "c"}, itemKey)

	assert.Equal(t, []item{{1, "a"}, {2, "b"}}, first)
	assert.Equal(t, []item{{1, "a"}, {3, "c"}}, second)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name            string
		items           []item
		id              int
		expected        []item
		expectedRemoved bool
	}{
		{
			name:            "removes match",
			items:           []item{{1, "a"}, {2, "b"}, {3, "c"}},
			id:              2,
			expected:        []item{{1, "a"}, {3, "c"}},
			expectedRemoved: true,
		},
		{
			name:            "removes last",
			items:           []item{{1, "a"}},
			id:              1,
			expected:        []item{},
			expectedRemoved: true,
		},
		{
			name:            "unknown id is a no-op",
			items:           []item{{1, "a"}},
			id:              9,
			expected:        []item{{1, "a"}},
			expectedRemoved: false,
		},
		{
			name:            "empty collection",
			items:           []item{},
			id:              1,
			expected:        []item{},
			expectedRemoved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]item{}, tt.items...)

			got, removed := Remove(tt.items, tt.id, itemKey)

			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expectedRemoved, removed)
			assert.Equal(t, before, tt.items, "input must not be modified")
		})
	}
}
