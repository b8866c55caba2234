package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSelectionOrders(t *testing.T) {
	cases := []struct {
		a, c Position
	}{
		{Position{0, 5}, Position{0, 2}},
		{Position{0, 2}, Position{0, 5}},
		{Position{3, 0}, Position{1, 9}},
		{Position{1, 9}, Position{3, 0}},
	}

	for _, tc := range cases {
		start, end := NormalizeSelection(tc.a, tc.c)
		assert.False(t, end.Before(start), "%v..%v", start, end)
		assert.ElementsMatch(t, []Position{tc.a, tc.c}, []Position{start, end})
	}
}

func TestSelectionInactiveWhenAnchorEqualsCursor(t *testing.T) {
	var s Selection
	_, _, ok := s.Range(Position{0, 0})
	assert.False(t, ok)

	s.Anchor(Position{1, 1})
	_, _, ok = s.Range(Position{1, 1})
	assert.False(t, ok)

	// A second anchor call keeps the original.
	s.Anchor(Position{4, 4})
	start, end, ok := s.Range(Position{2, 0})
	assert.True(t, ok)
	assert.Equal(t, Position{1, 1}, start)
	assert.Equal(t, Position{2, 0}, end)
}

func TestSelectionContains(t *testing.T) {
	var s Selection
	s.Anchor(Position{3, 1})
	cursor := Position{1, 4}

	tests := []struct {
		pos  Position
		want bool
	}{
		{Position{0, 9}, false},
		{Position{1, 3}, false},
		{Position{1, 4}, true},
		{Position{2, 0}, true},
		{Position{2, 99}, true},
		{Position{3, 0}, true},
		{Position{3, 1}, false},
		{Position{4, 0}, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, s.Contains(cursor, tc.pos), "%v", tc.pos)
	}
}
