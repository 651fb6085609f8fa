package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinnerIndex(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		segments int
		want     int
	}{
		{name: "zero angle", angle: 0, segments: 12, want: 0},
		{name: "negative 45", angle: -45, segments: 12, want: 1},
		{name: "positive 200 on four", angle: 200, segments: 4, want: 2},
		{name: "positive one step", angle: 30, segments: 12, want: 11},
		{name: "negative one step", angle: -30, segments: 12, want: 1},
		{name: "positive quarter", angle: 90, segments: 4, want: 3},
		{name: "negative quarter", angle: -90, segments: 4, want: 1},
		{name: "full turns", angle: 720, segments: 12, want: 0},
		{name: "negative full turn", angle: -360, segments: 12, want: 0},
		{name: "beyond one turn", angle: 390, segments: 12, want: 11},
		{name: "beyond negative turn", angle: -390, segments: 12, want: 1},
		{name: "rounds up to full turn", angle: -359.6, segments: 12, want: 0},
		{name: "single segment", angle: 123, segments: 1, want: 0},
		{name: "seven segments truncates", angle: 360.0 / 7, segments: 7, want: 0},
		{name: "seven segments negative truncates", angle: -360.0 / 7, segments: 7, want: 0},
		{name: "seven segments two steps", angle: -2 * 360.0 / 7, segments: 7, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WinnerIndex(tt.angle, tt.segments))
		})
	}
}

func TestWinnerIndexInRange(t *testing.T) {
	for n := 1; n <= 20; n++ {
		for a := -1080.0; a <= 1080; a += 0.25 {
			idx := WinnerIndex(a, n)
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, n, "angle=%v segments=%d", a, n)
		}
	}
}

func TestResolveWinner(t *testing.T) {
	slices, err := DefaultConfig().Layout().Generate(12, seeded(9))
	require.NoError(t, err)

	w := ResolveWinner(-45, 12, slices)
	require.NotNil(t, w)
	assert.Equal(t, slices[1], *w)

	again := ResolveWinner(-45, 12, slices)
	assert.Equal(t, w, again)

	assert.Nil(t, ResolveWinner(0, 0, slices))
	assert.Nil(t, ResolveWinner(0, 4, slices))
}
