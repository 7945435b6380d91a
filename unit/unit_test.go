package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPixels(t *testing.T) {
	u, err := FromPixels(100)
	require.NoError(t, err)
	assert.Equal(t, Unit(400), u)
	assert.Equal(t, int32(100), u.ToPixels())
}

func TestFromPixelsOverflow(t *testing.T) {
	_, err := FromPixels(Max.ToPixels() + 1)
	assert.ErrorIs(t, err, ErrViewportTooLarge)
}

func TestAddSaturates(t *testing.T) {
	assert.Equal(t, Max, Max.Add(1))
	assert.Equal(t, Min, Min.Sub(1))
}

func TestScale(t *testing.T) {
	assert.Equal(t, Unit(140), Scale(400, 35, 100))
	assert.Equal(t, Zero, Scale(400, 35, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, Unit(100), Clamp(50, 100, 200))
	assert.Equal(t, Unit(200), Clamp(500, 100, 200))
	assert.Equal(t, Unit(150), Clamp(150, 100, 200))
}

func TestNonNegative(t *testing.T) {
	assert.Equal(t, Zero, NonNegative(-40))
	assert.Equal(t, Unit(40), NonNegative(40))
}

func TestEdges(t *testing.T) {
	e := Edges{Top: 1, Right: 2, Bottom: 3, Left: 4}
	assert.Equal(t, Unit(6), e.Horizontal())
	assert.Equal(t, Unit(4), e.Vertical())
}
