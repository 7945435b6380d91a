package value

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zss-dev/zss/unit"
)

func TestUnsetIsTheOnlyUnsetValue(t *testing.T) {
	assert.False(t, Unset().IsSet())
	assert.True(t, Auto().IsSet())
	assert.True(t, None().IsSet())
	assert.True(t, Keyword().IsSet())
	assert.True(t, Length(unit.Zero).IsSet())
	assert.True(t, Percentage(50).IsSet())
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, Auto().IsAuto())
	assert.True(t, None().IsNone())
	assert.True(t, Length(unit.PerPixel).IsLength())
	assert.True(t, Percentage(25).IsPercentage())
	assert.False(t, Auto().IsLength())
	assert.False(t, Length(unit.Zero).IsPercentage())
}

func TestAsLengthReturnsZeroForNonLength(t *testing.T) {
	assert.Equal(t, unit.Zero, Auto().AsLength())
	assert.Equal(t, 2*unit.PerPixel, Length(2*unit.PerPixel).AsLength())
}

func TestResolveLengthPassesThrough(t *testing.T) {
	v := Length(3 * unit.PerPixel)
	assert.Equal(t, 3*unit.PerPixel, v.Resolve(100*unit.PerPixel))
}

func TestResolvePercentageScalesAgainstBase(t *testing.T) {
	v := Percentage(50)
	assert.Equal(t, 50*unit.PerPixel, v.Resolve(100*unit.PerPixel))
}

func TestResolvePanicsOnNonResolvableKind(t *testing.T) {
	for _, v := range []Value{Auto(), None(), Unset(), Keyword()} {
		assert.Panics(t, func() { v.Resolve(unit.PerPixel) })
	}
}

func TestResolveOrFallsBackForEveryOtherKind(t *testing.T) {
	fallback := 7 * unit.PerPixel
	assert.Equal(t, fallback, Auto().ResolveOr(100*unit.PerPixel, fallback))
	assert.Equal(t, fallback, None().ResolveOr(100*unit.PerPixel, fallback))
	assert.Equal(t, fallback, Unset().ResolveOr(100*unit.PerPixel, fallback))
	assert.Equal(t, fallback, Keyword().ResolveOr(100*unit.PerPixel, fallback))
	assert.Equal(t, 4*unit.PerPixel, Length(4*unit.PerPixel).ResolveOr(100*unit.PerPixel, fallback))
	assert.Equal(t, 10*unit.PerPixel, Percentage(10).ResolveOr(100*unit.PerPixel, fallback))
}
