// Package unit implements the fixed-point length arithmetic shared by every
// other package in zss.
//
// A Unit is a signed 32-bit fixed-point quantity. Four units make up one
// device pixel, following the box tree's contract that all generated
// geometry is expressed in units, not pixels: a 1px border is 4 units wide,
// a half-pixel hinting adjustment is representable exactly.
//
// Conversion from pixels is checked: a value that would overflow int32 once
// scaled by 4 is reported as an explicit error rather than silently
// wrapping, mirroring the saturating arithmetic tyse's core/dimen package
// uses for its own design-unit type.
package unit

import (
	"errors"
	"math"
)

// Unit is a fixed-point length: 4 units per device pixel.
type Unit int32

// PerPixel is the number of Units in one device pixel.
const PerPixel Unit = 4

// Zero is the additive identity.
const Zero Unit = 0

// Max is the largest representable Unit.
const Max Unit = math.MaxInt32

// Min is the smallest representable Unit.
const Min Unit = math.MinInt32

// ErrViewportTooLarge is returned when a viewport dimension, once converted
// to units, would overflow int32.
var ErrViewportTooLarge = errors.New("unit: viewport too large")

// FromPixels converts a pixel quantity to Units, failing instead of
// overflowing when px*4 would not fit in an int32.
func FromPixels(px int32) (Unit, error) {
	widened := int64(px) * int64(PerPixel)
	if widened > int64(math.MaxInt32) || widened < int64(math.MinInt32) {
		return 0, ErrViewportTooLarge
	}
	return Unit(widened), nil
}

// ToPixels converts back to whole device pixels, truncating any fractional
// unit remainder.
func (u Unit) ToPixels() int32 {
	return int32(u) / int32(PerPixel)
}

// Add returns u+v, saturating at Min/Max instead of wrapping.
func (u Unit) Add(v Unit) Unit {
	sum := int64(u) + int64(v)
	return saturate(sum)
}

// Sub returns u-v, saturating at Min/Max instead of wrapping.
func (u Unit) Sub(v Unit) Unit {
	diff := int64(u) - int64(v)
	return saturate(diff)
}

// Scale multiplies u by an integer numerator/denominator pair, as used for
// percentage resolution (e.g. 35% of a 400-unit width is Scale(400, 35,
// 100)). Division by zero returns Zero.
func Scale(base Unit, num, den int64) Unit {
	if den == 0 {
		return Zero
	}
	scaled := int64(base) * num / den
	return saturate(scaled)
}

// MinOf returns the smaller of a and b.
func MinOf(a, b Unit) Unit {
	if a < b {
		return a
	}
	return b
}

// MaxOf returns the larger of a and b.
func MaxOf(a, b Unit) Unit {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts u to the closed interval [lo, hi]. If hi < lo, lo wins
// (an inverted min/max pair yields lo, as CSS's min-over-max rule does).
func Clamp(u, lo, hi Unit) Unit {
	if hi < lo {
		hi = lo
	}
	return MinOf(MaxOf(u, lo), hi)
}

// NonNegative clamps u to zero if it is negative, matching the CSS rule
// that padding and most widths may never resolve to a negative used value.
func NonNegative(u Unit) Unit {
	if u < Zero {
		return Zero
	}
	return u
}

func saturate(v int64) Unit {
	if v > int64(Max) {
		return Max
	}
	if v < int64(Min) {
		return Min
	}
	return Unit(v)
}

// Size is a width/height pair.
type Size struct {
	W, H Unit
}

// Point is an x/y offset, relative to some containing box's content-box
// origin unless documented otherwise at the call site.
type Point struct {
	X, Y Unit
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{p.X.Add(d.X), p.Y.Add(d.Y)}
}

// Edges holds the four physical edges of a box (border, padding or margin),
// always ordered top, right, bottom, left -- the CSS clockwise-from-top
// convention used throughout the box model.
type Edges struct {
	Top, Right, Bottom, Left Unit
}

// Horizontal returns Left+Right.
func (e Edges) Horizontal() Unit {
	return e.Left.Add(e.Right)
}

// Vertical returns Top+Bottom.
func (e Edges) Vertical() Unit {
	return e.Top.Add(e.Bottom)
}
