// Package value implements the small option type used for declared and
// computed CSS values that flow through sizing: lengths, percentages, the
// `auto` keyword, and the CSS-wide keywords. It plays the role a DimenT
// option type plays in tyse's engine/dom/style package, adapted to the
// flat unit.Unit fixed-point type zss uses for all geometry.
package value

import "github.com/zss-dev/zss/unit"

// Kind discriminates the variants of Value.
type Kind uint8

const (
	// KindUnset means no declaration ever set this value; it is
	// unreachable once the cascade has run and the style computer has
	// applied initial/inherited defaulting.
	KindUnset Kind = iota
	// KindAuto is the `auto` keyword.
	KindAuto
	// KindLength is a fixed length, already resolved to unit.Unit.
	KindLength
	// KindPercentage is a percentage, stored as parts-per-ten-thousand so
	// that 33.33% round-trips exactly.
	KindPercentage
	// KindNone is the `none` keyword (used by max-width/max-height).
	KindNone
	// KindKeyword is a CSS-wide keyword (initial/inherit/unset/revert).
	// These are unreachable post-cascade in a correct pipeline; the sizing
	// solver does not check for them and resolves them through ResolveOr's
	// fallback, like auto.
	KindKeyword
)

// Value is a tagged union over the shapes a specified CSS value can take
// going into the sizing solver.
type Value struct {
	kind    Kind
	length  unit.Unit
	permyri int32 // percentage * 100, i.e. parts per 10000
}

// Auto constructs the `auto` keyword value.
func Auto() Value { return Value{kind: KindAuto} }

// None constructs the `none` keyword value.
func None() Value { return Value{kind: KindNone} }

// Unset constructs the absence of a declared value.
func Unset() Value { return Value{kind: KindUnset} }

// Keyword constructs a CSS-wide keyword value (initial/inherit/unset/revert).
func Keyword() Value { return Value{kind: KindKeyword} }

// Length constructs a fixed-length value.
func Length(u unit.Unit) Value { return Value{kind: KindLength, length: u} }

// Percentage constructs a percentage value; pct is in whole percent (35.5
// for 35.5%).
func Percentage(pct float64) Value {
	return Value{kind: KindPercentage, permyri: int32(pct * 100)}
}

// Kind returns the discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether a declaration actually assigned v, i.e. v is
// anything other than the zero-value "never declared" state. Used by the
// cascade engine to merge declarations from different blocks field by
// field: only a set field should override an already-accumulated one.
func (v Value) IsSet() bool { return v.kind != KindUnset }

// IsAuto reports whether v is the `auto` keyword.
func (v Value) IsAuto() bool { return v.kind == KindAuto }

// IsNone reports whether v is the `none` keyword.
func (v Value) IsNone() bool { return v.kind == KindNone }

// IsLength reports whether v carries a fixed length.
func (v Value) IsLength() bool { return v.kind == KindLength }

// IsPercentage reports whether v carries a percentage.
func (v Value) IsPercentage() bool { return v.kind == KindPercentage }

// AsLength returns the fixed length, or zero if v is not a length.
func (v Value) AsLength() unit.Unit {
	if v.kind != KindLength {
		return unit.Zero
	}
	return v.length
}

// Resolve turns a percentage into a length against base, and passes a fixed
// length through unchanged. Calling Resolve on auto/none/unset/keyword
// values is a programmer error and panics -- programmer errors are
// asserted, not handled.
func (v Value) Resolve(base unit.Unit) unit.Unit {
	switch v.kind {
	case KindLength:
		return v.length
	case KindPercentage:
		return unit.Scale(base, int64(v.permyri), 10000)
	default:
		panic("value: Resolve called on a non-resolvable Value kind")
	}
}

// ResolveOr resolves a percentage/length value against base, or returns
// fallback for every other kind (auto, none, unset, keyword). This is the
// form the sizing solver actually uses, since most of its per-field rules
// are "px or percentage(cb), else auto/0/infinity".
func (v Value) ResolveOr(base, fallback unit.Unit) unit.Unit {
	switch v.kind {
	case KindLength:
		return v.length
	case KindPercentage:
		return unit.Scale(base, int64(v.permyri), 10000)
	default:
		return fallback
	}
}
