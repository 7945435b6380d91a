/*
Package style implements the style computer: per-element specified-value to
computed-value resolution performed during box generation, and in
particular the box-style resolution step that decides an element's
outer/inner display given its cascaded `display`/`position` and whether it
is the tree's root element.

The Root/NonRoot special-casing mirrors tyse's engine/dom/style/defaults.go,
which maps HTML element names to a default `display` the same way; here the
mapping works off the already-cascaded BoxStyle aggregate rather than the
raw tag name, since by this point in the pipeline the cascade has already
run.
*/
package style

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/zss-dev/zss/decls"
	"github.com/zss-dev/zss/value"
)

func tracer() tracing.Trace { return gtrace.EngineTracer }

// OuterDisplay is the computed outer display type box generation dispatches
// on.
type OuterDisplay uint8

const (
	OuterNone OuterDisplay = iota
	OuterBlock
	OuterInline
	OuterAbsolute
)

// InnerDisplay records whether a box's own content is laid out in flow or
// as a standalone formatting context of its own (e.g. inline-block).
type InnerDisplay uint8

const (
	InnerFlow InnerDisplay = iota
	InnerFlowRoot           // establishes a new block formatting context (inline-block, absolute)
)

// ComputedBoxStyle is the resolved (outer, inner) display pair plus the
// positioning scheme, ready for box generation to dispatch on.
type ComputedBoxStyle struct {
	Outer    OuterDisplay
	Inner    InnerDisplay
	Position Position
	ZIndex   ZIndex
}

// Position is the computed `position` value.
type Position uint8

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

// ZIndex is the computed z-index: either Auto (participates in parent's
// stacking context without creating its own) or a fixed value.
type ZIndex struct {
	Auto  bool
	Value int32
}

// ComputeBoxStyle resolves a cascaded BoxStyle aggregate into a
// ComputedBoxStyle, applying these Root/NonRoot rules:
//
//   - display:none always wins and stops descent, regardless of root-ness.
//   - the root element maps `display:inline` to `display:block` (CSS 2.1
//     §9.2.1's "if the root element's display is inline, it is used as
//     though it were block" is a common UA-stylesheet rule; tyse's
//     GetDefaultProperty enforces the same thing by always returning a
//     block-level default display for the document root).
//   - `position:absolute` (or `fixed`) forces the inner display to a new
//     block formatting context ("inner block") regardless of the declared
//     display, matching CSS 2.1 §9.7's display computation table.
func ComputeBoxStyle(cascaded decls.BoxStyle, isRoot bool) ComputedBoxStyle {
	position := computePosition(cascaded.Position)
	z := computeZIndex(cascaded.ZIndex)

	display := cascaded.Display
	if display == "" {
		display = "inline"
	}
	if isRoot && display == "inline" {
		tracer().Debugf("style: root element display:inline promoted to block")
		display = "block"
	}
	if display == "none" {
		return ComputedBoxStyle{Outer: OuterNone, Position: position, ZIndex: z}
	}

	if position == PositionAbsolute || position == PositionFixed {
		return ComputedBoxStyle{Outer: OuterAbsolute, Inner: InnerFlowRoot, Position: position, ZIndex: z}
	}

	switch display {
	case "block":
		return ComputedBoxStyle{Outer: OuterBlock, Inner: InnerFlow, Position: position, ZIndex: z}
	case "inline-block":
		return ComputedBoxStyle{Outer: OuterInline, Inner: InnerFlowRoot, Position: position, ZIndex: z}
	case "inline":
		return ComputedBoxStyle{Outer: OuterInline, Inner: InnerFlow, Position: position, ZIndex: z}
	default:
		tracer().Debugf("style: unrecognized display %q treated as inline", display)
		return ComputedBoxStyle{Outer: OuterInline, Inner: InnerFlow, Position: position, ZIndex: z}
	}
}

func computePosition(p string) Position {
	switch p {
	case "relative":
		return PositionRelative
	case "absolute":
		return PositionAbsolute
	case "fixed":
		return PositionFixed
	default:
		return PositionStatic
	}
}

func computeZIndex(v value.Value) ZIndex {
	if !v.IsSet() || v.IsAuto() {
		return ZIndex{Auto: true}
	}
	return ZIndex{Value: int32(v.AsLength())}
}
