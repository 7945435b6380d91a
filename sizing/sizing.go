/*
Package sizing implements the CSS 2 §10 width/height/margin/border/padding/
inset resolution: both the per-field rules (min/max-width, width, margins,
borders, padding, min/max-height, height, insets) and the auto-margin/width
reconciliation that follows them.

This is a direct, arena-friendly port of the algorithm tyse's
engine/frame/box.go implements (FixDimensionsFromEnclosingWidth,
distributeHorizontalMarginSpace, calcWidthAsRest): the same two-phase shape
(first resolve every field independently against the containing block, then
reconcile auto-valued width/margins against the remaining space) survives,
but expressed over the flat unit.Unit/value.Value types zss uses instead of
a DimenT option-matching API.
*/
package sizing

import (
	"github.com/zss-dev/zss/decls"
	"github.com/zss-dev/zss/unit"
	"github.com/zss-dev/zss/value"
)

// Mode is the sizing mode box generation requests.
type Mode uint8

const (
	// Normal is in-flow block sizing.
	Normal Mode = iota
	// ShrinkToFit is used for floats, inline-blocks and absolutely
	// positioned boxes when width is auto.
	ShrinkToFit
)

// Inputs bundles everything the solver needs for one box.
type Inputs struct {
	ContentWidth    decls.ContentWidth
	HorizontalEdges decls.HorizontalEdges
	VerticalEdges   decls.VerticalEdges
	Insets          decls.Insets
	Position        Position
	CBWidth         unit.Unit
	CBHeight        unit.Unit
	HasCBHeight     bool
	Mode            Mode
}

// Position mirrors style.Position without importing package style (sizing
// sits below style in the dependency graph; box generation passes the
// already-computed value in).
type Position uint8

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsoluteOrFixed
)

// Used holds every used value the solver resolves: the box-offsets,
// borders and margins a block carries before its final position is fixed.
type Used struct {
	InlineSize, BlockSize       unit.Unit
	MinInlineSize, MaxInlineSize unit.Unit
	MinBlockSize, MaxBlockSize  unit.Unit
	InlineSizeIsAuto            bool
	BlockSizeIsAuto              bool

	MarginLeft, MarginRight   unit.Unit
	MarginLeftIsAuto          bool
	MarginRightIsAuto         bool
	MarginTop, MarginBottom   unit.Unit

	BorderLeft, BorderRight unit.Unit
	BorderTop, BorderBottom unit.Unit

	PaddingLeft, PaddingRight unit.Unit
	PaddingTop, PaddingBottom unit.Unit

	InsetTop, InsetRight, InsetBottom, InsetLeft unit.Unit
}

// borderStyleMultiplier returns 1 unless the border style is "none" or
// "hidden", in which case the computed border width is forced to zero
// regardless of the declared width.
func borderStyleMultiplier(style string) unit.Unit {
	if style == "none" || style == "hidden" {
		return 0
	}
	return 1
}

// Solve resolves every field of in against its containing block and mode,
// and returns the used values with inline/block size already clamped to
// their min/max. When ContentWidth.BoxSizing is "border-box", a set
// width/height is first treated as the border-box size and border+padding
// are subtracted back out to recover the content-box size Used carries.
// Solve does not yet perform the auto-margin/width reconciliation -- call
// AdjustWidthAndMargins for that once the caller knows whether this is the
// final pass.
func Solve(in Inputs) Used {
	var u Used

	u.BorderLeft = resolveBorderWidth(in.HorizontalEdges.BorderLeftWidth, in.HorizontalEdges.BorderLeftStyle)
	u.BorderRight = resolveBorderWidth(in.HorizontalEdges.BorderRightWidth, in.HorizontalEdges.BorderRightStyle)
	u.BorderTop = resolveBorderWidth(in.VerticalEdges.BorderTopWidth, in.VerticalEdges.BorderTopStyle)
	u.BorderBottom = resolveBorderWidth(in.VerticalEdges.BorderBottomWidth, in.VerticalEdges.BorderBottomStyle)

	u.PaddingLeft = unit.NonNegative(resolveAgainst(in.HorizontalEdges.PaddingLeft, in.CBWidth, 0))
	u.PaddingRight = unit.NonNegative(resolveAgainst(in.HorizontalEdges.PaddingRight, in.CBWidth, 0))
	u.PaddingTop = unit.NonNegative(resolveAgainst(in.VerticalEdges.PaddingTop, in.CBWidth, 0))
	u.PaddingBottom = unit.NonNegative(resolveAgainst(in.VerticalEdges.PaddingBottom, in.CBWidth, 0))

	solveWidthFamily(&u, in)
	solveHeightFamily(&u, in)
	solveMarginsVertical(&u, in)
	solveInsets(&u, in)

	u.InlineSize = unit.Clamp(u.InlineSize, u.MinInlineSize, u.MaxInlineSize)
	if !in.HasCBHeight || u.BlockSize != 0 || !u.BlockSizeIsAuto {
		u.BlockSize = unit.Clamp(u.BlockSize, u.MinBlockSize, u.MaxBlockSize)
	}
	return u
}

func resolveBorderWidth(v value.Value, style string) unit.Unit {
	w := v.ResolveOr(0, 0)
	return w * borderStyleMultiplier(style)
}

// resolveAgainst resolves a px/percentage value against base, falling back
// to fallback for auto/none/unset/keyword.
func resolveAgainst(v value.Value, base, fallback unit.Unit) unit.Unit {
	return v.ResolveOr(base, fallback)
}

func solveWidthFamily(u *Used, in Inputs) {
	cw := in.ContentWidth

	// min-width
	switch {
	case cw.MinWidth.IsPercentage() && in.Mode == ShrinkToFit:
		u.MinInlineSize = 0
	default:
		u.MinInlineSize = unit.NonNegative(cw.MinWidth.ResolveOr(in.CBWidth, 0))
	}

	// max-width
	switch {
	case cw.MaxWidth.IsNone():
		u.MaxInlineSize = unit.Max
	case cw.MaxWidth.IsPercentage() && in.Mode == ShrinkToFit:
		u.MaxInlineSize = unit.Max
	case !cw.MaxWidth.IsSet():
		u.MaxInlineSize = unit.Max
	default:
		u.MaxInlineSize = unit.NonNegative(cw.MaxWidth.ResolveOr(in.CBWidth, unit.Max))
	}

	// width
	width := cw.Width
	if in.Mode == ShrinkToFit && width.IsPercentage() {
		width = value.Auto()
	}
	if width.IsAuto() || !width.IsSet() {
		u.InlineSizeIsAuto = true
		u.InlineSize = 0
	} else {
		u.InlineSize = width.Resolve(in.CBWidth)
		if cw.BoxSizing == "border-box" {
			u.InlineSize = unit.NonNegative(u.InlineSize - u.BorderLeft - u.BorderRight - u.PaddingLeft - u.PaddingRight)
		}
	}

	// margin-left/right
	ml := in.HorizontalEdges.MarginLeft
	mr := in.HorizontalEdges.MarginRight
	if in.Mode == ShrinkToFit {
		if ml.IsPercentage() {
			ml = value.Auto()
		}
		if mr.IsPercentage() {
			mr = value.Auto()
		}
	}
	if ml.IsAuto() {
		u.MarginLeftIsAuto = true
	} else {
		u.MarginLeft = ml.ResolveOr(in.CBWidth, 0)
	}
	if mr.IsAuto() {
		u.MarginRightIsAuto = true
	} else {
		u.MarginRight = mr.ResolveOr(in.CBWidth, 0)
	}
}

func solveHeightFamily(u *Used, in Inputs) {
	cw := in.ContentWidth
	cbh := in.CBHeight
	haveCBH := in.HasCBHeight

	switch {
	case cw.MinHeight.IsPercentage() && !haveCBH:
		u.MinBlockSize = 0
	default:
		base := cbh
		u.MinBlockSize = unit.NonNegative(cw.MinHeight.ResolveOr(base, 0))
	}

	switch {
	case cw.MaxHeight.IsNone():
		u.MaxBlockSize = unit.Max
	case cw.MaxHeight.IsPercentage() && !haveCBH:
		u.MaxBlockSize = unit.Max
	case !cw.MaxHeight.IsSet():
		u.MaxBlockSize = unit.Max
	default:
		u.MaxBlockSize = unit.NonNegative(cw.MaxHeight.ResolveOr(cbh, unit.Max))
	}

	height := cw.Height
	if height.IsPercentage() && !haveCBH {
		height = value.Auto()
	}
	if height.IsAuto() || !height.IsSet() {
		u.BlockSizeIsAuto = true
		u.BlockSize = 0
	} else {
		u.BlockSize = height.Resolve(cbh)
		if cw.BoxSizing == "border-box" {
			u.BlockSize = unit.NonNegative(u.BlockSize - u.BorderTop - u.BorderBottom - u.PaddingTop - u.PaddingBottom)
		}
	}
}

// solveMarginsVertical resolves margin-top/bottom: px or percentage(cb
// width, not height -- this is the well-known CSS quirk that vertical
// margin percentages resolve against the containing block's width), with
// `auto` always resolving to 0 -- vertical margins are never
// auto-distributed in normal flow.
func solveMarginsVertical(u *Used, in Inputs) {
	u.MarginTop = in.VerticalEdges.MarginTop.ResolveOr(in.CBWidth, 0)
	u.MarginBottom = in.VerticalEdges.MarginBottom.ResolveOr(in.CBWidth, 0)
}

// solveInsets resolves the four insets. Percentages are resolved here,
// all four against the containing block's width; they are not kept in
// symbolic form, and top/bottom percentages are not resolved against the
// containing block's height. Under static positioning all four collapse
// to zero.
func solveInsets(u *Used, in Inputs) {
	if in.Position == PositionStatic {
		u.InsetTop, u.InsetRight, u.InsetBottom, u.InsetLeft = 0, 0, 0, 0
		return
	}
	u.InsetTop = in.Insets.Top.ResolveOr(in.CBWidth, 0)
	u.InsetRight = in.Insets.Right.ResolveOr(in.CBWidth, 0)
	u.InsetBottom = in.Insets.Bottom.ResolveOr(in.CBWidth, 0)
	u.InsetLeft = in.Insets.Left.ResolveOr(in.CBWidth, 0)
}

// AdjustWidthAndMargins implements the auto-margin/width reconciliation
// pass: given the available inline space after border+padding are
// subtracted from the containing block width, it resolves whichever of
// width/margin-left/margin-right was left auto by Solve.
func AdjustWidthAndMargins(u *Used, cbWidth unit.Unit) {
	space := cbWidth - u.BorderLeft - u.PaddingLeft - u.PaddingRight - u.BorderRight

	switch {
	case !u.InlineSizeIsAuto && !u.MarginLeftIsAuto && !u.MarginRightIsAuto:
		// Over-constrained: the end margin absorbs the discrepancy.
		u.MarginRight = space - u.InlineSize - u.MarginLeft
	case !u.InlineSizeIsAuto && (u.MarginLeftIsAuto || u.MarginRightIsAuto):
		fixedMargins := unit.Zero
		if !u.MarginLeftIsAuto {
			fixedMargins = fixedMargins.Add(u.MarginLeft)
		}
		if !u.MarginRightIsAuto {
			fixedMargins = fixedMargins.Add(u.MarginRight)
		}
		leftover := unit.NonNegative(space - u.InlineSize - fixedMargins)
		if u.MarginLeftIsAuto && u.MarginRightIsAuto {
			half := leftover / 2
			u.MarginLeft = half
			// The end margin absorbs the odd unit.
			u.MarginRight = leftover - half
		} else if u.MarginLeftIsAuto {
			u.MarginLeft = leftover
		} else {
			u.MarginRight = leftover
		}
		u.MarginLeftIsAuto, u.MarginRightIsAuto = false, false
	default: // width is auto
		left := u.MarginLeft
		if u.MarginLeftIsAuto {
			left = 0
		}
		right := u.MarginRight
		if u.MarginRightIsAuto {
			right = 0
		}
		u.InlineSize = unit.NonNegative(space - left - right)
		u.InlineSizeIsAuto = false
		u.MarginLeft, u.MarginRight = left, right
		u.MarginLeftIsAuto, u.MarginRightIsAuto = false, false
	}
}

// ResolveAutoBlockSize clamps an auto block-size to [min,max] once the
// caller (box generation's child-layout pass) has computed the auto-height
// as the sum of children's border boxes and vertical margins.
func ResolveAutoBlockSize(u *Used, autoHeight unit.Unit) {
	u.BlockSize = unit.Clamp(autoHeight, u.MinBlockSize, u.MaxBlockSize)
	u.BlockSizeIsAuto = false
}
