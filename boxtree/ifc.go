package boxtree

import "github.com/zss-dev/zss/unit"

// glyphZero is the reserved glyph index that escapes into a Special.
const glyphZero uint16 = 0

// SpecialKind discriminates the payload that follows a reserved zero
// glyph in an IFC's glyph stream.
type SpecialKind uint8

const (
	// SpecialZeroGlyphIndex means the original shaped glyph really was 0.
	SpecialZeroGlyphIndex SpecialKind = iota + 1
	// SpecialBoxStart marks the start of inline box Data.
	SpecialBoxStart
	// SpecialBoxEnd marks the end of inline box Data.
	SpecialBoxEnd
	// SpecialInlineBlock refers to the block at index Data, laid out in
	// shrink-to-fit mode and embedded inline.
	SpecialInlineBlock
	// SpecialLineBreak is a mandatory line break.
	SpecialLineBreak
	// SpecialContinuationBlock refers to the block at index Data that
	// split this IFC (CSS 2 §9.2.1.1); the IFC ends here and a new
	// anonymous one continues surrounding inline content.
	SpecialContinuationBlock
)

// Special is the payload carried at a reserved `0` glyph slot. Its zero
// value (Kind 0, Data 0) is unreachable through any constructor below, so
// an all-zero Special can always be recognized as corrupt data -- this is
// why SpecialKind starts at 1 rather than 0.
type Special struct {
	Kind SpecialKind
	Data int32
}

// IsZero reports whether s is the forbidden all-zero encoding.
func (s Special) IsZero() bool { return s.Kind == 0 && s.Data == 0 }

// GlyphMetrics is the (offset, advance, width) triple stored per glyph
// slot.
type GlyphMetrics struct {
	Offset  unit.Point
	Advance unit.Unit
	Width   unit.Unit
}

// LineBox is one produced line: a baseline plus a half-open glyph
// interval and the inline box open at its start.
type LineBox struct {
	Baseline            unit.Unit
	GlyphStart          int32
	GlyphEnd            int32 // half-open: [GlyphStart, GlyphEnd)
	OpeningInlineBox    int32
	HasOpeningInlineBox bool
}

// BoxProperties is the per-edge-pair style an inline box carries at its
// inline-start/end or block-start/end.
type BoxProperties struct {
	Border      unit.Unit
	Padding     unit.Unit
	BorderColor string
}

// InlineBox is one entry of an IFC's skip-encoded inline-box list.
type InlineBox struct {
	Skip        int32
	InlineStart BoxProperties
	InlineEnd   BoxProperties
	BlockStart  BoxProperties
	BlockEnd    BoxProperties
	Background  Background
	Margins     unit.Edges
	Insets      unit.Edges
}

// IFC is one Inline Formatting Context: a glyph/special stream plus the
// line boxes line-breaking produced over it.
//
// GlyphIndex and Metrics are kept as parallel slices, exactly as a
// shaped-glyph run would be. A reserved `0` entry in GlyphIndex marks a
// Special rather than a real glyph; instead of packing the Special's
// payload into the following 16-bit glyph slot (which cannot hold a full
// 32-bit Data without loss once a document has more than a few thousand
// inline boxes), the payload is recorded in the parallel Specials slice at
// the same index. Metrics at a Special's index are the zero value, except
// for a ZeroGlyphIndex special, which keeps the escaped glyph's metrics.
type IFC struct {
	id IFCID

	GlyphIndex []uint16
	Metrics    []GlyphMetrics
	Specials   []Special // valid only where GlyphIndex[i] == 0

	InlineBoxes []InlineBox
	LineBoxes   []LineBox

	Font      string // opaque identity returned by the Fonts collaborator
	FontColor string
	Ascender  unit.Unit
	Descender unit.Unit // stored positive
}

// ID returns the IFC's own id.
func (ifc *IFC) ID() IFCID { return ifc.id }

// AppendGlyph appends a shaped (glyph, metrics) pair. A literal glyph
// index of 0 is escaped as a ZeroGlyphIndex special so the reserved
// sentinel never collides with real content.
func (ifc *IFC) AppendGlyph(glyph uint16, m GlyphMetrics) {
	if glyph == glyphZero {
		ifc.appendSpecial(Special{Kind: SpecialZeroGlyphIndex}, m)
		return
	}
	ifc.GlyphIndex = append(ifc.GlyphIndex, glyph)
	ifc.Metrics = append(ifc.Metrics, m)
	ifc.Specials = append(ifc.Specials, Special{})
}

// appendSpecial appends one reserved-glyph/Special pair; m carries the
// metrics for the pair (normally zero except for an escaped real glyph).
func (ifc *IFC) appendSpecial(sp Special, m GlyphMetrics) {
	ifc.GlyphIndex = append(ifc.GlyphIndex, glyphZero)
	ifc.Metrics = append(ifc.Metrics, m)
	ifc.Specials = append(ifc.Specials, sp)
}

// SpecialAt returns the Special recorded at glyph-stream index i and
// whether GlyphIndex[i] is in fact a reserved slot.
func (ifc *IFC) SpecialAt(i int32) (Special, bool) {
	if ifc.GlyphIndex[i] != glyphZero {
		return Special{}, false
	}
	return ifc.Specials[i], true
}

// OpenInlineBox appends a fresh inline box to ifc's inline-box list and
// emits a BoxStart special, returning the new box's index.
func (ifc *IFC) OpenInlineBox() (int32, error) {
	if len(ifc.InlineBoxes) >= maxIndex16 {
		tracer().Errorf("boxtree: IFC %d inline box count limit exceeded", ifc.id)
		return 0, ErrSizeLimitExceeded
	}
	i := int32(len(ifc.InlineBoxes))
	ifc.InlineBoxes = append(ifc.InlineBoxes, InlineBox{Skip: 1})
	ifc.appendSpecial(Special{Kind: SpecialBoxStart, Data: i}, GlyphMetrics{})
	return i, nil
}

// CloseInlineBox fixes up box i's skip and emits a BoxEnd special.
func (ifc *IFC) CloseInlineBox(i int32) {
	ifc.InlineBoxes[i].Skip = int32(len(ifc.InlineBoxes)) - i
	ifc.appendSpecial(Special{Kind: SpecialBoxEnd, Data: i}, GlyphMetrics{})
}

// EmitInlineBlock emits an InlineBlock special referring to blockIndex.
func (ifc *IFC) EmitInlineBlock(blockIndex int32) {
	ifc.appendSpecial(Special{Kind: SpecialInlineBlock, Data: blockIndex}, GlyphMetrics{})
}

// EmitLineBreak emits a mandatory LineBreak special.
func (ifc *IFC) EmitLineBreak() {
	ifc.appendSpecial(Special{Kind: SpecialLineBreak}, GlyphMetrics{})
}

// EmitContinuationBlock emits the ContinuationBlock special that splits
// this IFC when a block box is encountered inside inline context
// (CSS 2 §9.2.1.1).
func (ifc *IFC) EmitContinuationBlock(blockIndex int32) {
	ifc.appendSpecial(Special{Kind: SpecialContinuationBlock, Data: blockIndex}, GlyphMetrics{})
}

// AppendLineBox records a produced line.
func (ifc *IFC) AppendLineBox(lb LineBox) {
	ifc.LineBoxes = append(ifc.LineBoxes, lb)
}
