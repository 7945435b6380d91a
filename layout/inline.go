package layout

import (
	"bufio"
	"strings"
	"unicode"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
	"golang.org/x/text/unicode/norm"

	"github.com/zss-dev/zss/boxtree"
	"github.com/zss-dev/zss/decls"
	"github.com/zss-dev/zss/elementtree"
	"github.com/zss-dev/zss/fonts"
	"github.com/zss-dev/zss/sizing"
	"github.com/zss-dev/zss/style"
	"github.com/zss-dev/zss/unit"
)

// glyphAdvancePermille and spaceAdvancePermille turn a font size into a
// rough per-segment advance, in thousandths of the em. Real shaping
// (ligatures, kerning, per-glyph advances from the font's own tables) is
// outside this module's scope -- fonts.Face exposes line metrics only, not
// glyph advances -- so a word segment is costed as a fixed fraction of its
// rune count times the em-size, the same approximation a first
// line-breaking pass over an unshaped run would make.
const (
	glyphAdvancePermille = 550
	spaceAdvancePermille = 300
)

// openInline is one entry of an inlineCtx's stack of currently-open inline
// elements: the element itself and the index its InlineBox was opened at.
// Re-opened with a fresh boxIdx after a continuation-block split
// (CSS 2 §9.2.1.1).
type openInline struct {
	el     elementtree.Element
	boxIdx int32
}

// inlineCtx drives one Inline Formatting Context across a run of flow
// content: it lazily opens an anonymous IFC-container block on first
// inline content, accumulates glyphs and line boxes into it, and closes it
// (possibly more than once, across a continuation-block split) as flow
// generation proceeds through a single containing block's children.
//
// currentY/usedHeight are shared with the caller's auto-height
// accumulation: every block (real or the anonymous IFC-container) ic
// produces advances both.
type inlineCtx struct {
	g                 *Generator
	subtreeID         boxtree.SubtreeID
	containingBlock   boxtree.BlockRef
	cbWidth, cbHeight unit.Unit

	ifc          *boxtree.IFC
	ifcID        boxtree.IFCID
	containerIdx int32
	open         bool

	stack []openInline

	penX            unit.Unit
	lineStart       int32
	lineAscender    unit.Unit
	lineDescender   unit.Unit
	hasLineContent  bool
	linesHeight     unit.Unit

	currentY   unit.Unit
	usedHeight unit.Unit

	// pendingMarginBottom is the trailing margin-bottom of the most
	// recently generated block-level sibling, not yet materialized into
	// currentY. It collapses against the next sibling's margin-top (CSS 2
	// §8.3.1, adjoining vertical margins) rather than stacking with it; it
	// is flushed unconditionally once anything other than a plain block
	// sibling follows (inline content, the end of the container).
	pendingMarginBottom unit.Unit
}

func newInlineCtx(g *Generator, subtreeID boxtree.SubtreeID, containingBlock boxtree.BlockRef, cbWidth, cbHeight unit.Unit) *inlineCtx {
	return &inlineCtx{g: g, subtreeID: subtreeID, containingBlock: containingBlock, cbWidth: cbWidth, cbHeight: cbHeight}
}

// ensureOpen lazily allocates the IFC and its anonymous container block on
// first inline content. The container is registered with whichever
// stacking context is currently open so painting later finds it without a
// separate element-to-IFC lookup.
func (ic *inlineCtx) ensureOpen() error {
	if ic.open {
		return nil
	}
	ic.flushPendingMargin()
	ifcID, err := ic.g.bt.NewIFC()
	if err != nil {
		return err
	}
	ic.ifcID = ifcID
	ic.ifc = ic.g.bt.IFCByID(ifcID)

	st := ic.g.bt.Subtree(ic.subtreeID)
	idx, err := st.AppendBlock(boxtree.IFCContainer(ifcID), elementtree.NullElement)
	if err != nil {
		return err
	}
	ic.containerIdx = idx
	ic.g.sc.AddIFC(ifcID)

	ic.open = true
	ic.penX = 0
	ic.lineStart = 0
	ic.linesHeight = 0
	ic.hasLineContent = false
	return nil
}

// finishLine closes out the line currently being accumulated, if it has
// any content, appending a LineBox to ic.ifc and folding its height into
// ic.linesHeight.
func (ic *inlineCtx) finishLine() {
	if !ic.hasLineContent {
		return
	}
	var opening int32
	var hasOpening bool
	if len(ic.stack) > 0 {
		opening = ic.stack[len(ic.stack)-1].boxIdx
		hasOpening = true
	}
	ic.ifc.AppendLineBox(boxtree.LineBox{
		Baseline:            ic.lineAscender,
		GlyphStart:          ic.lineStart,
		GlyphEnd:            int32(len(ic.ifc.GlyphIndex)),
		OpeningInlineBox:    opening,
		HasOpeningInlineBox: hasOpening,
	})
	ic.linesHeight = ic.linesHeight.Add(ic.lineAscender).Add(ic.lineDescender)
	ic.lineStart = int32(len(ic.ifc.GlyphIndex))
	ic.penX = 0
	ic.lineAscender = 0
	ic.lineDescender = 0
	ic.hasLineContent = false
}

// closeContainer finalizes the anonymous IFC-container block: the
// trailing partial line (if any), its geometry, and the height/Y
// bookkeeping shared with the enclosing generateFlowChildren call.
func (ic *inlineCtx) closeContainer() {
	ic.finishLine()
	st := ic.g.bt.Subtree(ic.subtreeID)
	h := ic.linesHeight
	st.BoxOffsets[ic.containerIdx] = boxtree.BoxOffsets{
		BorderPos:   unit.Point{X: 0, Y: ic.currentY},
		BorderSize:  unit.Size{W: ic.cbWidth, H: h},
		ContentPos:  unit.Point{X: 0, Y: ic.currentY},
		ContentSize: unit.Size{W: ic.cbWidth, H: h},
	}
	st.Offset[ic.containerIdx] = unit.Point{X: 0, Y: ic.currentY}
	st.SetSkip(ic.containerIdx, 1)
	ic.usedHeight = ic.usedHeight.Add(h)
	ic.currentY = ic.currentY.Add(h)
	ic.open = false
}

// closeFinal closes any IFC still open at the end of a container's
// children and returns the total auto height accumulated across every
// block and IFC this context produced.
func (ic *inlineCtx) closeFinal() (unit.Unit, error) {
	if ic.open {
		ic.closeContainer()
	}
	ic.flushPendingMargin()
	return ic.usedHeight, nil
}

// flushPendingMargin materializes any margin-bottom left pending by a
// block-level sibling into currentY/usedHeight. Called wherever something
// other than a further plain block sibling is about to be generated, since
// only adjoining sibling margins collapse.
func (ic *inlineCtx) flushPendingMargin() {
	if ic.pendingMarginBottom == 0 {
		return
	}
	ic.currentY = ic.currentY.Add(ic.pendingMarginBottom)
	ic.usedHeight = ic.usedHeight.Add(ic.pendingMarginBottom)
	ic.pendingMarginBottom = 0
}

// closeForSplit closes the currently open IFC, if any, with no
// continuation marker -- used when a block-level sibling follows inline
// content but no inline element is actually open around it.
func (ic *inlineCtx) closeForSplit() error {
	if ic.open {
		ic.closeContainer()
	}
	return nil
}

// splitForContinuation implements CSS 2 §9.2.1.1: a block-level box
// (blockIdx, already reserved in ic.subtreeID) appears while one or more
// inline elements are open around it. The current IFC is terminated with
// a ContinuationBlock special, every open inline box is closed (innermost
// to outermost) without forgetting the logical stack, and a fresh IFC is
// opened and immediately re-populated with freshly-opened inline boxes for
// the same elements (outermost to innermost) so surrounding inline
// content continues after the block.
func (ic *inlineCtx) splitForContinuation(blockIdx int32) error {
	if err := ic.ensureOpen(); err != nil {
		return err
	}
	ic.ifc.EmitContinuationBlock(blockIdx)
	for i := len(ic.stack) - 1; i >= 0; i-- {
		ic.ifc.CloseInlineBox(ic.stack[i].boxIdx)
	}
	ic.closeContainer()

	if err := ic.ensureOpen(); err != nil {
		return err
	}
	for i := range ic.stack {
		boxIdx, err := ic.ifc.OpenInlineBox()
		if err != nil {
			return err
		}
		ic.stack[i].boxIdx = boxIdx
		ic.g.bt.ElementToGeneratedBox[ic.stack[i].el] = boxtree.GeneratedBox{
			Kind: boxtree.GeneratedInlineBox, IFC: ic.ifcID, InlineBox: ic.stack[i].boxIdx,
		}
	}
	return nil
}

// appendText shapes text with an approximate word/space segmentation
// (github.com/npillmayer/uax/segment over a uax14 line-break classifier,
// the same pipeline tyse's typesetting stage,
// engine/khipu.PrepareTypesettingPipeline, builds ahead of real shaping)
// and appends one synthetic glyph per segment, wrapping lines against
// ic.cbWidth.
func (ic *inlineCtx) appendText(el elementtree.Element, text string) error {
	if err := ic.ensureOpen(); err != nil {
		return err
	}
	cv, err := ic.g.tree.CascadedValues(el)
	if err != nil {
		return err
	}
	face := ic.faceFor(cv)
	fontSize := cv.Font.Size.ResolveOr(0, defaultFontSize)
	if ic.ifc.FontColor == "" {
		ic.ifc.FontColor = cv.Colors.Color
	}

	breaker := uax14.NewLineWrap()
	seg := segment.NewSegmenter(breaker)
	seg.Init(bufio.NewReader(norm.NFC.Reader(strings.NewReader(text))))

	for seg.Next() {
		piece := seg.Text()
		if piece == "" {
			continue
		}
		isSpace := isAllSpace(piece)
		advance := segmentAdvance(piece, fontSize, isSpace)

		if !isSpace && ic.hasLineContent && ic.penX.Add(advance) > ic.cbWidth {
			ic.finishLine()
		}
		ic.appendSegmentGlyph(piece, advance, face, fontSize)
	}
	return nil
}

func (ic *inlineCtx) appendSegmentGlyph(piece string, advance unit.Unit, face fonts.Face, fontSize unit.Unit) {
	r := []rune(piece)[0]
	glyph := uint16(r)
	ic.ifc.AppendGlyph(glyph, boxtree.GlyphMetrics{Offset: unit.Point{X: ic.penX}, Advance: advance, Width: advance})
	ic.penX = ic.penX.Add(advance)
	ic.hasLineContent = true
	if face != nil {
		m := face.Metrics()
		if m.Ascender > ic.lineAscender {
			ic.lineAscender = m.Ascender
		}
		if m.Descender > ic.lineDescender {
			ic.lineDescender = m.Descender
		}
	} else if fontSize > ic.lineAscender {
		ic.lineAscender = fontSize
	}
}

func isAllSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func segmentAdvance(piece string, fontSize unit.Unit, isSpace bool) unit.Unit {
	n := int64(len([]rune(piece)))
	permille := int64(glyphAdvancePermille)
	if isSpace {
		permille = spaceAdvancePermille
	}
	return unit.Scale(fontSize, n*permille, 1000)
}

// faceFor resolves the font face for an element's cascaded Font aggregate
// via the Generator's Fonts collaborator, tolerating a nil collaborator or
// a lookup failure by laying out with zero metrics (fontSize still drives
// the fallback line height).
func (ic *inlineCtx) faceFor(cv *decls.Aggregates) fonts.Face {
	if ic.g.fonts == nil {
		return nil
	}
	face, err := ic.g.fonts.Get(fontHandleFor(*cv))
	if err != nil {
		return nil
	}
	return face
}

// emitInlineSpan opens an inline box for el, recurses into its children
// (which may themselves be text, further spans, inline-blocks, or a
// block-level element triggering a continuation split), then closes it.
func (ic *inlineCtx) emitInlineSpan(el elementtree.Element) error {
	if err := ic.ensureOpen(); err != nil {
		return err
	}
	idx, err := ic.ifc.OpenInlineBox()
	if err != nil {
		return err
	}
	ic.stack = append(ic.stack, openInline{el: el, boxIdx: idx})
	ic.g.bt.ElementToGeneratedBox[el] = boxtree.GeneratedBox{Kind: boxtree.GeneratedInlineBox, IFC: ic.ifcID, InlineBox: idx}

	children, err := ic.g.tree.Children(el)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := ic.g.walkFlowElement(ic, c, false); err != nil {
			return err
		}
	}

	idx = ic.stack[len(ic.stack)-1].boxIdx
	ic.stack = ic.stack[:len(ic.stack)-1]
	if ic.open {
		ic.ifc.CloseInlineBox(idx)
	}
	return nil
}

// emitInlineBlock lays el out in shrink-to-fit mode as its own block
// (establishing a fresh block formatting context, as inline-block always
// does) and embeds it at the current glyph-stream position.
func (ic *inlineCtx) emitInlineBlock(el elementtree.Element) error {
	if err := ic.ensureOpen(); err != nil {
		return err
	}
	cv, err := ic.g.tree.CascadedValues(el)
	if err != nil {
		return err
	}
	computed := style.ComputeBoxStyle(cv.BoxStyle, false)
	used, err := ic.g.generateBlock(el, ic.subtreeID, ic.cbWidth, ic.cbHeight, true, computed, sizing.ShrinkToFit, -1, ic.currentY, nil)
	if err != nil {
		return err
	}
	idx := ic.g.bt.ElementToGeneratedBox[el].Block.Index
	height := blockOuterHeight(used)

	ic.ifc.EmitInlineBlock(idx)
	ic.penX = ic.penX.Add(used.MarginLeft).Add(used.BorderLeft).Add(used.PaddingLeft).
		Add(used.InlineSize).Add(used.PaddingRight).Add(used.BorderRight).Add(used.MarginRight)
	ic.hasLineContent = true
	if height > ic.lineAscender {
		ic.lineAscender = height
	}
	return nil
}

// handleBlockChild implements the block-in-flow dispatch walkFlowElement
// delegates to: a plain close-and-append when no inline element is
// currently open around the block, or a full continuation-block split
// (CSS 2 §9.2.1.1) when one or more are.
func (ic *inlineCtx) handleBlockChild(el elementtree.Element, computed style.ComputedBoxStyle) error {
	if len(ic.stack) == 0 {
		if err := ic.closeForSplit(); err != nil {
			return err
		}
		cv, err := ic.g.tree.CascadedValues(el)
		if err != nil {
			return err
		}
		marginTop := cv.VerticalEdges.MarginTop.ResolveOr(ic.cbWidth, 0)
		collapsed := unit.MaxOf(ic.pendingMarginBottom, marginTop)
		used, err := ic.g.generateBlock(el, ic.subtreeID, ic.cbWidth, ic.cbHeight, true, computed, sizing.Normal, -1, ic.currentY, &collapsed)
		if err != nil {
			return err
		}
		contentAndEdges := used.BorderTop.Add(used.PaddingTop).Add(used.BlockSize).Add(used.PaddingBottom).Add(used.BorderBottom)
		ic.usedHeight = ic.usedHeight.Add(collapsed).Add(contentAndEdges)
		ic.currentY = ic.currentY.Add(collapsed).Add(contentAndEdges)
		ic.pendingMarginBottom = used.MarginBottom
		return nil
	}

	st := ic.g.bt.Subtree(ic.subtreeID)
	blockIdx, err := st.AppendBlock(boxtree.Plain(), elementtree.NullElement)
	if err != nil {
		return err
	}
	if err := ic.splitForContinuation(blockIdx); err != nil {
		return err
	}
	used, err := ic.g.generateBlock(el, ic.subtreeID, ic.cbWidth, ic.cbHeight, true, computed, sizing.Normal, blockIdx, ic.currentY, nil)
	if err != nil {
		return err
	}
	height := blockOuterHeight(used)
	ic.usedHeight = ic.usedHeight.Add(height)
	ic.currentY = ic.currentY.Add(height)
	return nil
}
