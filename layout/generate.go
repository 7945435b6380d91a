/*
Package layout implements box generation: the pass that walks a cascaded
element tree and produces a boxtree.BoxTree, calling into the sizing
solver and the style computer along the way, then the cosmetic pass that
fills in colors and background images once geometry is settled.

Where tyse drives this with an explicit stack of Context/Container frames
(engine/frame/box.go's layout context, engine/khipu's typesetting pipeline),
box generation here uses recursive descent: the Go call stack plays the
role of the mode stack, each stack frame closing over the current subtree,
containing-block size, and formatting-context mode. Frames are still
conceptually flow, shrink-to-fit, or inline; the "stack" is simply implicit
in the call graph rather than an explicit slice.
*/
package layout

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/zss-dev/zss/boxtree"
	"github.com/zss-dev/zss/decls"
	"github.com/zss-dev/zss/elementtree"
	"github.com/zss-dev/zss/fonts"
	"github.com/zss-dev/zss/images"
	"github.com/zss-dev/zss/sizing"
	"github.com/zss-dev/zss/style"
	"github.com/zss-dev/zss/unit"
)

func tracer() tracing.Trace { return gtrace.EngineTracer }

// defaultFontSize is the used font-size when no font-size was ever
// cascaded onto an element -- the common "16px" user-agent default.
var defaultFontSize, _ = unit.FromPixels(16)

// Generator carries the state one Generate call threads through recursive
// descent: the collaborators it calls out to, the box tree under
// construction, and bookkeeping (stacking contexts, absolutely positioned
// boxes) that can only be resolved in relation to the whole tree.
type Generator struct {
	tree   *elementtree.Tree
	bt     *boxtree.BoxTree
	fonts  fonts.Fonts
	images images.Images
	sc     *boxtree.Builder

	absolutes []absoluteJob
}

// absoluteJob records a position:absolute/fixed element encountered during
// flow generation; it is resolved only once the rest of the tree (and in
// particular its containing block's content box) is known.
type absoluteJob struct {
	element elementtree.Element
	cb      boxtree.BlockRef
}

// Generate walks the subtree of tree rooted at root and produces a fresh
// BoxTree sized to viewport (in pixels). fontsC/imagesC resolve the
// font-family/font-size and background-image handles box generation and
// the cosmetic pass need; either may be nil, in which case text is laid
// out with zero metrics and background-image sources are interned without
// being checked against an Images collaborator.
func Generate(tree *elementtree.Tree, root elementtree.Element, viewportWpx, viewportHpx int32, fontsC fonts.Fonts, imagesC images.Images) (*boxtree.BoxTree, error) {
	w, err := unit.FromPixels(viewportWpx)
	if err != nil {
		return nil, err
	}
	h, err := unit.FromPixels(viewportHpx)
	if err != nil {
		return nil, err
	}

	bt := boxtree.NewBoxTree()
	g := &Generator{
		tree:   tree,
		bt:     bt,
		fonts:  fontsC,
		images: imagesC,
		sc:     boxtree.NewBuilder(&bt.SCT),
	}

	rootSubtreeID, err := bt.NewSubtree(boxtree.NullBlockRef)
	if err != nil {
		bt.Deinit()
		return nil, err
	}
	st := bt.Subtree(rootSubtreeID)

	icbIdx, err := st.AppendBlock(boxtree.Plain(), elementtree.NullElement)
	if err != nil {
		bt.Deinit()
		return nil, err
	}
	st.BoxOffsets[icbIdx] = boxtree.BoxOffsets{
		ContentSize: unit.Size{W: w, H: h},
		BorderSize:  unit.Size{W: w, H: h},
	}
	bt.InitialContainingBlock = boxtree.BlockRef{Subtree: rootSubtreeID, Index: icbIdx}

	scID := g.sc.Open(bt.InitialContainingBlock, 0)
	st.StackingContext[icbIdx] = scID

	if !root.IsNull() {
		ic := newInlineCtx(g, rootSubtreeID, bt.InitialContainingBlock, w, h)
		if err := g.walkFlowElement(ic, root, true); err != nil {
			g.sc.Close()
			bt.Deinit()
			return nil, err
		}
		if _, err := ic.closeFinal(); err != nil {
			g.sc.Close()
			bt.Deinit()
			return nil, err
		}
	}

	if err := g.resolveAbsolutes(); err != nil {
		g.sc.Close()
		bt.Deinit()
		return nil, err
	}

	g.sc.Close()
	st.SetSkip(icbIdx, st.Len())

	if err := Cosmetic(tree, root, bt, g.images); err != nil {
		bt.Deinit()
		return nil, err
	}
	return bt, nil
}

// generateFlowChildren walks the children of container in document order
// as the flow content of one containing block (subtreeID/containingBlock),
// appending block boxes and driving the IFC builder for inline runs. It
// returns the accumulated auto height: the sum of the generated children's
// border-box heights plus their vertical margins, per the auto block-size
// resolution rule -- adjoining margins between consecutive block-level
// siblings collapse to their max rather than stack (inlineCtx.pendingMarginBottom).
func (g *Generator) generateFlowChildren(container elementtree.Element, subtreeID boxtree.SubtreeID, containingBlock boxtree.BlockRef, cbWidth, cbHeight unit.Unit) (unit.Unit, error) {
	ic := newInlineCtx(g, subtreeID, containingBlock, cbWidth, cbHeight)
	children, err := g.tree.Children(container)
	if err != nil {
		return 0, err
	}
	for _, c := range children {
		if err := g.walkFlowElement(ic, c, false); err != nil {
			return 0, err
		}
	}
	return ic.closeFinal()
}

// walkFlowElement dispatches a single flow-level element: block, inline,
// inline-block, absolute, or none (box generation's outer-display
// dispatch). Text content is appended directly into ic's open IFC.
func (g *Generator) walkFlowElement(ic *inlineCtx, el elementtree.Element, isRoot bool) error {
	cat, err := g.tree.Category(el)
	if err != nil {
		return err
	}
	if cat == elementtree.CategoryText {
		text, err := g.tree.Text(el)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		return ic.appendText(el, text)
	}

	cv, err := g.tree.CascadedValues(el)
	if err != nil {
		return err
	}
	computed := style.ComputeBoxStyle(cv.BoxStyle, isRoot)

	switch computed.Outer {
	case style.OuterNone:
		return nil

	case style.OuterBlock:
		return ic.handleBlockChild(el, computed)

	case style.OuterAbsolute:
		g.absolutes = append(g.absolutes, absoluteJob{element: el, cb: ic.containingBlock})
		return nil

	case style.OuterInline:
		if computed.Inner == style.InnerFlowRoot {
			return ic.emitInlineBlock(el)
		}
		return ic.emitInlineSpan(el)

	default:
		tracer().Errorf("layout: unreachable outer display %v", computed.Outer)
		return nil
	}
}

// blockOuterHeight is the vertical space el's border box plus vertical
// margins occupies in its parent's flow -- the quantity the auto-height
// resolution rule sums over children.
func blockOuterHeight(used sizing.Used) unit.Unit {
	return used.MarginTop.Add(used.BorderTop).Add(used.PaddingTop).
		Add(used.BlockSize).
		Add(used.PaddingBottom).Add(used.BorderBottom).Add(used.MarginBottom)
}

// generateBlock resolves sizing for el, appends (or reuses, when
// preReserved >= 0) its block into subtreeID, recurses into its children
// in flow mode, and writes back the resulting geometry. y is el's border
// box offset from subtreeID's running content-box origin, before its own
// margin-top is added. collapsedMarginTop, when non-nil, overrides the
// solved margin-top with a value the caller already collapsed against an
// adjoining sibling's margin-bottom.
func (g *Generator) generateBlock(el elementtree.Element, subtreeID boxtree.SubtreeID, cbWidth, cbHeight unit.Unit, hasCBHeight bool, computed style.ComputedBoxStyle, mode sizing.Mode, preReserved int32, y unit.Unit, collapsedMarginTop *unit.Unit) (sizing.Used, error) {
	cv, err := g.tree.CascadedValues(el)
	if err != nil {
		return sizing.Used{}, err
	}

	used := sizing.Solve(sizing.Inputs{
		ContentWidth:    cv.ContentWidth,
		HorizontalEdges: cv.HorizontalEdges,
		VerticalEdges:   cv.VerticalEdges,
		Insets:          cv.Insets,
		Position:        sizingPosition(computed.Position),
		CBWidth:         cbWidth,
		CBHeight:        cbHeight,
		HasCBHeight:     hasCBHeight,
		Mode:            mode,
	})
	sizing.AdjustWidthAndMargins(&used, cbWidth)
	if collapsedMarginTop != nil {
		used.MarginTop = *collapsedMarginTop
	}

	st := g.bt.Subtree(subtreeID)
	idx := preReserved
	if idx < 0 {
		var err error
		idx, err = st.AppendBlock(boxtree.Plain(), el)
		if err != nil {
			return sizing.Used{}, err
		}
	} else {
		st.Element[idx] = el
	}

	opensSC := computed.Position != style.PositionStatic && !computed.ZIndex.Auto
	var scID boxtree.StackingContextID = -1
	if opensSC {
		scID = g.sc.Open(boxtree.BlockRef{Subtree: subtreeID, Index: idx}, computed.ZIndex.Value)
	}

	contentWidth := used.InlineSize
	childrenAutoHeight, err := g.generateFlowChildren(el, subtreeID, boxtree.BlockRef{Subtree: subtreeID, Index: idx}, contentWidth, used.BlockSize)
	if err != nil {
		return sizing.Used{}, err
	}
	if used.BlockSizeIsAuto {
		sizing.ResolveAutoBlockSize(&used, childrenAutoHeight)
	}

	if opensSC {
		g.sc.Close()
	}

	st.Margins[idx] = unit.Edges{Top: used.MarginTop, Right: used.MarginRight, Bottom: used.MarginBottom, Left: used.MarginLeft}
	st.Borders[idx] = unit.Edges{Top: used.BorderTop, Right: used.BorderRight, Bottom: used.BorderBottom, Left: used.BorderLeft}
	st.Insets[idx] = unit.Edges{Top: used.InsetTop, Right: used.InsetRight, Bottom: used.InsetBottom, Left: used.InsetLeft}
	if opensSC {
		st.StackingContext[idx] = scID
	}

	borderW := used.BorderLeft.Add(used.PaddingLeft).Add(contentWidth).Add(used.PaddingRight).Add(used.BorderRight)
	borderH := used.BorderTop.Add(used.PaddingTop).Add(used.BlockSize).Add(used.PaddingBottom).Add(used.BorderBottom)
	borderX := used.MarginLeft
	borderY := y.Add(used.MarginTop)
	st.Offset[idx] = unit.Point{X: borderX, Y: borderY}
	st.BoxOffsets[idx] = boxtree.BoxOffsets{
		BorderPos:   unit.Point{X: borderX, Y: borderY},
		BorderSize:  unit.Size{W: borderW, H: borderH},
		ContentPos:  unit.Point{X: borderX.Add(used.BorderLeft).Add(used.PaddingLeft), Y: borderY.Add(used.BorderTop).Add(used.PaddingTop)},
		ContentSize: unit.Size{W: contentWidth, H: used.BlockSize},
	}
	st.SetSkip(idx, st.Len()-idx)

	g.bt.ElementToGeneratedBox[el] = boxtree.GeneratedBox{Kind: boxtree.GeneratedBlock, Block: boxtree.BlockRef{Subtree: subtreeID, Index: idx}}
	return used, nil
}

func sizingPosition(p style.Position) sizing.Position {
	switch p {
	case style.PositionRelative:
		return sizing.PositionRelative
	case style.PositionAbsolute, style.PositionFixed:
		return sizing.PositionAbsoluteOrFixed
	default:
		return sizing.PositionStatic
	}
}

// resolveAbsolutes lays out every recorded absolute/fixed box in
// shrink-to-fit mode against its recorded containing block's content box,
// appending each as an additional top-level child of that block's
// subtree. Appending at the owning subtree's tail, after every in-flow
// block has already had its skip fixed up, keeps every earlier skip value
// intact; the new block becomes an additional child of the subtree's root.
func (g *Generator) resolveAbsolutes() error {
	for _, job := range g.absolutes {
		st := g.bt.Subtree(job.cb.Subtree)
		cb := st.BoxOffsets[job.cb.Index]

		cv, err := g.tree.CascadedValues(job.element)
		if err != nil {
			return err
		}
		computed := style.ComputeBoxStyle(cv.BoxStyle, false)
		if computed.Outer == style.OuterNone {
			continue
		}
		if _, err := g.generateBlock(job.element, job.cb.Subtree, cb.ContentSize.W, cb.ContentSize.H, true, computed, sizing.ShrinkToFit, -1, 0, nil); err != nil {
			return err
		}
	}
	return nil
}

// fontHandleFor builds the Fonts.Get lookup key for an element from its
// cascaded Font aggregate, defaulting the size to defaultFontSize when
// unset.
func fontHandleFor(cv decls.Aggregates) fonts.Handle {
	size := cv.Font.Size.ResolveOr(0, defaultFontSize)
	return fonts.Handle{Family: cv.Font.Family, Size: size}
}
