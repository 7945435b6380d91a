/*
Package boxtree implements the box tree: the geometric output of layout.
It is a forest of Subtrees bridged by subtree-proxy blocks, an ordered list
of Inline Formatting Contexts, a skip-encoded stacking-context tree, and
the element→generated-box map that lets later passes (the cosmetic pass,
painting) find the box a given element produced.

Every cross-structure reference here is a typed integer, never a pointer,
the same discipline elementtree.Element already follows one layer down.
Where tyse keeps a pointer-based box tree (engine/frame's Box/Container
types linked by *Box fields), this package instead lays
blocks out as a struct-of-arrays per subtree, addressed by a plain int32
index -- an arena/index-ownership design that keeps a destroyed-and-reused
slot from being mistaken for a stale pointer.
*/
package boxtree

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/zss-dev/zss/elementtree"
	"github.com/zss-dev/zss/unit"
)

func tracer() tracing.Trace { return gtrace.EngineTracer }

// maxIndex16 is the 2^16 ceiling on blocks per subtree, subtrees, IFCs,
// and inline boxes per IFC.
const maxIndex16 = 1 << 16

// ErrSizeLimitExceeded is returned when an append would exceed the 2^16
// ceiling on blocks/subtrees/IFCs/inline-boxes.
var ErrSizeLimitExceeded = errors.New("boxtree: size limit exceeded")

// SubtreeID identifies one Subtree within a BoxTree.
type SubtreeID int32

// IFCID identifies one Inline Formatting Context within a BoxTree.
type IFCID int32

// StackingContextID identifies one entry in the stacking-context tree.
type StackingContextID int32

// BlockRef addresses one block: an index into a specific Subtree.
type BlockRef struct {
	Subtree SubtreeID
	Index   int32
}

// NullBlockRef is the sentinel ref (both fields -1), used where "no block"
// is a valid state (e.g. a Subtree with no parent proxy). It is not the
// zero value: BlockRef{} addresses block 0 of subtree 0.
var NullBlockRef = BlockRef{Subtree: -1, Index: -1}

// IsNull reports whether r is NullBlockRef.
func (r BlockRef) IsNull() bool { return r.Subtree < 0 || r.Index < 0 }

// BlockTypeKind discriminates BlockType's variants.
type BlockTypeKind uint8

const (
	// BlockKindPlain is a normal block box.
	BlockKindPlain BlockTypeKind = iota
	// BlockKindIFCContainer is a block whose content is an IFC.
	BlockKindIFCContainer
	// BlockKindSubtreeProxy is a leaf that attaches another subtree.
	BlockKindSubtreeProxy
)

// BlockType is the tagged variant over a block's three possible shapes: a
// plain block, a block whose content is an IFC, or a leaf that attaches
// another subtree.
type BlockType struct {
	Kind    BlockTypeKind
	IFC     IFCID     // valid when Kind == BlockKindIFCContainer
	Subtree SubtreeID // valid when Kind == BlockKindSubtreeProxy
}

// Plain constructs a BlockType for an ordinary block box.
func Plain() BlockType { return BlockType{Kind: BlockKindPlain} }

// IFCContainer constructs a BlockType for a block whose content is ifc.
func IFCContainer(ifc IFCID) BlockType { return BlockType{Kind: BlockKindIFCContainer, IFC: ifc} }

// SubtreeProxy constructs a BlockType that attaches subtree as this
// block's only logical child.
func SubtreeProxy(subtree SubtreeID) BlockType {
	return BlockType{Kind: BlockKindSubtreeProxy, Subtree: subtree}
}

// BoxOffsets holds the four geometric rectangles a block carries:
// border_pos/border_size describe the border box, content_pos/
// content_size the content box. Positions are relative to the parent's
// content-box origin; for the initial containing block, relative to the
// viewport origin.
type BoxOffsets struct {
	BorderPos   unit.Point
	BorderSize  unit.Size
	ContentPos  unit.Point
	ContentSize unit.Size
}

// BorderColors holds the four physical edge colors, top/right/bottom/left.
type BorderColors [4]string

// Background is the subset of cosmetic state a plain block or inline box
// carries: a background color plus an interned handle into the box tree's
// background_images store for the image layer list.
type Background struct {
	Color  string
	Images BackgroundImagesID
}

// BackgroundImagesID is a handle into BoxTree.BackgroundImages.
type BackgroundImagesID int32

// NoBackgroundImages is the handle for "no background-image declared".
const NoBackgroundImages BackgroundImagesID = -1

// BackgroundImageLayer is one resolved background-image layer, carrying
// everything the cosmetic pass needs besides raw pixels (which stay behind
// the Images collaborator).
type BackgroundImageLayer struct {
	Source   string
	Repeat   string
	Position string
	Clip     string
	Origin   string
	Size     string
}

// BackgroundImageStore is the append-only, handle-indexed storage of
// background-image layer lists.
type BackgroundImageStore struct {
	layers [][]BackgroundImageLayer
}

// Intern stores layers and returns a handle; an empty slice interns as
// NoBackgroundImages without allocating a new slot.
func (s *BackgroundImageStore) Intern(layers []BackgroundImageLayer) BackgroundImagesID {
	if len(layers) == 0 {
		return NoBackgroundImages
	}
	s.layers = append(s.layers, layers)
	return BackgroundImagesID(len(s.layers) - 1)
}

// Get returns the layers for handle, or nil if handle is
// NoBackgroundImages or out of range.
func (s *BackgroundImageStore) Get(handle BackgroundImagesID) []BackgroundImageLayer {
	if handle < 0 || int(handle) >= len(s.layers) {
		return nil
	}
	return s.layers[handle]
}

// GeneratedBoxKind discriminates GeneratedBox's variants.
type GeneratedBoxKind uint8

const (
	GeneratedBlock GeneratedBoxKind = iota
	GeneratedInlineBox
	GeneratedText
)

// GeneratedBox is the value the element_to_generated_box map stores per
// element: a block ref, an (ifc, inline-box index) pair, or a bare ifc
// reference for a text run.
type GeneratedBox struct {
	Kind       GeneratedBoxKind
	Block      BlockRef // valid when Kind == GeneratedBlock
	IFC        IFCID    // valid when Kind == GeneratedInlineBox || GeneratedText
	InlineBox  int32    // valid when Kind == GeneratedInlineBox
}

// BoxTree is the top-level output of layout.
type BoxTree struct {
	Subtrees               []*Subtree
	InitialContainingBlock BlockRef
	IFCs                   []*IFC
	SCT                    StackingContextTree
	ElementToGeneratedBox  map[elementtree.Element]GeneratedBox
	BackgroundImages       BackgroundImageStore
}

// NewBoxTree returns an empty BoxTree ready for box generation to populate.
func NewBoxTree() *BoxTree {
	return &BoxTree{
		ElementToGeneratedBox: make(map[elementtree.Element]GeneratedBox),
	}
}

// NewSubtree allocates a fresh, empty Subtree, appends it to bt.Subtrees
// and returns its id. It fails if doing so would exceed the 2^16 subtree
// ceiling.
func (bt *BoxTree) NewSubtree(parent BlockRef) (SubtreeID, error) {
	if len(bt.Subtrees) >= maxIndex16 {
		tracer().Errorf("boxtree: subtree count limit exceeded")
		return 0, ErrSizeLimitExceeded
	}
	id := SubtreeID(len(bt.Subtrees))
	bt.Subtrees = append(bt.Subtrees, &Subtree{id: id, parent: parent})
	return id, nil
}

// Subtree looks up a subtree by id. Panics on an out-of-range id: a
// programmer error, not a handled failure.
func (bt *BoxTree) Subtree(id SubtreeID) *Subtree {
	return bt.Subtrees[id]
}

// NewIFC allocates a fresh, empty IFC and returns its id. It fails if
// doing so would exceed the 2^16 IFC ceiling.
func (bt *BoxTree) NewIFC() (IFCID, error) {
	if len(bt.IFCs) >= maxIndex16 {
		tracer().Errorf("boxtree: ifc count limit exceeded")
		return 0, ErrSizeLimitExceeded
	}
	id := IFCID(len(bt.IFCs))
	bt.IFCs = append(bt.IFCs, &IFC{id: id})
	return id, nil
}

// IFCByID looks up an inline formatting context by id.
func (bt *BoxTree) IFCByID(id IFCID) *IFC {
	return bt.IFCs[id]
}

// Deinit releases every subtree, IFC, and the stacking-context tree, in
// reverse allocation order. Since Go's garbage collector reclaims the
// backing slices once bt is unreferenced, this is primarily about giving
// callers a single, documented point to drop the whole tree rather than an
// allocator-level free.
func (bt *BoxTree) Deinit() {
	for i := len(bt.IFCs) - 1; i >= 0; i-- {
		bt.IFCs[i] = nil
	}
	for i := len(bt.Subtrees) - 1; i >= 0; i-- {
		bt.Subtrees[i] = nil
	}
	bt.IFCs = nil
	bt.Subtrees = nil
	bt.SCT = StackingContextTree{}
	bt.ElementToGeneratedBox = nil
}
