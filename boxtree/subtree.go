package boxtree

import (
	"github.com/zss-dev/zss/elementtree"
	"github.com/zss-dev/zss/unit"
)

// Subtree is a contiguous, skip-encoded list of blocks rooted at index 0.
// Per-block fields are stored in parallel slices rather than a
// slice-of-structs so that a traversal touching only hot fields (skip,
// type) does not drag cold ones (border colors, background) through cache.
type Subtree struct {
	id     SubtreeID
	parent BlockRef // NullBlockRef for the root subtree

	Skip            []int32
	Type            []BlockType
	StackingContext []StackingContextID // -1 when the block has none
	Offset          []unit.Point
	BoxOffsets      []BoxOffsets
	Borders         []unit.Edges
	Margins         []unit.Edges
	Insets          []unit.Edges
	BorderColors    []BorderColors
	Background      []Background
	Element         []elementtree.Element // elementtree.NullElement when anonymous
}

// ID returns the subtree's own id.
func (s *Subtree) ID() SubtreeID { return s.id }

// Parent returns the subtree-proxy block ref that attaches s to its
// parent subtree, or NullBlockRef if s is the root subtree.
func (s *Subtree) Parent() BlockRef { return s.parent }

// Len is the number of blocks currently stored.
func (s *Subtree) Len() int32 { return int32(len(s.Skip)) }

// AppendBlock appends a new block with the given type and owning element
// (elementtree.NullElement for an anonymous box) and returns its index.
// Skip defaults to 1 (a leaf); callers fix it up on pop once descendants
// are known.
func (s *Subtree) AppendBlock(typ BlockType, owner elementtree.Element) (int32, error) {
	if len(s.Skip) >= maxIndex16 {
		tracer().Errorf("boxtree: subtree %d block count limit exceeded", s.id)
		return 0, ErrSizeLimitExceeded
	}
	idx := int32(len(s.Skip))
	s.Skip = append(s.Skip, 1)
	s.Type = append(s.Type, typ)
	s.StackingContext = append(s.StackingContext, -1)
	s.Offset = append(s.Offset, unit.Point{})
	s.BoxOffsets = append(s.BoxOffsets, BoxOffsets{})
	s.Borders = append(s.Borders, unit.Edges{})
	s.Margins = append(s.Margins, unit.Edges{})
	s.Insets = append(s.Insets, unit.Edges{})
	s.BorderColors = append(s.BorderColors, BorderColors{})
	s.Background = append(s.Background, Background{Images: NoBackgroundImages})
	s.Element = append(s.Element, owner)
	return idx, nil
}

// SetSkip fixes up index i's skip once its subtree span is known.
func (s *Subtree) SetSkip(i int32, skip int32) { s.Skip[i] = skip }

// Children returns the index of i's first child and i+skip[i], so a caller
// can walk children via the `(i+1, skip[i])` contract: the next sibling of
// i (or i's parent's next) starts at i+skip[i].
func (s *Subtree) Children(i int32) (firstChild, afterSubtree int32) {
	return i + 1, i + s.Skip[i]
}

// Walk visits every block of s in pre-order: walking children via
// (i+1, skip[i]) yields a correct pre-order, which a flat forward scan
// over the slice already honors by construction, since blocks are
// appended in generation order.
func (s *Subtree) Walk(visit func(index int32)) {
	for i := int32(0); i < s.Len(); i++ {
		visit(i)
	}
}

// WellFormed checks the tree well-formedness property: the root's skip
// covers the whole subtree, and no block's span runs past the end of the
// subtree. Intended for tests and debug assertions, not the hot path.
func (s *Subtree) WellFormed() bool {
	n := s.Len()
	if n == 0 {
		return true
	}
	if s.Skip[0] != n {
		return false
	}
	for i := int32(0); i < n; i++ {
		if i+s.Skip[i] > n {
			return false
		}
	}
	return true
}
