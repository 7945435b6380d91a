package boxtree

import "github.com/emirpasic/gods/trees/redblacktree"

// zOrderKey orders stacking-context siblings by z-index ascending, ties
// broken by document order -- the same composite-key shape
// gods/trees/redblacktree is built for.
type zOrderKey struct {
	zIndex   int32
	docOrder int
}

func compareZOrderKeys(a, b interface{}) int {
	ka, kb := a.(zOrderKey), b.(zOrderKey)
	switch {
	case ka.zIndex != kb.zIndex:
		if ka.zIndex < kb.zIndex {
			return -1
		}
		return 1
	case ka.docOrder != kb.docOrder:
		if ka.docOrder < kb.docOrder {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// StackingContextEntry is one node of the stacking-context tree: a
// painting-order unit owned by the block at BlockRef, plus the IFC ids it
// directly contains (used to drive IFC painting without a separate
// lookup).
type StackingContextEntry struct {
	Skip    int32
	ID      StackingContextID
	ZIndex  int32
	Block   BlockRef
	IFCs    []IFCID
}

// StackingContextTree (the SCT) is the skip-encoded, z-index-ordered tree
// of stacking contexts: entries are stored so a depth-first traversal can visit
// descendants without an explicit stack, and children of any one entry
// are kept contiguous and sorted by z-index ascending, ties resolved by
// document order.
type StackingContextTree struct {
	Entries []StackingContextEntry
	nextID  StackingContextID
}

// Builder accumulates stacking-context entries as box generation opens
// and closes them; the tree is populated bottom-up as frames pop,
// mirroring the skip fix-up subtrees already use. Each still-open
// context only needs to remember where in tree.Entries it started --
// sortDirectChildren recovers the rest by scanning the entries
// themselves once a context closes.
type Builder struct {
	tree *StackingContextTree
	open []int // index into tree.Entries where each open context started
}

// NewBuilder returns a Builder over tree.
func NewBuilder(tree *StackingContextTree) *Builder {
	return &Builder{tree: tree}
}

// Open registers a new stacking context owned by owner with the given
// z-index, and returns its id. Must be matched by a later Close.
func (b *Builder) Open(owner BlockRef, zIndex int32) StackingContextID {
	id := b.tree.nextID
	b.tree.nextID++
	idx := len(b.tree.Entries)
	b.tree.Entries = append(b.tree.Entries, StackingContextEntry{Skip: 1, ID: id, ZIndex: zIndex, Block: owner})
	b.open = append(b.open, idx)
	return id
}

// AddIFC registers ifc as contained by the currently-open stacking
// context.
func (b *Builder) AddIFC(ifc IFCID) {
	if len(b.open) == 0 {
		return
	}
	top := b.open[len(b.open)-1]
	b.tree.Entries[top].IFCs = append(b.tree.Entries[top].IFCs, ifc)
}

// Close finalizes the currently-open stacking context: its skip is fixed
// up to cover every entry appended since the matching Open, and its
// direct children (if any) are reordered by z-index.
func (b *Builder) Close() {
	n := len(b.open)
	start := b.open[n-1]
	b.open = b.open[:n-1]

	end := len(b.tree.Entries)
	b.tree.Entries[start].Skip = int32(end - start)

	b.sortDirectChildren(start, end)
}

// sortDirectChildren reorders the direct children of the entry at
// parentStart (which spans [parentStart, parentEnd)) by z-index ascending,
// ties broken by document order, without disturbing the contiguity of any
// child's own descendant span.
func (b *Builder) sortDirectChildren(parentStart, parentEnd int) {
	entries := b.tree.Entries
	childStart := parentStart + 1
	if childStart >= parentEnd {
		return
	}

	ordered := redblacktree.NewWith(compareZOrderKeys)
	doc := 0
	for i := childStart; i < parentEnd; {
		skip := int(entries[i].Skip)
		span := append([]StackingContextEntry(nil), entries[i:i+skip]...)
		ordered.Put(zOrderKey{zIndex: entries[i].ZIndex, docOrder: doc}, span)
		doc++
		i += skip
	}

	out := entries[:childStart]
	it := ordered.Iterator()
	for it.Next() {
		out = append(out, it.Value().([]StackingContextEntry)...)
	}
	b.tree.Entries = out
}

// Children returns the index range [firstChild, afterSubtree) of the
// entry at i, following the same (i+1, skip[i]) contract as Subtree.
func (t *StackingContextTree) Children(i int) (firstChild, afterSubtree int) {
	return i + 1, i + int(t.Entries[i].Skip)
}

// WellFormed checks that sibling z-index runs are non-decreasing at every
// level -- the stacking-order testable property.
func (t *StackingContextTree) WellFormed() bool {
	return wellFormedRange(t, 0, len(t.Entries))
}

func wellFormedRange(t *StackingContextTree, start, end int) bool {
	last := int32(-1 << 31)
	for i := start; i < end; {
		e := t.Entries[i]
		if e.ZIndex < last {
			return false
		}
		last = e.ZIndex
		childEnd := i + int(e.Skip)
		if !wellFormedRange(t, i+1, childEnd) {
			return false
		}
		i = childEnd
	}
	return true
}
