package boxtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zss-dev/zss/elementtree"
)

func TestNewSubtreeAndAppendBlock(t *testing.T) {
	bt := NewBoxTree()
	id, err := bt.NewSubtree(NullBlockRef)
	require.NoError(t, err)

	st := bt.Subtree(id)
	root, err := st.AppendBlock(Plain(), elementtree.NullElement)
	require.NoError(t, err)
	child, err := st.AppendBlock(Plain(), elementtree.NullElement)
	require.NoError(t, err)
	st.SetSkip(root, 2)
	st.SetSkip(child, 1)

	assert.True(t, st.WellFormed())
	first, after := st.Children(root)
	assert.Equal(t, int32(1), first)
	assert.Equal(t, int32(2), after)
}

func TestWellFormedRejectsOverrunningSkip(t *testing.T) {
	bt := NewBoxTree()
	id, _ := bt.NewSubtree(NullBlockRef)
	st := bt.Subtree(id)
	_, _ = st.AppendBlock(Plain(), elementtree.NullElement)
	st.SetSkip(0, 5)
	assert.False(t, st.WellFormed())
}

func TestSpecialZeroDetection(t *testing.T) {
	var s Special
	assert.True(t, s.IsZero())
	s = Special{Kind: SpecialLineBreak}
	assert.False(t, s.IsZero())
}

func TestIFCAppendGlyphEscapesReservedZero(t *testing.T) {
	bt := NewBoxTree()
	ifcID, err := bt.NewIFC()
	require.NoError(t, err)
	ifc := bt.IFCByID(ifcID)

	ifc.AppendGlyph(42, GlyphMetrics{})
	ifc.AppendGlyph(0, GlyphMetrics{})

	require.Len(t, ifc.GlyphIndex, 2)
	assert.Equal(t, uint16(42), ifc.GlyphIndex[0])
	sp, ok := ifc.SpecialAt(0)
	assert.False(t, ok)
	_ = sp

	sp, ok = ifc.SpecialAt(1)
	require.True(t, ok)
	assert.Equal(t, SpecialZeroGlyphIndex, sp.Kind)
	assert.False(t, sp.IsZero())
}

func TestIFCInlineBoxOpenClose(t *testing.T) {
	bt := NewBoxTree()
	ifcID, _ := bt.NewIFC()
	ifc := bt.IFCByID(ifcID)

	i, err := ifc.OpenInlineBox()
	require.NoError(t, err)
	ifc.AppendGlyph('A', GlyphMetrics{})
	ifc.CloseInlineBox(i)

	assert.Equal(t, int32(0), i)
	assert.Equal(t, int32(1), ifc.InlineBoxes[0].Skip)

	startSp, ok := ifc.SpecialAt(0)
	require.True(t, ok)
	assert.Equal(t, SpecialBoxStart, startSp.Kind)
	assert.Equal(t, int32(0), startSp.Data)

	endSp, ok := ifc.SpecialAt(2)
	require.True(t, ok)
	assert.Equal(t, SpecialBoxEnd, endSp.Kind)
}

func TestIFCOpenInlineBoxRejectsPastMaxIndex16(t *testing.T) {
	bt := NewBoxTree()
	ifcID, _ := bt.NewIFC()
	ifc := bt.IFCByID(ifcID)
	ifc.InlineBoxes = make([]InlineBox, maxIndex16)

	_, err := ifc.OpenInlineBox()
	assert.ErrorIs(t, err, ErrSizeLimitExceeded)
}

func TestStackingContextTreeOrdersSiblingsByZIndex(t *testing.T) {
	tree := &StackingContextTree{}
	b := NewBuilder(tree)

	root := b.Open(BlockRef{Subtree: 0, Index: 0}, 0)
	_ = b.Open(BlockRef{Subtree: 0, Index: 1}, 2)
	b.Close()
	_ = b.Open(BlockRef{Subtree: 0, Index: 2}, -1)
	b.Close()
	_ = b.Open(BlockRef{Subtree: 0, Index: 3}, 0)
	b.Close()
	b.Close()

	require.Equal(t, root, tree.Entries[0].ID)
	first, after := tree.Children(0)
	var zOrder []int32
	for i := first; i < after; {
		zOrder = append(zOrder, tree.Entries[i].ZIndex)
		i += int(tree.Entries[i].Skip)
	}
	assert.Equal(t, []int32{-1, 0, 2}, zOrder)
	assert.True(t, tree.WellFormed())
}

func TestBackgroundImageStoreInternRoundTrips(t *testing.T) {
	var store BackgroundImageStore
	h := store.Intern([]BackgroundImageLayer{{Source: "a.png"}, {Source: "b.png"}})
	assert.NotEqual(t, NoBackgroundImages, h)
	got := store.Get(h)
	require.Len(t, got, 2)
	assert.Equal(t, "a.png", got[0].Source)

	assert.Equal(t, NoBackgroundImages, store.Intern(nil))
}

func TestGeneratedBoxRoundTripsViaElementMap(t *testing.T) {
	bt := NewBoxTree()
	tr := elementtree.NewTree()
	es, err := tr.AllocateElements(1)
	require.NoError(t, err)
	require.NoError(t, tr.InitElement(es[0], elementtree.CategoryElement,
		elementtree.QualifiedType{Namespace: elementtree.NamespaceNone, Name: tr.Intern("div")},
		elementtree.Orphan()))

	ref := BlockRef{Subtree: 0, Index: 3}
	bt.ElementToGeneratedBox[es[0]] = GeneratedBox{Kind: GeneratedBlock, Block: ref}

	got := bt.ElementToGeneratedBox[es[0]]
	assert.Equal(t, ref, got.Block)
}
