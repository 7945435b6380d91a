package elementtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAlloc(t *testing.T, tr *Tree, n int) []Element {
	t.Helper()
	es, err := tr.AllocateElements(n)
	require.NoError(t, err)
	return es
}

func TestAllocateInitAndWalkOrder(t *testing.T) {
	tr := NewTree()
	es := mustAlloc(t, tr, 4)
	root, a, b, c := es[0], es[1], es[2], es[3]

	require.NoError(t, tr.InitElement(root, CategoryElement, QualifiedType{NamespaceNone, tr.Intern("root")}, Orphan()))
	require.NoError(t, tr.InitElement(a, CategoryElement, QualifiedType{NamespaceNone, tr.Intern("a")}, LastChildOf(root)))
	require.NoError(t, tr.InitElement(b, CategoryElement, QualifiedType{NamespaceNone, tr.Intern("b")}, LastChildOf(root)))
	require.NoError(t, tr.InitElement(c, CategoryElement, QualifiedType{NamespaceNone, tr.Intern("c")}, FirstChildOf(root)))

	children, err := tr.Children(root)
	require.NoError(t, err)
	assert.Equal(t, []Element{c, a, b}, children)

	var order []Element
	require.NoError(t, tr.Walk(root, func(e Element) error {
		order = append(order, e)
		return nil
	}))
	assert.Equal(t, []Element{root, c, a, b}, order)

	require.NoError(t, tr.invariantCheck(root))
}

func TestTextCannotHaveChildren(t *testing.T) {
	tr := NewTree()
	es := mustAlloc(t, tr, 2)
	text, child := es[0], es[1]
	require.NoError(t, tr.InitElement(text, CategoryText, QualifiedType{}, Orphan()))
	err := tr.InitElement(child, CategoryElement, QualifiedType{}, LastChildOf(text))
	assert.ErrorIs(t, err, ErrTextCannotHaveChildren)
}

func TestDestroyBumpsGenerationAndRecyclesSlot(t *testing.T) {
	tr := NewTree()
	es := mustAlloc(t, tr, 1)
	e := es[0]
	require.NoError(t, tr.InitElement(e, CategoryElement, QualifiedType{}, Orphan()))
	require.NoError(t, tr.DestroyElement(e))

	_, err := tr.Category(e)
	assert.ErrorIs(t, err, ErrStaleHandle)

	es2 := mustAlloc(t, tr, 1)
	assert.Equal(t, e.index, es2[0].index)
	assert.NotEqual(t, e.generation, es2[0].generation)
}

func TestDestroyUnlinksFromSiblings(t *testing.T) {
	tr := NewTree()
	es := mustAlloc(t, tr, 3)
	root, a, b := es[0], es[1], es[2]
	require.NoError(t, tr.InitElement(root, CategoryElement, QualifiedType{}, Orphan()))
	require.NoError(t, tr.InitElement(a, CategoryElement, QualifiedType{}, LastChildOf(root)))
	require.NoError(t, tr.InitElement(b, CategoryElement, QualifiedType{}, LastChildOf(root)))

	require.NoError(t, tr.DestroyElement(a))

	children, err := tr.Children(root)
	require.NoError(t, err)
	assert.Equal(t, []Element{b}, children)
	require.NoError(t, tr.invariantCheck(root))
}

func TestInternIsStable(t *testing.T) {
	tr := NewTree()
	id1 := tr.Intern("div")
	id2 := tr.Intern("span")
	id3 := tr.Intern("div")
	assert.Equal(t, id1, id3)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, "div", tr.NameOf(id1))
}

func TestNullElementIsZeroValue(t *testing.T) {
	var e Element
	assert.True(t, e.IsNull())
	assert.Equal(t, NullElement, e)
}
