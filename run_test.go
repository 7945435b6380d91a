package zss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zss-dev/zss/elementtree"
	"github.com/zss-dev/zss/unit"
)

func TestRunProducesBoxTreeForSimpleDocument(t *testing.T) {
	tr := elementtree.NewTree()
	es, err := tr.AllocateElements(1)
	require.NoError(t, err)
	root := es[0]
	require.NoError(t, tr.InitElement(root, elementtree.CategoryElement,
		elementtree.QualifiedType{Namespace: elementtree.NamespaceNone, Name: tr.Intern("html")},
		elementtree.Orphan()))

	env := &Environment{Tree: tr, Root: root}
	bt, err := Run(env, 400, 200)
	require.NoError(t, err)
	defer bt.Deinit()

	assert.Equal(t, unit.Size{W: unit.PerPixel * 400, H: unit.PerPixel * 200}, bt.Subtree(bt.InitialContainingBlock.Subtree).BoxOffsets[bt.InitialContainingBlock.Index].ContentSize)
}

func TestRunRejectsViewportTooLarge(t *testing.T) {
	tr := elementtree.NewTree()
	env := &Environment{Tree: tr, Root: elementtree.NullElement}
	_, err := Run(env, 1<<30, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, ViewportTooLarge)
}
