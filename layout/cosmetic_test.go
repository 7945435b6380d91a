package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zss-dev/zss/boxtree"
	"github.com/zss-dev/zss/elementtree"
	"github.com/zss-dev/zss/value"
)

func TestCosmeticFillsBlockColorsAndBackground(t *testing.T) {
	tr := elementtree.NewTree()
	root := newElement(t, tr, "div", elementtree.NullElement)
	cv, err := tr.CascadedValues(root)
	require.NoError(t, err)
	cv.ContentWidth.Width = value.Length(px(t, 50))
	cv.Colors.BorderColors = [4]string{"red", "green", "blue", "black"}
	cv.Background.Color = "white"
	cv.Background.Images = []string{"bg.png"}

	bt, err := Generate(tr, root, 800, 600, nil, nil)
	require.NoError(t, err)
	defer bt.Deinit()

	st := bt.Subtree(bt.InitialContainingBlock.Subtree)
	ref := bt.ElementToGeneratedBox[root].Block
	assert.Equal(t, boxtree.BorderColors{"red", "green", "blue", "black"}, st.BorderColors[ref.Index])
	assert.Equal(t, "white", st.Background[ref.Index].Color)

	layers := bt.BackgroundImages.Get(st.Background[ref.Index].Images)
	require.Len(t, layers, 1)
	assert.Equal(t, "bg.png", layers[0].Source)
	assert.Equal(t, "0% 0%", layers[0].Position)
}

func TestCosmeticNoBackgroundImagesWhenNoneDeclared(t *testing.T) {
	tr := elementtree.NewTree()
	root := newElement(t, tr, "div", elementtree.NullElement)
	cv, err := tr.CascadedValues(root)
	require.NoError(t, err)
	cv.ContentWidth.Width = value.Length(px(t, 50))

	bt, err := Generate(tr, root, 800, 600, nil, nil)
	require.NoError(t, err)
	defer bt.Deinit()

	st := bt.Subtree(bt.InitialContainingBlock.Subtree)
	ref := bt.ElementToGeneratedBox[root].Block
	assert.Equal(t, boxtree.NoBackgroundImages, st.Background[ref.Index].Images)
}
