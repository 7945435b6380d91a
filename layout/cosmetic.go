package layout

import (
	"github.com/zss-dev/zss/boxtree"
	"github.com/zss-dev/zss/decls"
	"github.com/zss-dev/zss/elementtree"
	"github.com/zss-dev/zss/images"
)

// Cosmetic fills in the colors and background-image layers of an
// already-generated box tree: the pass that runs after geometry has
// settled and never revisits it, so a later repaint (e.g. a hover-state
// color change) need not re-run box generation at all. It walks the
// element tree in document order (as cascade.Run does), looking up each
// visited element's generated box rather than ranging
// bt.ElementToGeneratedBox directly -- a Go map has no defined iteration
// order, and background-image layer interning is order-sensitive (see
// BackgroundImageStore.Intern), so two runs over identical input must
// visit elements in the same order to assign the same handles.
func Cosmetic(tree *elementtree.Tree, root elementtree.Element, bt *boxtree.BoxTree, imagesC images.Images) error {
	return tree.Walk(root, func(el elementtree.Element) error {
		gen, ok := bt.ElementToGeneratedBox[el]
		if !ok {
			return nil
		}

		cv, err := tree.CascadedValues(el)
		if err != nil {
			return err
		}

		imagesID, err := internBackgroundLayers(bt, imagesC, cv.Background)
		if err != nil {
			return err
		}

		switch gen.Kind {
		case boxtree.GeneratedBlock:
			st := bt.Subtree(gen.Block.Subtree)
			idx := gen.Block.Index
			st.BorderColors[idx] = boxtree.BorderColors(cv.Colors.BorderColors)
			st.Background[idx] = boxtree.Background{Color: cv.Background.Color, Images: imagesID}

		case boxtree.GeneratedInlineBox:
			ifc := bt.IFCByID(gen.IFC)
			ib := &ifc.InlineBoxes[gen.InlineBox]
			ib.Background = boxtree.Background{Color: cv.Background.Color, Images: imagesID}
			ib.InlineStart.BorderColor = cv.Colors.BorderColors[3]
			ib.InlineEnd.BorderColor = cv.Colors.BorderColors[1]
			ib.BlockStart.BorderColor = cv.Colors.BorderColors[0]
			ib.BlockEnd.BorderColor = cv.Colors.BorderColors[2]

		case boxtree.GeneratedText:
			// Text runs carry no box of their own to color; their
			// foreground color is read off the IFC's FontColor, set when
			// the run was shaped.
		}
		return nil
	})
}

// internBackgroundLayers resolves and interns a cascaded Background
// aggregate's image layers, validating each source through imagesC when
// present. An empty layer list interns as boxtree.NoBackgroundImages
// without allocating.
func internBackgroundLayers(bt *boxtree.BoxTree, imagesC images.Images, bg decls.Background) (boxtree.BackgroundImagesID, error) {
	if len(bg.Images) == 0 {
		return boxtree.NoBackgroundImages, nil
	}
	layers := make([]boxtree.BackgroundImageLayer, 0, len(bg.Images))
	for i, source := range bg.Images {
		if imagesC != nil {
			if _, err := imagesC.Get(images.Handle{Source: source}); err != nil {
				return boxtree.NoBackgroundImages, err
			}
		}
		layers = append(layers, boxtree.BackgroundImageLayer{
			Source:   source,
			Repeat:   layerAt(bg.Repeat, i, "repeat"),
			Position: layerAt(bg.Position, i, "0% 0%"),
			Clip:     layerAt(bg.Clip, i, "border-box"),
			Origin:   layerAt(bg.Origin, i, "padding-box"),
			Size:     layerAt(bg.Size, i, "auto"),
		})
	}
	return bt.BackgroundImages.Intern(layers), nil
}

// layerAt returns layers[i] if present, the layer's own last entry if i is
// past a shorter list (CSS's background-layer shorthand repetition rule),
// or fallback if the list is empty altogether.
func layerAt(layers []string, i int, fallback string) string {
	if len(layers) == 0 {
		return fallback
	}
	if i < len(layers) {
		return layers[i]
	}
	return layers[len(layers)-1]
}
