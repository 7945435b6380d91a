package zss

import (
	"github.com/zss-dev/zss/elementtree"
	"github.com/zss-dev/zss/fonts"
	"github.com/zss-dev/zss/images"
)

// Environment bundles the read-only inputs Run borrows for the duration of
// one run: an element tree already carrying cascaded values (document
// loading and cascading are both out of scope for this package), plus the
// font and image registries box generation and the cosmetic pass consult.
// Run never mutates any of it.
type Environment struct {
	Tree   *elementtree.Tree
	Root   elementtree.Element
	Fonts  fonts.Fonts
	Images images.Images
}
