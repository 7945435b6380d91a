/*
Package images defines the Images collaborator: raster decoding lives
entirely outside the layout engine (out of scope per the top-level
design), which only ever needs a background image's pixel dimensions and
a reference it can hand to a painter later. Get never decodes pixels, only
the header.
*/
package images

import "github.com/zss-dev/zss/unit"

// Handle names a raster image resource -- typically a resolved
// background-image URL. What it points to (filesystem path, embedded
// asset, network resource) is a decision for the Images implementation,
// not this package.
type Handle struct {
	Source string
}

// IsEmpty reports whether h names no image at all.
func (h Handle) IsEmpty() bool { return h.Source == "" }

// Info is what the cosmetic pass needs from a background image: its
// intrinsic pixel dimensions (already converted to Units) and an opaque
// storage reference a later painting stage can resolve back to pixels.
type Info struct {
	Size    unit.Size
	Storage string
}

// Images resolves a Handle to Info. An empty or unresolvable handle
// returns a zero Info rather than an error, matching the contract Fonts
// uses for an empty handle.
type Images interface {
	Get(h Handle) (Info, error)
}
