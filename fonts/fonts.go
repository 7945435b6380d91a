/*
Package fonts defines the Fonts collaborator: font shaping and glyph
metrics are an external concern the layout engine only consumes through a
small handle-based interface, never reimplements. The interface mirrors
the shape font.ScalableFont/TypeCase play in tyse's core/font package,
reduced to the handful of facts box generation and the
IFC builder actually need: an opaque per-font identity plus the ascender
and positive descender used for line-box baselines.
*/
package fonts

import "github.com/zss-dev/zss/unit"

// Handle names a font face: a family name plus a size. It is the key the
// Fonts collaborator is queried with; callers construct it from cascaded
// font-family/font-size values, which stay out of this package's concern.
type Handle struct {
	Family string
	Size   unit.Unit
}

// IsEmpty reports whether h names no font at all.
func (h Handle) IsEmpty() bool { return h.Family == "" }

// Metrics is the subset of font metrics the IFC builder needs to place a
// line box: the ascender and the descender, the latter always stored as
// a positive quantity.
type Metrics struct {
	Ascender  unit.Unit
	Descender unit.Unit
}

// Face is the opaque font identity Fonts.Get returns. Shaping text with
// it is outside this package's concern; the IFC builder only needs
// Identity() to tag an IFC and Metrics() to compute its baseline.
type Face interface {
	Identity() string
	Metrics() Metrics
}

// Fonts resolves a Handle to a Face. Empty or otherwise invalid handles
// return zero metrics rather than an error, matching the contract box
// generation relies on when no font-family was ever cascaded.
type Fonts interface {
	Get(h Handle) (Face, error)
}

// zeroFace is returned for an empty or unresolvable handle.
type zeroFace struct{ name string }

func (z zeroFace) Identity() string  { return z.name }
func (z zeroFace) Metrics() Metrics { return Metrics{} }

// ZeroFace is the Face every Fonts implementation should fall back to for
// an empty handle.
var ZeroFace Face = zeroFace{name: ""}
