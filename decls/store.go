/*
Package decls implements the append-only declarations store: parsed CSS
declaration blocks, grouped into the aggregates the sizing solver and style
computer actually consume (box-style, content-width, horizontal-edges,
vertical-edges, insets, background, colors), each tracked separately for
`!important` and normal declarations.

This package never tokenizes CSS text itself -- it receives already-parsed
declarations. The shape of "an already-parsed declaration" is borrowed from
github.com/aymerick/douceur/css rather than invented from scratch: a
douceur.Declaration is a (Property, Value, Important) triple, which is
exactly what a cascade-ready declaration needs to be.
*/
package decls

import (
	"github.com/aymerick/douceur/css"

	"github.com/zss-dev/zss/value"
)

// Importance discriminates `!important` from normal declarations.
type Importance uint8

const (
	Normal Importance = iota
	Important
)

// Group names one of the aggregate groups a block's declarations are
// organized into. Grouping by aggregate (rather than by raw property name)
// is what lets the sizing solver pull "all of content-width" out of a block
// in one call instead of six.
type Group uint8

const (
	GroupBoxStyle Group = iota
	GroupContentWidth
	GroupHorizontalEdges
	GroupVerticalEdges
	GroupInsets
	GroupBackground
	GroupColors
	GroupFont
	numGroups
)

// BlockID is an opaque reference to a declaration block held by a Store.
type BlockID uint32

// BoxStyle carries the aggregate that decides outer/inner display and
// positioning -- the inputs box generation's box-style computation needs
// before it can dispatch on outer display.
type BoxStyle struct {
	Display  string // e.g. "block", "inline", "inline-block", "none"
	Position string // "static", "relative", "absolute", "fixed"
	ZIndex   value.Value
	Float    string
}

// ContentWidth carries width/height and their min/max counterparts.
type ContentWidth struct {
	Width, MinWidth, MaxWidth    value.Value
	Height, MinHeight, MaxHeight value.Value
	BoxSizing                    string // "content-box" (default) or "border-box"
}

// HorizontalEdges carries left/right margin, border and padding.
type HorizontalEdges struct {
	MarginLeft, MarginRight   value.Value
	BorderLeftWidth           value.Value
	BorderLeftStyle           string
	BorderRightWidth          value.Value
	BorderRightStyle          string
	PaddingLeft, PaddingRight value.Value
}

// VerticalEdges is the vertical analogue of HorizontalEdges.
type VerticalEdges struct {
	MarginTop, MarginBottom  value.Value
	BorderTopWidth           value.Value
	BorderTopStyle           string
	BorderBottomWidth        value.Value
	BorderBottomStyle        string
	PaddingTop, PaddingBottom value.Value
}

// Insets carries top/right/bottom/left, relevant only for non-static
// positioning.
type Insets struct {
	Top, Right, Bottom, Left value.Value
}

// Background carries the cosmetic-pass background aggregate.
type Background struct {
	Color      string
	Images     []string // resolved URLs/handles, one per layer
	Repeat     []string
	Position   []string
	Clip       []string
	Origin     []string
	Size       []string
}

// Colors carries foreground and border colors.
type Colors struct {
	Color        string
	BorderColors [4]string // top, right, bottom, left
}

// Font carries the two properties the inline-formatting-context builder
// needs to turn text into glyphs: which face to ask fonts.Fonts for, and at
// what size. Font shaping and metrics themselves are out of scope here --
// this aggregate only carries the lookup key.
type Font struct {
	Family string
	Size   value.Value
}

// Aggregate is a type constraint naming every aggregate struct above.
type Aggregate interface {
	BoxStyle | ContentWidth | HorizontalEdges | VerticalEdges | Insets | Background | Colors | Font
}

// decl is one recorded declaration: a group-specific mutator plus the
// importance it was declared with.
type decl struct {
	importance Importance
	apply      func(groupSlots)
}

// groupSlots holds one instance of every aggregate for a single block; a
// block's "apply a declaration" step mutates whichever field the
// declaration's property maps to.
type groupSlots struct {
	boxStyle        BoxStyle
	contentWidth    ContentWidth
	horizontalEdges HorizontalEdges
	verticalEdges   VerticalEdges
	insets          Insets
	background      Background
	colors          Colors
	font            Font
}

// block is one append-only declaration block: one set of group slots for
// `!important` declarations and one for normal ones, each holding the
// latest value declared per field.
type block struct {
	important groupSlots
	normal    groupSlots
	// importantIsWide/normalIsWide record that AddAll was called for that
	// importance. Nothing reads them back: the Apply functions copy only
	// the group slots, so a CSS-wide keyword recorded this way does not
	// reach any aggregate.
	importantIsWide bool
	normalIsWide    bool
}

// Store is the append-only block store. The zero value is ready to use.
type Store struct {
	blocks []block
}

// OpenBlock allocates a new, empty, mutable declaration block and returns
// its id. Blocks are never edited once appended to by a cascade run that has
// already read them -- "append-only" means new blocks, not free-floating
// mutation of old ones, though the Store itself does not enforce that; it's
// a convention callers (the stylesheet loader) are expected to honor.
func (s *Store) OpenBlock() BlockID {
	s.blocks = append(s.blocks, block{})
	return BlockID(len(s.blocks) - 1)
}

// AddAll records a CSS-wide keyword (e.g. "inherit", "initial") as applying
// to every group in the block, for the given importance.
func (s *Store) AddAll(id BlockID, importance Importance, _ keyword) {
	b := &s.blocks[id]
	if importance == Important {
		b.importantIsWide = true
	} else {
		b.normalIsWide = true
	}
}

// keyword is a marker type so AddAll's signature reads naturally at call
// sites (decls.AddAll(id, decls.Important, decls.CSSWideKeyword)).
type keyword struct{}

// CSSWideKeyword is the only inhabitant of keyword.
var CSSWideKeyword = keyword{}

// AddValues records parsed CSS declarations (already-parsed, per
// douceur.Declaration) into block id, keeping them in the per-group,
// per-importance lists. Declarations with properties this store does not
// recognize are dropped with a debug trace: unknown properties are logged
// and ignored at the parse/cascade boundary.
func (s *Store) AddValues(id BlockID, importance Importance, decls []*css.Declaration) {
	b := &s.blocks[id]
	for _, d := range decls {
		imp := importance
		if d.Important {
			imp = Important
		}
		mutator, ok := propertyMutator(d.Property, d.Value)
		if !ok {
			tracer().Debugf("decls: unrecognized property %q ignored", d.Property)
			continue
		}
		slots := &b.normal
		if imp == Important {
			slots = &b.important
		}
		mutator(slots)
	}
}

// ApplyBoxStyle (like every ApplyX function below) copies the recorded
// declarations of its group and importance from block id into *out,
// replacing whatever *out held. Within a block, later-added declarations
// have already overridden earlier ones field-by-field, because AddValues
// mutates the slot in place in call order; merging across blocks is
// Aggregates.MergeFrom's job.
func ApplyBoxStyle(s *Store, id BlockID, importance Importance, out *BoxStyle) {
	b := &s.blocks[id]
	if importance == Important {
		*out = b.important.boxStyle
	} else {
		*out = b.normal.boxStyle
	}
}

func ApplyContentWidth(s *Store, id BlockID, importance Importance, out *ContentWidth) {
	b := &s.blocks[id]
	if importance == Important {
		*out = b.important.contentWidth
	} else {
		*out = b.normal.contentWidth
	}
}

func ApplyHorizontalEdges(s *Store, id BlockID, importance Importance, out *HorizontalEdges) {
	b := &s.blocks[id]
	if importance == Important {
		*out = b.important.horizontalEdges
	} else {
		*out = b.normal.horizontalEdges
	}
}

func ApplyVerticalEdges(s *Store, id BlockID, importance Importance, out *VerticalEdges) {
	b := &s.blocks[id]
	if importance == Important {
		*out = b.important.verticalEdges
	} else {
		*out = b.normal.verticalEdges
	}
}

func ApplyInsets(s *Store, id BlockID, importance Importance, out *Insets) {
	b := &s.blocks[id]
	if importance == Important {
		*out = b.important.insets
	} else {
		*out = b.normal.insets
	}
}

func ApplyBackground(s *Store, id BlockID, importance Importance, out *Background) {
	b := &s.blocks[id]
	if importance == Important {
		*out = b.important.background
	} else {
		*out = b.normal.background
	}
}

func ApplyColors(s *Store, id BlockID, importance Importance, out *Colors) {
	b := &s.blocks[id]
	if importance == Important {
		*out = b.important.colors
	} else {
		*out = b.normal.colors
	}
}

func ApplyFont(s *Store, id BlockID, importance Importance, out *Font) {
	b := &s.blocks[id]
	if importance == Important {
		*out = b.important.font
	} else {
		*out = b.normal.font
	}
}
