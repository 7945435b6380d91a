package decls

import (
	"testing"

	"github.com/aymerick/douceur/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zss-dev/zss/unit"
)

func TestAddValuesAndApply(t *testing.T) {
	var s Store
	id := s.OpenBlock()
	s.AddValues(id, Normal, []*css.Declaration{
		{Property: "width", Value: "100px"},
		{Property: "display", Value: "block"},
	})

	var cw ContentWidth
	ApplyContentWidth(&s, id, Normal, &cw)
	require.True(t, cw.Width.IsLength())
	assert.Equal(t, unit.Unit(400), cw.Width.AsLength())

	var bs BoxStyle
	ApplyBoxStyle(&s, id, Normal, &bs)
	assert.Equal(t, "block", bs.Display)
}

func TestLaterDeclarationWinsWithinABlock(t *testing.T) {
	var s Store
	id := s.OpenBlock()
	s.AddValues(id, Normal, []*css.Declaration{
		{Property: "width", Value: "100px"},
	})
	s.AddValues(id, Normal, []*css.Declaration{
		{Property: "width", Value: "200px"},
	})
	var cw ContentWidth
	ApplyContentWidth(&s, id, Normal, &cw)
	assert.Equal(t, unit.Unit(800), cw.Width.AsLength())
}

func TestImportantDeclarationsAreSeparate(t *testing.T) {
	var s Store
	id := s.OpenBlock()
	s.AddValues(id, Normal, []*css.Declaration{{Property: "width", Value: "100px"}})
	s.AddValues(id, Important, []*css.Declaration{{Property: "width", Value: "200px", Important: true}})

	var normalCW, importantCW ContentWidth
	ApplyContentWidth(&s, id, Normal, &normalCW)
	ApplyContentWidth(&s, id, Important, &importantCW)
	assert.Equal(t, unit.Unit(400), normalCW.Width.AsLength())
	assert.Equal(t, unit.Unit(800), importantCW.Width.AsLength())
}

func TestUnrecognizedPropertyIsIgnored(t *testing.T) {
	var s Store
	id := s.OpenBlock()
	s.AddValues(id, Normal, []*css.Declaration{
		{Property: "does-not-exist", Value: "42"},
		{Property: "width", Value: "10px"},
	})
	var cw ContentWidth
	ApplyContentWidth(&s, id, Normal, &cw)
	assert.Equal(t, unit.Unit(40), cw.Width.AsLength())
}

func TestBorderWidthKeywords(t *testing.T) {
	var s Store
	id := s.OpenBlock()
	s.AddValues(id, Normal, []*css.Declaration{{Property: "border-left-width", Value: "thick"}})
	var he HorizontalEdges
	ApplyHorizontalEdges(&s, id, Normal, &he)
	assert.Equal(t, unit.PerPixel*5, he.BorderLeftWidth.AsLength())
}
