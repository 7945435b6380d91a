package style

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zss-dev/zss/decls"
	"github.com/zss-dev/zss/value"
)

func TestRootInlinePromotedToBlock(t *testing.T) {
	got := ComputeBoxStyle(decls.BoxStyle{Display: "inline"}, true)
	assert.Equal(t, OuterBlock, got.Outer)
}

func TestNonRootInlineStaysInline(t *testing.T) {
	got := ComputeBoxStyle(decls.BoxStyle{Display: "inline"}, false)
	assert.Equal(t, OuterInline, got.Outer)
}

func TestDisplayNoneStopsDescent(t *testing.T) {
	got := ComputeBoxStyle(decls.BoxStyle{Display: "none"}, false)
	assert.Equal(t, OuterNone, got.Outer)
}

func TestAbsoluteForcesInnerBlockRegardlessOfDisplay(t *testing.T) {
	got := ComputeBoxStyle(decls.BoxStyle{Display: "inline", Position: "absolute"}, false)
	assert.Equal(t, OuterAbsolute, got.Outer)
	assert.Equal(t, InnerFlowRoot, got.Inner)
	assert.Equal(t, PositionAbsolute, got.Position)
}

func TestZIndexAutoByDefault(t *testing.T) {
	got := ComputeBoxStyle(decls.BoxStyle{Display: "block"}, false)
	assert.True(t, got.ZIndex.Auto)
}

func TestZIndexFixedValue(t *testing.T) {
	got := ComputeBoxStyle(decls.BoxStyle{Display: "block", ZIndex: value.Length(2)}, false)
	assert.False(t, got.ZIndex.Auto)
	assert.Equal(t, int32(2), got.ZIndex.Value)
}
