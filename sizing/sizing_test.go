package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zss-dev/zss/decls"
	"github.com/zss-dev/zss/unit"
	"github.com/zss-dev/zss/value"
)

func px(n int32) unit.Unit { return unit.Unit(n) * unit.PerPixel }

func TestSolveFixedWidthAndMargins(t *testing.T) {
	in := Inputs{
		ContentWidth: decls.ContentWidth{
			Width: value.Length(px(100)),
		},
		HorizontalEdges: decls.HorizontalEdges{
			MarginLeft:  value.Length(px(10)),
			MarginRight: value.Length(px(10)),
		},
		CBWidth: px(400),
		Mode:    Normal,
	}
	got := Solve(in)
	assert.False(t, got.InlineSizeIsAuto)
	assert.Equal(t, px(100), got.InlineSize)
	assert.Equal(t, px(10), got.MarginLeft)
	assert.Equal(t, px(10), got.MarginRight)
}

func TestSolvePercentageWidthResolvesAgainstContainingBlock(t *testing.T) {
	in := Inputs{
		ContentWidth: decls.ContentWidth{Width: value.Percentage(50)},
		CBWidth:      px(400),
		Mode:         Normal,
	}
	got := Solve(in)
	assert.Equal(t, px(200), got.InlineSize)
}

func TestSolveClampsToMaxWidth(t *testing.T) {
	in := Inputs{
		ContentWidth: decls.ContentWidth{
			Width:    value.Length(px(500)),
			MaxWidth: value.Length(px(300)),
		},
		CBWidth: px(1000),
		Mode:    Normal,
	}
	got := Solve(in)
	assert.Equal(t, px(300), got.InlineSize)
}

func TestSolveMaxWidthNoneIsUnbounded(t *testing.T) {
	in := Inputs{
		ContentWidth: decls.ContentWidth{
			Width:    value.Length(px(500)),
			MaxWidth: value.None(),
		},
		CBWidth: px(1000),
		Mode:    Normal,
	}
	got := Solve(in)
	assert.Equal(t, px(500), got.InlineSize)
}

func TestSolveShrinkToFitTreatsPercentagesAsAuto(t *testing.T) {
	in := Inputs{
		ContentWidth: decls.ContentWidth{Width: value.Percentage(50)},
		HorizontalEdges: decls.HorizontalEdges{
			MarginLeft: value.Percentage(10),
		},
		CBWidth: px(400),
		Mode:    ShrinkToFit,
	}
	got := Solve(in)
	assert.True(t, got.InlineSizeIsAuto)
	assert.True(t, got.MarginLeftIsAuto)
}

func TestSolveBorderNoneStyleZeroesWidth(t *testing.T) {
	in := Inputs{
		HorizontalEdges: decls.HorizontalEdges{
			BorderLeftWidth: value.Length(px(5)),
			BorderLeftStyle: "none",
		},
		CBWidth: px(400),
		Mode:    Normal,
	}
	got := Solve(in)
	assert.Equal(t, unit.Zero, got.BorderLeft)
}

func TestSolveBorderBoxSubtractsBorderAndPaddingFromWidth(t *testing.T) {
	in := Inputs{
		ContentWidth: decls.ContentWidth{
			Width:     value.Length(px(300)),
			BoxSizing: "border-box",
		},
		HorizontalEdges: decls.HorizontalEdges{
			BorderLeftWidth:  value.Length(px(5)),
			BorderLeftStyle:  "solid",
			BorderRightWidth: value.Length(px(5)),
			BorderRightStyle: "solid",
			PaddingLeft:      value.Length(px(10)),
			PaddingRight:     value.Length(px(10)),
		},
		CBWidth: px(400),
		Mode:    Normal,
	}
	got := Solve(in)
	assert.Equal(t, px(270), got.InlineSize)
}

func TestSolveContentBoxLeavesWidthUnadjusted(t *testing.T) {
	in := Inputs{
		ContentWidth: decls.ContentWidth{
			Width: value.Length(px(300)),
		},
		HorizontalEdges: decls.HorizontalEdges{
			BorderLeftWidth:  value.Length(px(5)),
			BorderLeftStyle:  "solid",
			BorderRightWidth: value.Length(px(5)),
			BorderRightStyle: "solid",
		},
		CBWidth: px(400),
		Mode:    Normal,
	}
	got := Solve(in)
	assert.Equal(t, px(300), got.InlineSize)
}

func TestSolveHeightAutoWhenCBHeightMissing(t *testing.T) {
	in := Inputs{
		ContentWidth: decls.ContentWidth{Height: value.Percentage(50)},
		CBWidth:      px(400),
		HasCBHeight:  false,
		Mode:         Normal,
	}
	got := Solve(in)
	assert.True(t, got.BlockSizeIsAuto)
}

func TestSolveInsetsResolveOnlyWhenPositioned(t *testing.T) {
	in := Inputs{
		Insets:   decls.Insets{Top: value.Length(px(5))},
		Position: PositionStatic,
		CBWidth:  px(400),
		Mode:     Normal,
	}
	got := Solve(in)
	assert.Equal(t, unit.Zero, got.InsetTop)

	in.Position = PositionRelative
	got = Solve(in)
	assert.Equal(t, px(5), got.InsetTop)
}

func TestAdjustWidthAndMarginsFillsAutoWidth(t *testing.T) {
	u := Used{
		InlineSizeIsAuto: true,
		MarginLeft:       px(10),
		MarginRight:      px(10),
	}
	AdjustWidthAndMargins(&u, px(400))
	assert.False(t, u.InlineSizeIsAuto)
	assert.Equal(t, px(380), u.InlineSize)
}

func TestAdjustWidthAndMarginsCentersWhenBothMarginsAuto(t *testing.T) {
	u := Used{
		InlineSize:        px(200),
		MarginLeftIsAuto:  true,
		MarginRightIsAuto: true,
	}
	AdjustWidthAndMargins(&u, px(400))
	assert.Equal(t, px(100), u.MarginLeft)
	assert.Equal(t, px(100), u.MarginRight)
}

func TestAdjustWidthAndMarginsOverConstrainedAdjustsEndMargin(t *testing.T) {
	u := Used{
		InlineSize:  px(300),
		MarginLeft:  px(50),
		MarginRight: px(100),
	}
	AdjustWidthAndMargins(&u, px(400))
	assert.Equal(t, px(50), u.MarginRight)
}

func TestResolveAutoBlockSizeClampsToMax(t *testing.T) {
	u := Used{
		BlockSizeIsAuto: true,
		MaxBlockSize:    px(50),
	}
	ResolveAutoBlockSize(&u, px(200))
	assert.False(t, u.BlockSizeIsAuto)
	assert.Equal(t, px(50), u.BlockSize)
}
