package decls

// Aggregates bundles one instance of every declarations-store aggregate
// group. A fully-resolved cascaded value for an element is a single
// Aggregates, folded from the blocks of both importance buckets (see
// elementtree.CascadedValues).
type Aggregates struct {
	BoxStyle        BoxStyle
	ContentWidth    ContentWidth
	HorizontalEdges HorizontalEdges
	VerticalEdges   VerticalEdges
	Insets          Insets
	Background      Background
	Colors          Colors
	Font            Font
}

// FromBlock reads block id's aggregate group for the given importance into
// a fresh Aggregates value.
func FromBlock(s *Store, id BlockID, importance Importance) Aggregates {
	var a Aggregates
	ApplyBoxStyle(s, id, importance, &a.BoxStyle)
	ApplyContentWidth(s, id, importance, &a.ContentWidth)
	ApplyHorizontalEdges(s, id, importance, &a.HorizontalEdges)
	ApplyVerticalEdges(s, id, importance, &a.VerticalEdges)
	ApplyInsets(s, id, importance, &a.Insets)
	ApplyBackground(s, id, importance, &a.Background)
	ApplyColors(s, id, importance, &a.Colors)
	ApplyFont(s, id, importance, &a.Font)
	return a
}

// MergeFrom folds src into dst, field by field, so that a property src
// never declared does not clobber a value a previously-merged block did
// declare. This is the mechanism behind the cascade's last-wins behavior
// when more than one (selector, block) pair matches the same element:
// callers merge in traversal order, and within a field the last merge that
// actually sets it wins.
func (dst *Aggregates) MergeFrom(src Aggregates) {
	mergeBoxStyle(&dst.BoxStyle, src.BoxStyle)
	mergeContentWidth(&dst.ContentWidth, src.ContentWidth)
	mergeHorizontalEdges(&dst.HorizontalEdges, src.HorizontalEdges)
	mergeVerticalEdges(&dst.VerticalEdges, src.VerticalEdges)
	mergeInsets(&dst.Insets, src.Insets)
	mergeBackground(&dst.Background, src.Background)
	mergeColors(&dst.Colors, src.Colors)
	mergeFont(&dst.Font, src.Font)
}

func mergeBoxStyle(dst *BoxStyle, src BoxStyle) {
	if src.Display != "" {
		dst.Display = src.Display
	}
	if src.Position != "" {
		dst.Position = src.Position
	}
	if src.Float != "" {
		dst.Float = src.Float
	}
	if src.ZIndex.IsSet() {
		dst.ZIndex = src.ZIndex
	}
}

func mergeContentWidth(dst *ContentWidth, src ContentWidth) {
	if src.Width.IsSet() {
		dst.Width = src.Width
	}
	if src.MinWidth.IsSet() {
		dst.MinWidth = src.MinWidth
	}
	if src.MaxWidth.IsSet() {
		dst.MaxWidth = src.MaxWidth
	}
	if src.Height.IsSet() {
		dst.Height = src.Height
	}
	if src.MinHeight.IsSet() {
		dst.MinHeight = src.MinHeight
	}
	if src.MaxHeight.IsSet() {
		dst.MaxHeight = src.MaxHeight
	}
	if src.BoxSizing != "" {
		dst.BoxSizing = src.BoxSizing
	}
}

func mergeHorizontalEdges(dst *HorizontalEdges, src HorizontalEdges) {
	if src.MarginLeft.IsSet() {
		dst.MarginLeft = src.MarginLeft
	}
	if src.MarginRight.IsSet() {
		dst.MarginRight = src.MarginRight
	}
	if src.BorderLeftWidth.IsSet() {
		dst.BorderLeftWidth = src.BorderLeftWidth
	}
	if src.BorderLeftStyle != "" {
		dst.BorderLeftStyle = src.BorderLeftStyle
	}
	if src.BorderRightWidth.IsSet() {
		dst.BorderRightWidth = src.BorderRightWidth
	}
	if src.BorderRightStyle != "" {
		dst.BorderRightStyle = src.BorderRightStyle
	}
	if src.PaddingLeft.IsSet() {
		dst.PaddingLeft = src.PaddingLeft
	}
	if src.PaddingRight.IsSet() {
		dst.PaddingRight = src.PaddingRight
	}
}

func mergeVerticalEdges(dst *VerticalEdges, src VerticalEdges) {
	if src.MarginTop.IsSet() {
		dst.MarginTop = src.MarginTop
	}
	if src.MarginBottom.IsSet() {
		dst.MarginBottom = src.MarginBottom
	}
	if src.BorderTopWidth.IsSet() {
		dst.BorderTopWidth = src.BorderTopWidth
	}
	if src.BorderTopStyle != "" {
		dst.BorderTopStyle = src.BorderTopStyle
	}
	if src.BorderBottomWidth.IsSet() {
		dst.BorderBottomWidth = src.BorderBottomWidth
	}
	if src.BorderBottomStyle != "" {
		dst.BorderBottomStyle = src.BorderBottomStyle
	}
	if src.PaddingTop.IsSet() {
		dst.PaddingTop = src.PaddingTop
	}
	if src.PaddingBottom.IsSet() {
		dst.PaddingBottom = src.PaddingBottom
	}
}

func mergeInsets(dst *Insets, src Insets) {
	if src.Top.IsSet() {
		dst.Top = src.Top
	}
	if src.Right.IsSet() {
		dst.Right = src.Right
	}
	if src.Bottom.IsSet() {
		dst.Bottom = src.Bottom
	}
	if src.Left.IsSet() {
		dst.Left = src.Left
	}
}

func mergeBackground(dst *Background, src Background) {
	if src.Color != "" {
		dst.Color = src.Color
	}
	if src.Images != nil {
		dst.Images = src.Images
	}
	if src.Repeat != nil {
		dst.Repeat = src.Repeat
	}
	if src.Position != nil {
		dst.Position = src.Position
	}
	if src.Clip != nil {
		dst.Clip = src.Clip
	}
	if src.Origin != nil {
		dst.Origin = src.Origin
	}
	if src.Size != nil {
		dst.Size = src.Size
	}
}

func mergeFont(dst *Font, src Font) {
	if src.Family != "" {
		dst.Family = src.Family
	}
	if src.Size.IsSet() {
		dst.Size = src.Size
	}
}

func mergeColors(dst *Colors, src Colors) {
	if src.Color != "" {
		dst.Color = src.Color
	}
	for i, c := range src.BorderColors {
		if c != "" {
			dst.BorderColors[i] = c
		}
	}
}
