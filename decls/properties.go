package decls

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/zss-dev/zss/unit"
	"github.com/zss-dev/zss/value"
)

func tracer() tracing.Trace { return gtrace.EngineTracer }

// parseValue parses the textual form of a declared value into a value.Value.
// It recognizes the CSS-wide keywords, `auto`/`none`, percentages, and
// pixel lengths; everything else is reported as unrecognized so the caller
// can decide whether to ignore the whole declaration.
func parseValue(raw string) (value.Value, bool) {
	s := strings.TrimSpace(raw)
	switch s {
	case "auto":
		return value.Auto(), true
	case "none":
		return value.None(), true
	case "initial", "inherit", "unset", "revert":
		return value.Keyword(), true
	}
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return value.Value{}, false
		}
		return value.Percentage(n), true
	}
	if strings.HasSuffix(s, "px") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
		if err != nil {
			return value.Value{}, false
		}
		u, err := unit.FromPixels(int32(n))
		if err != nil {
			return value.Value{}, false
		}
		return value.Length(u), true
	}
	// Bare numbers are treated as pixels, matching common CSS-in-JS
	// conventions when no unit suffix is given.
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		u, err := unit.FromPixels(int32(n))
		if err != nil {
			return value.Value{}, false
		}
		return value.Length(u), true
	}
	return value.Value{}, false
}

// keywordWidths maps the CSS border-width keywords (thin/medium/thick) to
// fixed unit counts.
var keywordWidths = map[string]unit.Unit{
	"thin":   unit.PerPixel,     // 1px
	"medium": unit.PerPixel * 3, // 3px
	"thick":  unit.PerPixel * 5, // 5px
}

func parseBorderWidth(raw string) (value.Value, bool) {
	s := strings.TrimSpace(raw)
	if u, ok := keywordWidths[s]; ok {
		return value.Length(u), true
	}
	return parseValue(raw)
}

// propertyMutator returns a closure that, applied to a groupSlots, records
// the parsed value of property `name` into the appropriate aggregate field.
// The second return value is false for properties this store does not
// recognize.
func propertyMutator(name, raw string) (func(*groupSlots), bool) {
	switch name {
	case "display":
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.boxStyle.Display = s }, true
	case "position":
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.boxStyle.Position = s }, true
	case "float":
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.boxStyle.Float = s }, true
	case "z-index":
		v, ok := parseZIndex(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.boxStyle.ZIndex = v }, true
	case "width":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.contentWidth.Width = v }, true
	case "min-width":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.contentWidth.MinWidth = v }, true
	case "max-width":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.contentWidth.MaxWidth = v }, true
	case "height":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.contentWidth.Height = v }, true
	case "min-height":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.contentWidth.MinHeight = v }, true
	case "max-height":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.contentWidth.MaxHeight = v }, true
	case "box-sizing":
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.contentWidth.BoxSizing = s }, true
	case "margin-left":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.horizontalEdges.MarginLeft = v }, true
	case "margin-right":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.horizontalEdges.MarginRight = v }, true
	case "margin-top":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.verticalEdges.MarginTop = v }, true
	case "margin-bottom":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.verticalEdges.MarginBottom = v }, true
	case "padding-left":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.horizontalEdges.PaddingLeft = v }, true
	case "padding-right":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.horizontalEdges.PaddingRight = v }, true
	case "padding-top":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.verticalEdges.PaddingTop = v }, true
	case "padding-bottom":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.verticalEdges.PaddingBottom = v }, true
	case "border-left-width":
		v, ok := parseBorderWidth(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.horizontalEdges.BorderLeftWidth = v }, true
	case "border-right-width":
		v, ok := parseBorderWidth(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.horizontalEdges.BorderRightWidth = v }, true
	case "border-top-width":
		v, ok := parseBorderWidth(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.verticalEdges.BorderTopWidth = v }, true
	case "border-bottom-width":
		v, ok := parseBorderWidth(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.verticalEdges.BorderBottomWidth = v }, true
	case "border-left-style":
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.horizontalEdges.BorderLeftStyle = s }, true
	case "border-right-style":
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.horizontalEdges.BorderRightStyle = s }, true
	case "border-top-style":
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.verticalEdges.BorderTopStyle = s }, true
	case "border-bottom-style":
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.verticalEdges.BorderBottomStyle = s }, true
	case "top":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.insets.Top = v }, true
	case "right":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.insets.Right = v }, true
	case "bottom":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.insets.Bottom = v }, true
	case "left":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.insets.Left = v }, true
	case "color":
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.colors.Color = s }, true
	case "background-color":
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.background.Color = s }, true
	case "background-image":
		layers := splitCommaList(raw)
		return func(g *groupSlots) { g.background.Images = layers }, true
	case "font-family":
		s := strings.TrimSpace(strings.SplitN(raw, ",", 2)[0])
		return func(g *groupSlots) { g.font.Family = s }, true
	case "font-size":
		v, ok := parseValue(raw)
		if !ok {
			return nil, false
		}
		return func(g *groupSlots) { g.font.Size = v }, true
	case "border-top-color", "border-right-color", "border-bottom-color", "border-left-color":
		idx := map[string]int{
			"border-top-color": 0, "border-right-color": 1,
			"border-bottom-color": 2, "border-left-color": 3,
		}[name]
		s := strings.TrimSpace(raw)
		return func(g *groupSlots) { g.colors.BorderColors[idx] = s }, true
	}
	return nil, false
}

// splitCommaList splits a comma-separated layer list (e.g. multiple
// background-image layers) into trimmed components.
func splitCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func parseZIndex(raw string) (value.Value, bool) {
	s := strings.TrimSpace(raw)
	if s == "auto" {
		return value.Auto(), true
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return value.Value{}, false
	}
	return value.Length(unit.Unit(n)), true
}
