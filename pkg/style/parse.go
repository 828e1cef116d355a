package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse applies a declaration list ("direction: horizontal; width: 200px")
// on top of a base style and returns the result. Unknown properties are
// skipped, like a CSS parser would; malformed values of known properties
// are reported as errors.
func Parse(base Style, decl string) (Style, error) {
	out := base
	for _, d := range strings.Split(decl, ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		parts := strings.SplitN(d, ":", 2)
		if len(parts) != 2 {
			return out, fmt.Errorf("style: malformed declaration %q", d)
		}
		property := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if err := apply(&out, property, value); err != nil {
			return out, err
		}
	}
	return out, nil
}

func apply(s *Style, property, value string) error {
	switch property {
	case "display":
		switch strings.ToLower(value) {
		case "block":
			s.Display = DisplayBlock
		case "inline":
			s.Display = DisplayInline
		default:
			return fmt.Errorf("style: unknown display %q", value)
		}
	case "direction":
		switch strings.ToLower(value) {
		case "vertical":
			s.Direction = DirectionVertical
		case "horizontal":
			s.Direction = DirectionHorizontal
		default:
			return fmt.Errorf("style: unknown direction %q", value)
		}
	case "width":
		px, ok := ParseLength(value)
		if !ok {
			return fmt.Errorf("style: bad width %q", value)
		}
		s.Width = Px(px)
	case "height":
		px, ok := ParseLength(value)
		if !ok {
			return fmt.Errorf("style: bad height %q", value)
		}
		s.Height = Px(px)
	case "margin":
		edge, err := parseEdgeShorthand(value)
		if err != nil {
			return fmt.Errorf("style: bad margin %q", value)
		}
		s.Margin = edge
	case "margin-top", "margin-right", "margin-bottom", "margin-left":
		return applyEdgeSide(&s.Margin, property, value)
	case "padding":
		edge, err := parseEdgeShorthand(value)
		if err != nil {
			return fmt.Errorf("style: bad padding %q", value)
		}
		s.Padding = edge
	case "padding-top", "padding-right", "padding-bottom", "padding-left":
		return applyEdgeSide(&s.Padding, property, value)
	case "font-size":
		px, ok := ParseLength(value)
		if !ok || px <= 0 {
			return fmt.Errorf("style: bad font-size %q", value)
		}
		s.TextSize = px
	case "color":
		c, ok := ParseColor(value)
		if !ok {
			return fmt.Errorf("style: bad color %q", value)
		}
		s.TextColor = c
	case "background", "background-color":
		c, ok := ParseColor(value)
		if !ok {
			return fmt.Errorf("style: bad background %q", value)
		}
		s.Background = c
	}
	return nil
}

// applyEdgeSide sets one side of a margin/padding edge from a property
// like "margin-left".
func applyEdgeSide(edge *EdgeOffsets, property, value string) error {
	px, ok := ParseLength(value)
	if !ok {
		return fmt.Errorf("style: bad %s %q", property, value)
	}
	switch property[strings.LastIndexByte(property, '-')+1:] {
	case "top":
		edge.Top = px
	case "right":
		edge.Right = px
	case "bottom":
		edge.Bottom = px
	case "left":
		edge.Left = px
	}
	return nil
}

// parseEdgeShorthand parses margin/padding shorthand.
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
// "10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l).
func parseEdgeShorthand(value string) (EdgeOffsets, error) {
	fields := strings.Fields(value)
	px := make([]float64, len(fields))
	for i, f := range fields {
		v, ok := ParseLength(f)
		if !ok {
			return EdgeOffsets{}, fmt.Errorf("bad length %q", f)
		}
		px[i] = v
	}
	switch len(px) {
	case 1:
		return Uniform(px[0]), nil
	case 2:
		return EdgeOffsets{Top: px[0], Bottom: px[0], Right: px[1], Left: px[1]}, nil
	case 3:
		return EdgeOffsets{Top: px[0], Right: px[1], Left: px[1], Bottom: px[2]}, nil
	case 4:
		return EdgeOffsets{Top: px[0], Right: px[1], Bottom: px[2], Left: px[3]}, nil
	}
	return EdgeOffsets{}, fmt.Errorf("expected 1-4 lengths, got %d", len(px))
}

// ParseLength parses a pixel length value (e.g., "100px" or "100").
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

var namedColors = map[string]Color{
	"transparent": {},
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"gray":        {128, 128, 128, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"pink":        {255, 192, 203, 255},
	"brown":       {165, 42, 42, 255},
	"lime":        {0, 255, 0, 255},
	"navy":        {0, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
}

// ParseColor parses a named color or a #rgb / #rrggbb / #rrggbbaa hex value.
func ParseColor(val string) (Color, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	if c, ok := namedColors[val]; ok {
		return c, true
	}
	if !strings.HasPrefix(val, "#") {
		return Color{}, false
	}
	hex := val[1:]
	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if !okR || !okG || !okB {
			return Color{}, false
		}
		return Color{R: r * 17, G: g * 17, B: b * 17, A: 255}, true
	case 6, 8:
		v, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return Color{}, false
		}
		if len(hex) == 6 {
			return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
		}
		return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
	}
	return Color{}, false
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}
