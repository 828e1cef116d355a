package style

// Display selects which layout algorithm an element participates in.
type Display int

const (
	DisplayBlock Display = iota
	DisplayInline
)

func (d Display) String() string {
	if d == DisplayInline {
		return "inline"
	}
	return "block"
}

// Direction is the stacking axis of a block container.
type Direction int

const (
	DirectionVertical Direction = iota
	DirectionHorizontal
)

func (d Direction) String() string {
	if d == DirectionHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Length is an optional pixel length. The zero value means "auto".
type Length struct {
	Px  float64
	Set bool
}

// Px returns an explicit pixel length.
func Px(v float64) Length {
	return Length{Px: v, Set: true}
}

// EdgeOffsets holds per-side pixel offsets (top, right, bottom, left).
type EdgeOffsets struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Uniform returns offsets with the same value on all four sides.
func Uniform(v float64) EdgeOffsets {
	return EdgeOffsets{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns left + right.
func (e EdgeOffsets) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns top + bottom.
func (e EdgeOffsets) Vertical() float64 { return e.Top + e.Bottom }

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	Transparent = Color{}
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
)

// Style is the resolved style of one element. It is a plain comparable
// value: two styles are equal exactly when every field is equal, which is
// what the block layout cache keys on.
type Style struct {
	Display    Display
	Direction  Direction
	Width      Length
	Height     Length
	Margin     EdgeOffsets
	Padding    EdgeOffsets
	TextSize   float64
	TextColor  Color
	Background Color
}

// DefaultTextSize is the text size used when no ancestor sets one.
const DefaultTextSize = 16.0

// Default returns the style an element has with no declarations applied:
// a vertical block with 16px black text on a transparent background.
func Default() Style {
	return Style{
		Display:    DisplayBlock,
		Direction:  DirectionVertical,
		TextSize:   DefaultTextSize,
		TextColor:  Black,
		Background: Transparent,
	}
}

// Inherited returns the base style for a child element: text properties
// carry over, box properties reset. Mirrors how text size and color
// cascade while margins, padding and dimensions do not.
func (s Style) Inherited() Style {
	out := Default()
	out.TextSize = s.TextSize
	out.TextColor = s.TextColor
	return out
}

// ForTag applies a tag's intrinsic defaults on top of base. <span>
// elements lay out inline unless a declaration says otherwise; every
// other tag keeps the block default.
func ForTag(tag string, base Style) Style {
	if tag == "span" {
		base.Display = DisplayInline
	}
	return base
}
