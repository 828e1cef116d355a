package style

import "testing"

func TestParse_SingleProperty(t *testing.T) {
	s, err := Parse(Default(), "direction: horizontal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Direction != DirectionHorizontal {
		t.Errorf("expected horizontal direction, got %v", s.Direction)
	}
}

func TestParse_MultipleProperties(t *testing.T) {
	s, err := Parse(Default(), "display: inline; width: 100px; font-size: 20px")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Display != DisplayInline {
		t.Errorf("expected inline display, got %v", s.Display)
	}
	if !s.Width.Set || s.Width.Px != 100 {
		t.Errorf("expected width=100px, got %+v", s.Width)
	}
	if s.TextSize != 20 {
		t.Errorf("expected font-size=20, got %f", s.TextSize)
	}
}

func TestParse_UnknownPropertySkipped(t *testing.T) {
	s, err := Parse(Default(), "flavor: grape; width: 50px")
	if err != nil {
		t.Fatalf("unknown property should be skipped, got error: %v", err)
	}
	if !s.Width.Set || s.Width.Px != 50 {
		t.Errorf("expected width=50px, got %+v", s.Width)
	}
}

func TestParse_MalformedValue(t *testing.T) {
	if _, err := Parse(Default(), "width: banana"); err == nil {
		t.Error("expected error for non-numeric width")
	}
	if _, err := Parse(Default(), "direction: sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestParse_MarginShorthand(t *testing.T) {
	s, err := Parse(Default(), "margin: 10px")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := s.Margin
	if m.Top != 10 || m.Right != 10 || m.Bottom != 10 || m.Left != 10 {
		t.Errorf("expected all margins to be 10, got %+v", m)
	}
}

func TestParse_MarginTwoValues(t *testing.T) {
	s, err := Parse(Default(), "margin: 10px 20px")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := s.Margin
	if m.Top != 10 || m.Bottom != 10 {
		t.Errorf("expected top/bottom margins to be 10, got %+v", m)
	}
	if m.Right != 20 || m.Left != 20 {
		t.Errorf("expected left/right margins to be 20, got %+v", m)
	}
}

func TestParse_PaddingFourValues(t *testing.T) {
	s, err := Parse(Default(), "padding: 10px 20px 30px 40px")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := s.Padding
	if p.Top != 10 || p.Right != 20 || p.Bottom != 30 || p.Left != 40 {
		t.Errorf("expected padding 10,20,30,40, got %+v", p)
	}
}

func TestParse_EdgeSideProperties(t *testing.T) {
	s, err := Parse(Default(), "margin: 5px; margin-left: 12px; padding-top: 3px")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Margin.Left != 12 || s.Margin.Top != 5 {
		t.Errorf("expected margin-left override to 12, got %+v", s.Margin)
	}
	if s.Padding.Top != 3 {
		t.Errorf("expected padding-top=3, got %+v", s.Padding)
	}
}

func TestParseLength_PixelSuffixOptional(t *testing.T) {
	for _, val := range []string{"100px", "100", " 100px "} {
		px, ok := ParseLength(val)
		if !ok || px != 100 {
			t.Errorf("ParseLength(%q): expected 100, got %f ok=%v", val, px, ok)
		}
	}
}

func TestParseColor_Named(t *testing.T) {
	tests := map[string]Color{
		"red":         {255, 0, 0, 255},
		"blue":        {0, 0, 255, 255},
		"green":       {0, 128, 0, 255},
		"transparent": {},
	}
	for name, expected := range tests {
		c, ok := ParseColor(name)
		if !ok || c != expected {
			t.Errorf("color %s: expected %+v, got %+v", name, expected, c)
		}
	}
}

func TestParseColor_Hex(t *testing.T) {
	tests := map[string]Color{
		"#fff":      {255, 255, 255, 255},
		"#102030":   {16, 32, 48, 255},
		"#10203040": {16, 32, 48, 64},
	}
	for val, expected := range tests {
		c, ok := ParseColor(val)
		if !ok || c != expected {
			t.Errorf("color %s: expected %+v, got %+v", val, expected, c)
		}
	}
	if _, ok := ParseColor("#12"); ok {
		t.Error("expected #12 to be rejected")
	}
	if _, ok := ParseColor("#xyzxyz"); ok {
		t.Error("expected #xyzxyz to be rejected")
	}
}

func TestInherited_TextPropertiesCarry(t *testing.T) {
	parent, err := Parse(Default(), "font-size: 24px; color: red; padding: 10px; width: 100px")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	child := parent.Inherited()
	if child.TextSize != 24 {
		t.Errorf("expected inherited font-size=24, got %f", child.TextSize)
	}
	if child.TextColor != (Color{255, 0, 0, 255}) {
		t.Errorf("expected inherited red text, got %+v", child.TextColor)
	}
	if child.Padding != (EdgeOffsets{}) {
		t.Errorf("padding must not inherit, got %+v", child.Padding)
	}
	if child.Width.Set {
		t.Errorf("width must not inherit, got %+v", child.Width)
	}
}

func TestStyle_Comparable(t *testing.T) {
	a, _ := Parse(Default(), "direction: horizontal; margin: 2px")
	b, _ := Parse(Default(), "direction: horizontal; margin: 2px")
	if a != b {
		t.Error("identical declarations should produce equal styles")
	}
	c, _ := Parse(Default(), "direction: horizontal; margin: 3px")
	if a == c {
		t.Error("different margins should produce unequal styles")
	}
}

func TestForTag_SpanDefaultsToInline(t *testing.T) {
	span := ForTag("span", Default())
	if span.Display != DisplayInline {
		t.Errorf("expected span to default to inline, got %s", span.Display)
	}
	view := ForTag("view", Default())
	if view.Display != DisplayBlock {
		t.Errorf("expected view to default to block, got %s", view.Display)
	}

	// A declaration still wins over the tag default.
	forced, err := Parse(ForTag("span", Default()), "display: block")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forced.Display != DisplayBlock {
		t.Errorf("expected declaration to override tag default, got %s", forced.Display)
	}
}
