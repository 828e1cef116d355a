package layout

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"mondrian/pkg/dom"
	"mondrian/pkg/style"
	"mondrian/pkg/text"
)

// stubShaper shapes with fixed word widths so line math is exact: each
// word becomes one glyph with its configured width, each space one
// glyph of width space. Unlisted words fall back to 10 per rune.
type stubShaper struct {
	widths  map[string]float64
	space   float64
	ascent  float64
	descent float64
}

func (s stubShaper) Shape(str string, _ float64) text.Run {
	run := text.Run{Ascent: s.ascent, Descent: s.descent}
	runeOff := 0
	for _, seg := range text.Segments(str) {
		word := str[seg.Start:seg.End]
		n := utf8.RuneCountInString(word)
		if seg.Space {
			for i := 0; i < n; i++ {
				run.Glyphs = append(run.Glyphs, text.Glyph{Cluster: runeOff + i, Advance: s.space})
			}
		} else {
			w, ok := s.widths[word]
			if !ok {
				w = float64(n) * 10
			}
			run.Glyphs = append(run.Glyphs, text.Glyph{Cluster: runeOff, Advance: w})
		}
		runeOff += n
	}
	return run
}

// newTestEngine uses word widths from the classic pangram: "The
// quick brown fox" measures 30+5+35 and 40+5+20 across a 70px line.
func newTestEngine() *LayoutEngine {
	return NewLayoutEngine(stubShaper{
		widths:  map[string]float64{"The": 30, "quick": 35, "brown": 40, "fox": 20, "wide": 50},
		space:   5,
		ascent:  8,
		descent: -2,
	})
}

func view(attr string, children ...*dom.Node) *dom.Node {
	n := dom.NewElement("view")
	n.StyleAttr = attr
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

func span(attr string, children ...*dom.Node) *dom.Node {
	n := dom.NewElement("span")
	n.StyleAttr = "display: inline"
	if attr != "" {
		n.StyleAttr += "; " + attr
	}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

func resolve(t *testing.T, root *dom.Node) {
	t.Helper()
	if err := root.ResolveStyles(style.Default()); err != nil {
		t.Fatalf("ResolveStyles: %v", err)
	}
}

func checkChild(t *testing.T, tree *LayoutTreeNode, i, index int, pos Point, size Size) {
	t.Helper()
	if i >= len(tree.Children) {
		t.Fatalf("expected at least %d children, got %d", i+1, len(tree.Children))
	}
	child := tree.Children[i]
	if child.Index != index {
		t.Errorf("child %d: expected index %d, got %d", i, index, child.Index)
	}
	if child.Position != pos {
		t.Errorf("child %d: expected position %+v, got %+v", i, pos, child.Position)
	}
	if child.Layout.Size != size {
		t.Errorf("child %d: expected size %+v, got %+v", i, size, child.Layout.Size)
	}
}

// TestLayout_FullTreeShape pins the entire layout tree for a scene
// mixing a sized block, inline text wrap, margin, and padding, so a
// regression anywhere in the pipeline shows up as a structured diff.
func TestLayout_FullTreeShape(t *testing.T) {
	inline := span("")
	inline.AppendText("The quick brown fox")
	root := view("width: 90px; padding: 10px",
		view("width: 40px; height: 30px; margin: 5px"),
		inline,
	)
	resolve(t, root)

	got := newTestEngine().Layout(root, Size{Width: 500, Height: 500})

	want := &LayoutTreeNode{
		Size: Size{Width: 90, Height: 80},
		Children: []LayoutChild{
			{
				Index:    0,
				Position: Point{X: 10, Y: 10},
				Layout: &LayoutTreeNode{
					Size:   Size{Width: 40, Height: 30},
					Margin: style.Uniform(5),
				},
			},
			{
				Index:    1,
				Position: Point{X: 10, Y: 50},
				Layout: &LayoutTreeNode{
					Size: Size{Width: 70, Height: 20},
					Children: []LayoutChild{
						{
							Index:    0,
							Position: Point{X: 0, Y: 0},
							Layout: &LayoutTreeNode{
								Size:       Size{Width: 70, Height: 10},
								RenderText: &LayoutText{Text: "The quick", Size: style.DefaultTextSize},
							},
						},
						{
							Index:    0,
							Position: Point{X: 0, Y: 10},
							Layout: &LayoutTreeNode{
								Size:       Size{Width: 65, Height: 10},
								RenderText: &LayoutText{Text: "brown fox", Size: style.DefaultTextSize},
							},
						},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Layout() mismatch (-want +got):\n%s", diff)
	}
}
