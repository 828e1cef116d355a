package layout

import (
	"testing"

	"mondrian/pkg/style"
)

func TestBlockLayout_VerticalStacking(t *testing.T) {
	root := view("",
		view("width: 40px; height: 30px"),
		view("width: 60px; height: 50px"),
	)
	resolve(t, root)

	tree := newTestEngine().Layout(root, Size{Width: 200, Height: 200})

	if want := (Size{Width: 60, Height: 80}); tree.Size != want {
		t.Errorf("expected root size %+v, got %+v", want, tree.Size)
	}
	checkChild(t, tree, 0, 0, Point{X: 0, Y: 0}, Size{Width: 40, Height: 30})
	checkChild(t, tree, 1, 1, Point{X: 0, Y: 30}, Size{Width: 60, Height: 50})
	if tree.Children[1].Position.Y <= tree.Children[0].Position.Y {
		t.Error("expected strictly increasing y offsets")
	}
}

func TestBlockLayout_HorizontalStacking(t *testing.T) {
	root := view("direction: horizontal",
		view("width: 40px; height: 30px"),
		view("width: 60px; height: 50px"),
	)
	resolve(t, root)

	tree := newTestEngine().Layout(root, Size{Width: 200, Height: 200})

	if want := (Size{Width: 100, Height: 50}); tree.Size != want {
		t.Errorf("expected root size %+v, got %+v", want, tree.Size)
	}
	checkChild(t, tree, 0, 0, Point{X: 0, Y: 0}, Size{Width: 40, Height: 30})
	checkChild(t, tree, 1, 1, Point{X: 40, Y: 0}, Size{Width: 60, Height: 50})
}

func TestBlockLayout_ExplicitSizeOverridesContent(t *testing.T) {
	root := view("width: 200px; height: 100px",
		view("width: 300px; height: 250px"),
	)
	resolve(t, root)

	tree := newTestEngine().Layout(root, Size{Width: 500, Height: 500})

	if want := (Size{Width: 200, Height: 100}); tree.Size != want {
		t.Errorf("expected explicit size %+v, got %+v", want, tree.Size)
	}
	// The child overflows the explicit box and is not clipped.
	checkChild(t, tree, 0, 0, Point{X: 0, Y: 0}, Size{Width: 300, Height: 250})
}

func TestBlockLayout_PaddingOffsetsChildrenAndGrowsBox(t *testing.T) {
	root := view("padding: 10px",
		view("width: 40px; height: 30px"),
	)
	resolve(t, root)

	tree := newTestEngine().Layout(root, Size{Width: 200, Height: 200})

	if want := (Size{Width: 60, Height: 50}); tree.Size != want {
		t.Errorf("expected size %+v, got %+v", want, tree.Size)
	}
	checkChild(t, tree, 0, 0, Point{X: 10, Y: 10}, Size{Width: 40, Height: 30})
}

func TestBlockLayout_AsymmetricPadding(t *testing.T) {
	root := view("padding-left: 10px; padding-top: 20px",
		view("width: 40px; height: 30px"),
	)
	resolve(t, root)

	tree := newTestEngine().Layout(root, Size{Width: 200, Height: 200})

	if want := (Size{Width: 50, Height: 50}); tree.Size != want {
		t.Errorf("expected size %+v, got %+v", want, tree.Size)
	}
	checkChild(t, tree, 0, 0, Point{X: 10, Y: 20}, Size{Width: 40, Height: 30})
}

func TestBlockLayout_MarginAdvancesStacking(t *testing.T) {
	root := view("",
		view("width: 40px; height: 30px; margin: 10px"),
		view("width: 40px; height: 30px"),
	)
	resolve(t, root)

	tree := newTestEngine().Layout(root, Size{Width: 200, Height: 200})

	// First child's margin widens its stacking footprint to 60x50 but
	// does not move the child itself.
	if want := (Size{Width: 60, Height: 80}); tree.Size != want {
		t.Errorf("expected size %+v, got %+v", want, tree.Size)
	}
	checkChild(t, tree, 0, 0, Point{X: 0, Y: 0}, Size{Width: 40, Height: 30})
	checkChild(t, tree, 1, 1, Point{X: 0, Y: 50}, Size{Width: 40, Height: 30})
	if want := style.Uniform(10); tree.Children[0].Layout.Margin != want {
		t.Errorf("expected margin %+v carried on node, got %+v", want, tree.Children[0].Layout.Margin)
	}
}

func TestBlockLayout_TextLeafMeasuredAsOneLine(t *testing.T) {
	root := view("")
	root.AppendText("The quick brown fox")
	resolve(t, root)

	// Narrow viewport: block-level text does not wrap.
	tree := newTestEngine().Layout(root, Size{Width: 30, Height: 100})

	if want := (Size{Width: 140, Height: 10}); tree.Size != want {
		t.Errorf("expected size %+v, got %+v", want, tree.Size)
	}
	leaf := tree.Children[0].Layout
	if leaf.RenderText == nil {
		t.Fatal("expected leaf to carry render text")
	}
	if leaf.RenderText.Text != "The quick brown fox" {
		t.Errorf("expected full text, got %q", leaf.RenderText.Text)
	}
	if leaf.RenderText.Size != style.DefaultTextSize {
		t.Errorf("expected inherited text size %v, got %v", style.DefaultTextSize, leaf.RenderText.Size)
	}
}

func TestBlockLayout_NestedBlocksComposePadding(t *testing.T) {
	inner := view("padding: 5px", view("width: 20px; height: 10px"))
	root := view("padding: 10px", inner)
	resolve(t, root)

	tree := newTestEngine().Layout(root, Size{Width: 200, Height: 200})

	// inner: 20x10 content + 10px padding both axes = 30x20.
	checkChild(t, tree, 0, 0, Point{X: 10, Y: 10}, Size{Width: 30, Height: 20})
	if want := (Size{Width: 50, Height: 40}); tree.Size != want {
		t.Errorf("expected size %+v, got %+v", want, tree.Size)
	}
	checkChild(t, tree.Children[0].Layout, 0, 0, Point{X: 5, Y: 5}, Size{Width: 20, Height: 10})
}
