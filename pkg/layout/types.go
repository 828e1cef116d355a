// Package layout computes the size and position of every box in a
// styled scene tree. Block elements stack their children along one
// axis; inline elements flow text and embedded boxes into wrapped,
// baseline-aligned lines. The output is an immutable tree shared
// across passes, which is what makes caching by identity safe.
package layout

import "mondrian/pkg/style"

// Point is a position in logical pixels. Child positions are relative
// to the parent box's top-left corner.
type Point struct {
	X float64
	Y float64
}

// Size is a box extent in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// LayoutText is the text a leaf box renders, roughly one line.
type LayoutText struct {
	Text string
	// Size is the font size the text was measured at.
	Size float64
}

// LayoutTreeNode is the laid-out form of one subtree. Nodes are never
// mutated after construction; a cached node may be handed out again on
// a later pass, so every pass shares them by pointer.
type LayoutTreeNode struct {
	// Size of this node's own box. Margin is not included.
	Size Size
	// Margin is carried for the parent's stacking pass.
	Margin style.EdgeOffsets
	// RenderText is set only on leaf text boxes.
	RenderText *LayoutText
	Children   []LayoutChild
}

// OuterSize returns the node's size grown by its margin, which is the
// extent the node occupies inside a stacking parent.
func (n *LayoutTreeNode) OuterSize() Size {
	return Size{
		Width:  n.Size.Width + n.Margin.Horizontal(),
		Height: n.Size.Height + n.Margin.Vertical(),
	}
}

// LayoutChild places one laid-out child within its parent. Index is
// the child's position in the source element's child list, so event
// dispatch can map a box back to the element it came from.
type LayoutChild struct {
	Index    int
	Position Point
	Layout   *LayoutTreeNode
}
