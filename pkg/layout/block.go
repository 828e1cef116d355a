package layout

import (
	"mondrian/pkg/dom"
	"mondrian/pkg/style"
)

// blockInputs is the cache key for one block's stacking step. Keys
// match when the style values are equal and every child is the same
// layout node by pointer, so a block recomputes only when a
// descendant's result actually changed.
type blockInputs struct {
	opts     style.Style
	children []*LayoutTreeNode
}

func blockInputsEqual(a, b blockInputs) bool {
	if a.opts != b.opts {
		return false
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if a.children[i] != b.children[i] {
			return false
		}
	}
	return true
}

// calcMaxSize returns the content budget handed to a block's children:
// the outer size with explicit dimensions applied, minus padding.
// Margin does not reduce the budget.
func calcMaxSize(opts *style.Style, parentSize Size) Size {
	outer := parentSize
	if opts.Width.Set {
		outer.Width = opts.Width.Px
	}
	if opts.Height.Set {
		outer.Height = opts.Height.Px
	}
	outer.Width -= opts.Padding.Horizontal()
	outer.Height -= opts.Padding.Vertical()
	return outer
}

// layoutBlock lays out one block element: children first, in source
// order, then the stacking step, which is cached per element keyed on
// style plus child identities.
func (e *LayoutEngine) layoutBlock(node *dom.Node, opts *style.Style, parentMax Size) *LayoutTreeNode {
	maxSize := calcMaxSize(opts, parentMax)

	children := make([]*LayoutTreeNode, 0, len(node.Children))
	for _, child := range node.Children {
		if child.Type == dom.TextNode {
			children = append(children, e.measureTextLeaf(child.Text, opts.TextSize))
			continue
		}
		cs := e.nodeStyle(child)
		if cs.Display == style.DisplayBlock {
			children = append(children, e.layoutBlock(child, cs, maxSize))
		} else {
			children = append(children, e.layoutInline(child, cs, maxSize))
		}
	}

	inputs := blockInputs{opts: *opts, children: children}
	return e.cells.Cell(node).Get(inputs, func() *LayoutTreeNode {
		return calcBlockLayout(inputs)
	})
}

// calcBlockLayout stacks already-laid-out children along the block's
// axis. The running offset advances by each child's margin-inclusive
// size; the cross axis takes the largest margin-inclusive extent. The
// content size plus padding becomes the block's size unless an
// explicit width or height overrides it, in which case children may
// overflow the box; nothing is clipped.
func calcBlockLayout(in blockInputs) *LayoutTreeNode {
	var width, height float64
	children := make([]LayoutChild, 0, len(in.children))
	for index, child := range in.children {
		outer := child.OuterSize()
		if in.opts.Direction == style.DirectionVertical {
			if outer.Width > width {
				width = outer.Width
			}
			children = append(children, LayoutChild{
				Index:    index,
				Position: Point{X: in.opts.Padding.Left, Y: height + in.opts.Padding.Top},
				Layout:   child,
			})
			height += outer.Height
		} else {
			if outer.Height > height {
				height = outer.Height
			}
			children = append(children, LayoutChild{
				Index:    index,
				Position: Point{X: width + in.opts.Padding.Left, Y: in.opts.Padding.Top},
				Layout:   child,
			})
			width += outer.Width
		}
	}

	size := Size{
		Width:  width + in.opts.Padding.Horizontal(),
		Height: height + in.opts.Padding.Vertical(),
	}
	if in.opts.Width.Set {
		size.Width = in.opts.Width.Px
	}
	if in.opts.Height.Set {
		size.Height = in.opts.Height.Px
	}

	return &LayoutTreeNode{
		Size:     size,
		Margin:   in.opts.Margin,
		Children: children,
	}
}

// measureTextLeaf measures a text child of a block as a single
// unwrapped line. Wrapping only happens under an inline container.
func (e *LayoutEngine) measureTextLeaf(s string, size float64) *LayoutTreeNode {
	fit := fitLine(e.shaper, s, size, unboundedWidth, 0)
	return &LayoutTreeNode{
		Size:       Size{Width: fit.Width, Height: fit.Height},
		RenderText: &LayoutText{Text: s, Size: size},
	}
}
