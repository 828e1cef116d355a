package layout

import "mondrian/pkg/dom"

// HitResult identifies the deepest layout box containing a point and
// the source node that produced it.
type HitResult struct {
	Node   *dom.Node
	Layout *LayoutTreeNode
	// Position is the hit box's top-left corner in root coordinates.
	Position Point
}

// HitTest finds the deepest box containing pt, walking children in
// reverse source order so the box painted last wins overlaps. Returns
// nil when pt is outside the tree entirely.
//
// Box indexes refer to the child list of the element whose traversal
// produced them, so for content flattened out of nested inline
// elements the reported Node can be the flattening ancestor rather
// than the exact source child.
func HitTest(node *dom.Node, tree *LayoutTreeNode, pt Point) *HitResult {
	return hitTest(node, tree, pt, Point{})
}

func hitTest(node *dom.Node, tree *LayoutTreeNode, pt, origin Point) *HitResult {
	if pt.X < origin.X || pt.Y < origin.Y ||
		pt.X >= origin.X+tree.Size.Width || pt.Y >= origin.Y+tree.Size.Height {
		return nil
	}
	for i := len(tree.Children) - 1; i >= 0; i-- {
		child := tree.Children[i]
		src := node
		if child.Index >= 0 && child.Index < len(node.Children) {
			src = node.Children[child.Index]
		}
		childOrigin := Point{X: origin.X + child.Position.X, Y: origin.Y + child.Position.Y}
		if hit := hitTest(src, child.Layout, pt, childOrigin); hit != nil {
			return hit
		}
	}
	return &HitResult{Node: node, Layout: tree, Position: origin}
}
