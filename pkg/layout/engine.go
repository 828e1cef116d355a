package layout

import (
	"fmt"

	"mondrian/pkg/dom"
	"mondrian/pkg/memo"
	"mondrian/pkg/style"
	"mondrian/pkg/text"
)

// LayoutEngine builds layout trees from styled element trees. Block
// results are cached per element across passes; an engine serves one
// caller at a time and a pass always runs to completion.
type LayoutEngine struct {
	shaper text.Shaper
	cells  *memo.Table[*dom.Node, blockInputs, *LayoutTreeNode]
}

// NewLayoutEngine returns an engine that measures text with shaper.
func NewLayoutEngine(shaper text.Shaper) *LayoutEngine {
	return &LayoutEngine{
		shaper: shaper,
		cells:  memo.NewTable[*dom.Node, blockInputs, *LayoutTreeNode](blockInputsEqual),
	}
}

// Layout runs one pass over the element tree and returns the root
// layout node. size is the content budget for the root. Subtrees whose
// style and descendant results are unchanged since the previous pass
// come back as the same pointer.
//
// Every traversed element must have a resolved style; a nil style is a
// pipeline ordering bug and panics.
func (e *LayoutEngine) Layout(root *dom.Node, size Size) *LayoutTreeNode {
	e.cells.BeginPass()
	opts := e.nodeStyle(root)
	if opts.Display == style.DisplayBlock {
		return e.layoutBlock(root, opts, size)
	}
	return e.layoutInline(root, opts, size)
}

// CachedBlocks reports how many block results the engine currently
// retains, for instrumentation.
func (e *LayoutEngine) CachedBlocks() int {
	return e.cells.Len()
}

func (e *LayoutEngine) nodeStyle(node *dom.Node) *style.Style {
	opts := node.Style()
	if opts == nil {
		panic(fmt.Sprintf("layout: <%s> has no resolved style; resolve styles before layout", node.Tag))
	}
	return opts
}
