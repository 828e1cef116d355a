package layout

import (
	"mondrian/pkg/dom"
	"mondrian/pkg/style"
	"mondrian/pkg/text"
)

// inlineItem is one unit of flattened inline content: an atomic box
// when block is non-nil, otherwise a text run.
type inlineItem struct {
	index int
	block *LayoutTreeNode
	text  textInput
}

// textInput is the transient description of a text run handed to the
// line packer.
type textInput struct {
	text string
	size float64
}

// collectInlineItems flattens the subtree under an inline element into
// a flat item sequence. Nested inline elements contribute their
// content without materializing a box of their own; block elements are
// laid out here and carried as indivisible items. Item indexes refer
// to the child list of the element whose traversal produced them.
func (e *LayoutEngine) collectInlineItems(node *dom.Node, opts *style.Style, maxSize Size, items []inlineItem) []inlineItem {
	for index, child := range node.Children {
		if child.Type == dom.TextNode {
			items = append(items, inlineItem{
				index: index,
				text:  textInput{text: child.Text, size: opts.TextSize},
			})
			continue
		}
		cs := e.nodeStyle(child)
		if cs.Display == style.DisplayBlock {
			items = append(items, inlineItem{index: index, block: e.layoutBlock(child, cs, maxSize)})
		} else {
			items = e.collectInlineItems(child, cs, maxSize, items)
		}
	}
	return items
}

// layoutInline flows the flattened content of an inline element into
// lines no wider than the budget, except for single words that cannot
// fit at all. The result is one node sized to the longest line and the
// stacked line heights. Inline layout is recomputed every pass; only
// block results are cached.
func (e *LayoutEngine) layoutInline(node *dom.Node, opts *style.Style, maxSize Size) *LayoutTreeNode {
	items := e.collectInlineItems(node, opts, maxSize, nil)

	state := &lineState{shaper: e.shaper, maxWidth: maxSize.Width}
	for _, item := range items {
		if item.block != nil {
			state.insertBlock(item.index, item.block)
		} else {
			state.insertText(item.index, item.text)
		}
	}
	state.carriageReturn()

	return &LayoutTreeNode{
		Size:     Size{Width: state.longestLine, Height: state.height},
		Children: state.children,
	}
}

// lineState accumulates one line at a time during inline layout.
// Items land in pending with their x position fixed but their y
// unknown until the line's tallest ascent is settled.
type lineState struct {
	shaper   text.Shaper
	maxWidth float64

	children    []LayoutChild
	pending     []pendingItem
	x           float64
	height      float64
	lineHeight  float64
	lineAscent  float64
	longestLine float64
}

// pendingItem is a box placed on the current line awaiting its
// vertical position.
type pendingItem struct {
	index  int
	x      float64
	ascent float64
	layout *LayoutTreeNode
}

// carriageReturn flushes the pending line. Each item is pushed down by
// the line ascent minus its own ascent, aligning every item's baseline,
// then the line's height joins the running total and the cursor resets.
func (s *lineState) carriageReturn() {
	for _, item := range s.pending {
		s.children = append(s.children, LayoutChild{
			Index:    item.index,
			Position: Point{X: item.x, Y: s.height + s.lineAscent - item.ascent},
			Layout:   item.layout,
		})
	}
	s.pending = s.pending[:0]
	s.height += s.lineHeight
	if s.x > s.longestLine {
		s.longestLine = s.x
	}
	s.x = 0
	s.lineHeight = 0
	s.lineAscent = 0
}

// insertBlock places an already-laid-out box as one indivisible item,
// wrapping first if it does not fit the current line. An atomic box
// has no sub-baseline: its ascent is its full height, so its bottom
// edge sits on the line's baseline.
func (s *lineState) insertBlock(index int, layout *LayoutTreeNode) {
	if s.x+layout.Size.Width > s.maxWidth {
		s.carriageReturn()
	}
	s.pending = append(s.pending, pendingItem{
		index:  index,
		x:      s.x,
		ascent: layout.Size.Height,
		layout: layout,
	})
	s.x += layout.Size.Width
	if layout.Size.Height > s.lineHeight {
		s.lineHeight = layout.Size.Height
	}
	if layout.Size.Height > s.lineAscent {
		s.lineAscent = layout.Size.Height
	}
}

// insertText fits as many whole words as possible into the space left
// on the current line, wrapping and refitting until the run is
// consumed. A word too wide for an empty full-width line is force-fit
// alone and allowed to overflow.
func (s *lineState) insertText(index int, input textInput) {
	offset := 0
	for offset < len(input.text) {
		fit := fitLine(s.shaper, input.text, input.size, s.maxWidth-s.x, offset)
		start := offset
		offset += fit.Length
		if fit.Length == 0 {
			s.carriageReturn()
			offset = text.SkipSpace(input.text, offset)
			start = offset
			fit = fitLine(s.shaper, input.text, input.size, s.maxWidth, offset)
			offset += fit.Length
			if fit.Length == 0 {
				fit = fitLine(s.shaper, input.text, input.size, unboundedWidth, offset)
				offset += fit.Length
			}
		}

		s.pending = append(s.pending, pendingItem{
			index:  index,
			x:      s.x,
			ascent: fit.Ascent,
			layout: &LayoutTreeNode{
				Size:       Size{Width: fit.Width, Height: fit.Height},
				RenderText: &LayoutText{Text: input.text[start:offset], Size: input.size},
			},
		})
		s.x += fit.Width
		if fit.Height > s.lineHeight {
			s.lineHeight = fit.Height
		}
		if fit.Ascent > s.lineAscent {
			s.lineAscent = fit.Ascent
		}
	}
}
