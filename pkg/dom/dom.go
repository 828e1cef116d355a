package dom

import (
	"fmt"
	"sort"
	"strings"

	"mondrian/pkg/style"
)

// Node is one node of the scene tree: either an element carrying resolved
// style and children, or a text leaf.
type Node struct {
	Type      NodeType
	Tag       string
	ID        string
	StyleAttr string // raw declaration list; resolved by ResolveStyles
	Text      string
	Children  []*Node
	Parent    *Node

	resolved *style.Style
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// NewElement returns an element node with the given tag.
func NewElement(tag string) *Node {
	return &Node{
		Type:     ElementNode,
		Tag:      tag,
		Children: make([]*Node, 0),
	}
}

// NewText returns a text leaf.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// Style returns the resolved style for this element, or nil if
// ResolveStyles has not run since the node was created or mutated.
// Layout treats a nil resolved style as a pipeline ordering bug.
func (n *Node) Style() *style.Style {
	return n.resolved
}

// ResolveStyles computes resolved styles for this element and all
// descendants. base is the style the element inherits from; pass
// style.Default() for a root. Text leaves carry no style of their own —
// they read the parent's at layout time.
func (n *Node) ResolveStyles(base style.Style) error {
	if n.Type == TextNode {
		return nil
	}
	resolved, err := style.Parse(style.ForTag(n.Tag, base.Inherited()), n.StyleAttr)
	if err != nil {
		return fmt.Errorf("resolve <%s>: %w", n.Tag, err)
	}
	n.resolved = &resolved
	for _, child := range n.Children {
		if err := child.ResolveStyles(resolved); err != nil {
			return err
		}
	}
	return nil
}

// AddChild adds a child node and sets up the parent relationship.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text leaf and adds it as a child.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	textNode := NewText(text)
	textNode.Parent = n
	n.Children = append(n.Children, textNode)
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// InsertBefore inserts newChild before refChild in this node's children.
// If refChild is nil, appends newChild at the end.
// If newChild already has a parent, it is removed from that parent first.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}

	if refChild == nil {
		n.AddChild(newChild)
		return newChild
	}

	for i, c := range n.Children {
		if c == refChild {
			n.Children = append(n.Children, nil)
			copy(n.Children[i+1:], n.Children[i:])
			n.Children[i] = newChild
			newChild.Parent = n
			return newChild
		}
	}

	// refChild not found — append
	n.AddChild(newChild)
	return newChild
}

// CloneNode returns a copy of the node. If deep is true, all descendants
// are cloned recursively. The clone has no parent and no resolved style.
func (n *Node) CloneNode(deep bool) *Node {
	clone := &Node{
		Type:      n.Type,
		Tag:       n.Tag,
		ID:        n.ID,
		StyleAttr: n.StyleAttr,
		Text:      n.Text,
	}
	if deep {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			childClone := child.CloneNode(true)
			childClone.Parent = clone
			clone.Children[i] = childClone
		}
	} else {
		clone.Children = make([]*Node, 0)
	}
	return clone
}

// Contains returns true if other is a descendant of n (or n itself).
func (n *Node) Contains(other *Node) bool {
	if n == other {
		return true
	}
	for _, child := range n.Children {
		if child.Contains(other) {
			return true
		}
	}
	return false
}

// IndexInParent returns the index of this node among its parent's children,
// or -1 if it has no parent.
func (n *Node) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// FindByID returns the first element in the subtree with the given id,
// or nil.
func (n *Node) FindByID(id string) *Node {
	if n.Type == ElementNode && n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// FindByTag collects every element in the subtree with the given tag,
// in document order.
func (n *Node) FindByTag(tag string) []*Node {
	var out []*Node
	if n.Type == ElementNode && n.Tag == tag {
		out = append(out, n)
	}
	for _, child := range n.Children {
		out = append(out, child.FindByTag(tag)...)
	}
	return out
}

// Serialize returns the serialized markup of all child nodes, without the
// node's own tags.
func (n *Node) Serialize() string {
	var sb strings.Builder
	for _, child := range n.Children {
		serializeNode(&sb, child)
	}
	return sb.String()
}

// SerializeOuter returns the node's own tags plus all descendants.
func (n *Node) SerializeOuter() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	if n.Type == TextNode {
		sb.WriteString(escapeText(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.Tag)

	// Sort attributes for deterministic output
	attrs := make(map[string]string)
	if n.ID != "" {
		attrs["id"] = n.ID
	}
	if n.StyleAttr != "" {
		attrs["style"] = n.StyleAttr
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(attrs[k]))
		sb.WriteByte('"')
	}

	sb.WriteByte('>')
	for _, child := range n.Children {
		serializeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
