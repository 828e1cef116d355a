package markup

import (
	"fmt"

	"mondrian/pkg/dom"
)

// Document is one parsed scene: the element tree plus the source of every
// <script> block in document order. Scripts never appear in the tree.
type Document struct {
	Root    *dom.Node
	Scripts []string
}

// Parse builds a Document from scene markup. A scene with a single
// top-level element uses it as the root; anything else (several top-level
// elements, loose text) is wrapped in a synthetic <view>.
func Parse(src string) (*Document, error) {
	p := &parser{tokenizer: NewTokenizer(src)}
	container, err := p.run()
	if err != nil {
		return nil, err
	}
	doc := &Document{Root: container, Scripts: p.scripts}
	if len(container.Children) == 1 && container.Children[0].Type == dom.ElementNode {
		doc.Root = container.RemoveChild(container.Children[0])
	}
	return doc, nil
}

// ParseFragment parses markup into its list of top-level nodes, for
// adoption into an existing tree. Fragments have no execution context,
// so <script> blocks in them are discarded.
func ParseFragment(src string) ([]*dom.Node, error) {
	p := &parser{tokenizer: NewTokenizer(src)}
	container, err := p.run()
	if err != nil {
		return nil, err
	}
	nodes := container.Children
	for _, n := range nodes {
		n.Parent = nil
	}
	container.Children = nil
	return nodes, nil
}

type parser struct {
	tokenizer *Tokenizer
	stack     []*dom.Node
	scripts   []string
}

func (p *parser) run() (*dom.Node, error) {
	container := dom.NewElement("view")
	p.stack = []*dom.Node{container}

	for {
		token, err := p.tokenizer.Next()
		if err != nil {
			return nil, err
		}
		if token.Type == TokenEOF {
			break
		}
		switch token.Type {
		case TokenStartTag:
			if token.Tag == "script" {
				if !token.SelfClosing {
					p.scripts = append(p.scripts, p.tokenizer.ReadRawUntil("script"))
				}
				continue
			}
			node := dom.NewElement(token.Tag)
			node.ID = token.Attrs["id"]
			node.StyleAttr = token.Attrs["style"]
			p.top().AddChild(node)
			if !token.SelfClosing {
				p.stack = append(p.stack, node)
			}
		case TokenText:
			p.top().AppendText(token.Text)
		case TokenEndTag:
			p.closeTag(token.Tag)
		}
	}

	return container, nil
}

func (p *parser) top() *dom.Node {
	return p.stack[len(p.stack)-1]
}

// closeTag pops to the nearest matching open tag, implicitly closing
// everything above it. An end tag with no matching start is ignored.
func (p *parser) closeTag(tag string) {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].Tag == tag {
			p.stack = p.stack[:i]
			return
		}
	}
}

// MustParse parses src and panics on error, for scenes known to be
// well formed.
func MustParse(src string) *Document {
	doc, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("markup: %v", err))
	}
	return doc
}
