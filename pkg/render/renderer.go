// Package render paints a laid-out scene into an image. The painter
// walks the element tree and its layout tree side by side: fragment
// indices in the layout tree select the source child each box came
// from, so backgrounds take that element's style and text takes the
// nearest element's color.
package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"mondrian/pkg/dom"
	"mondrian/pkg/layout"
	"mondrian/pkg/style"
)

type Renderer struct {
	context *gg.Context
	font    *truetype.Font
	faces   map[float64]font.Face
}

// NewRenderer builds a painter for a width x height canvas. fontData is
// the TTF used for all text, typically text.Collection.DefaultData().
func NewRenderer(width, height int, fontData []byte) (*Renderer, error) {
	parsed, err := truetype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %w", err)
	}
	return &Renderer{
		context: gg.NewContext(width, height),
		font:    parsed,
		faces:   make(map[float64]font.Face),
	}, nil
}

// Draw paints the scene onto a white canvas. root must be the element
// the layout tree was computed from, with styles resolved.
func (r *Renderer) Draw(root *dom.Node, tree *layout.LayoutTreeNode) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	r.drawNode(root, tree, 0, 0)
}

func (r *Renderer) drawNode(node *dom.Node, tree *layout.LayoutTreeNode, x, y float64) {
	if node.Type == dom.ElementNode {
		if st := node.Style(); st != nil && st.Background.A > 0 {
			r.setColor(st.Background)
			r.context.DrawRectangle(x, y, tree.Size.Width, tree.Size.Height)
			r.context.Fill()
		}
	}
	if tree.RenderText != nil && tree.RenderText.Text != "" {
		r.drawText(tree.RenderText, x, y, textColor(node))
	}
	for _, child := range tree.Children {
		src := node
		if node.Type == dom.ElementNode && child.Index < len(node.Children) {
			src = node.Children[child.Index]
		}
		r.drawNode(src, child.Layout, x+child.Position.X, y+child.Position.Y)
	}
}

func (r *Renderer) drawText(t *layout.LayoutText, x, y float64, c style.Color) {
	face := r.faceFor(t.Size)
	r.context.SetFontFace(face)
	r.setColor(c)
	// DrawString positions the baseline; the layout box top is the
	// ascender line.
	ascent := float64(face.Metrics().Ascent) / 64
	r.context.DrawString(t.Text, x, y+ascent)
}

func (r *Renderer) faceFor(size float64) font.Face {
	if face, ok := r.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(r.font, &truetype.Options{Size: size, DPI: 72})
	r.faces[size] = face
	return face
}

func (r *Renderer) setColor(c style.Color) {
	r.context.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}

// textColor picks the color a text payload is drawn with: the node's own
// resolved color for an element, otherwise the parent element's.
func textColor(node *dom.Node) style.Color {
	if node.Type == dom.ElementNode {
		if st := node.Style(); st != nil {
			return st.TextColor
		}
	}
	if node.Parent != nil {
		if st := node.Parent.Style(); st != nil {
			return st.TextColor
		}
	}
	return style.Black
}

// Image returns the canvas. The pixels are valid until the next Draw.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(path string) error {
	return r.context.SavePNG(path)
}
