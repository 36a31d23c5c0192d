// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"encoding/binary"
	"image"
	"image/color"
	"slices"

	"golang.org/x/image/draw"

	"github.com/gogpu/bootsplash/pixbuf"
	"github.com/gogpu/bootsplash/raster"
)

// Kind identifies what a GraphNode draws.
type Kind uint8

const (
	KindTree Kind = iota
	KindRect
	KindBuffer
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTree:
		return "tree"
	case KindRect:
		return "rect"
	case KindBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// GraphNode is the single node type of Graph. One flat struct serves trees,
// rectangles and buffers; Kind says which fields are meaningful.
type GraphNode struct {
	kind     Kind
	parent   *GraphNode
	children []*GraphNode

	x, y      int
	enabled   bool
	destroyed bool

	// KindRect
	width, height int
	color         color.NRGBA

	// KindBuffer
	buffer pixbuf.Buffer
}

func newNode(kind Kind, parent *GraphNode) *GraphNode {
	n := &GraphNode{kind: kind, parent: parent, enabled: true}
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n
}

// Kind returns the node kind.
func (n *GraphNode) Kind() Kind { return n.kind }

// Position returns the position relative to the parent.
func (n *GraphNode) Position() (x, y int) { return n.x, n.y }

// Size returns the rectangle size, or the buffer size for buffer nodes.
func (n *GraphNode) Size() (width, height int) {
	if n.kind == KindBuffer && n.buffer != nil {
		return n.buffer.Size()
	}
	return n.width, n.height
}

// Color returns the fill color of a rectangle.
func (n *GraphNode) Color() color.NRGBA { return n.color }

// Enabled reports whether the node itself is enabled.
func (n *GraphNode) Enabled() bool { return n.enabled }

// Destroyed reports whether Destroy has been called.
func (n *GraphNode) Destroyed() bool { return n.destroyed }

// Parent returns the parent node, nil for the root or a detached node.
func (n *GraphNode) Parent() *GraphNode { return n.parent }

// Children returns the children in drawing order, bottom first.
func (n *GraphNode) Children() []*GraphNode { return n.children }

// Buffer returns the buffer of a buffer node.
func (n *GraphNode) Buffer() pixbuf.Buffer { return n.buffer }

// SetPosition implements Node.
func (n *GraphNode) SetPosition(x, y int) {
	if n.destroyed {
		return
	}
	n.x, n.y = x, y
}

// SetEnabled implements Node.
func (n *GraphNode) SetEnabled(enabled bool) {
	if n.destroyed {
		return
	}
	n.enabled = enabled
}

// SetSize implements Rect.
func (n *GraphNode) SetSize(width, height int) {
	if n.destroyed || n.kind != KindRect {
		return
	}
	n.width, n.height = max(width, 0), max(height, 0)
}

// RaiseToTop implements Node.
func (n *GraphNode) RaiseToTop() {
	p := n.parent
	if n.destroyed || p == nil {
		return
	}
	if i := slices.Index(p.children, n); i >= 0 {
		p.children = append(slices.Delete(p.children, i, i+1), n)
	}
}

// Destroy implements Node. Destroying the root only destroys its children.
func (n *GraphNode) Destroy() {
	if n.destroyed {
		return
	}
	for len(n.children) > 0 {
		n.children[len(n.children)-1].Destroy()
	}
	if n.parent == nil {
		return
	}
	n.destroyed = true
	n.parent.children = slices.DeleteFunc(n.parent.children, func(c *GraphNode) bool { return c == n })
	n.parent = nil
	if n.buffer != nil {
		n.buffer.Release()
		n.buffer = nil
	}
}

// NewTree implements Tree.
func (n *GraphNode) NewTree() (Tree, error) {
	if n.destroyed {
		return nil, ErrDestroyed
	}
	return newNode(KindTree, n), nil
}

// NewRect implements Tree.
func (n *GraphNode) NewRect(width, height int, c color.Color) (Rect, error) {
	if n.destroyed {
		return nil, ErrDestroyed
	}
	r := newNode(KindRect, n)
	r.width, r.height = max(width, 0), max(height, 0)
	r.color = color.NRGBAModel.Convert(c).(color.NRGBA)
	return r, nil
}

// NewBuffer implements Tree.
func (n *GraphNode) NewBuffer(buf pixbuf.Buffer) (Node, error) {
	if n.destroyed {
		return nil, ErrDestroyed
	}
	if buf == nil {
		return nil, ErrNilBuffer
	}
	b := newNode(KindBuffer, n)
	b.buffer = buf.Retain()
	return b, nil
}

// Pointer is a Cursor that records the requested cursor state.
type Pointer struct {
	hidden bool
	image  string
}

// Hide implements Cursor.
func (p *Pointer) Hide() {
	p.hidden = true
	p.image = ""
}

// ShowDefault implements Cursor.
func (p *Pointer) ShowDefault() {
	p.hidden = false
	p.image = "default"
}

// Hidden reports whether the cursor image is unset.
func (p *Pointer) Hidden() bool { return p.hidden }

// Image returns the name of the cursor image, empty when hidden or unset.
func (p *Pointer) Image() string { return p.image }

// Graph is an in-memory scene graph with a fixed set of outputs.
type Graph struct {
	root    *GraphNode
	outputs []Output
	pointer *Pointer
}

// NewGraph returns an empty graph displaying on outputs.
func NewGraph(outputs ...Output) *Graph {
	return &Graph{
		root:    newNode(KindTree, nil),
		outputs: slices.Clone(outputs),
		pointer: &Pointer{image: "default"},
	}
}

// Root returns the root tree.
func (g *Graph) Root() Tree { return g.root }

// RootNode returns the root as its concrete type.
func (g *Graph) RootNode() *GraphNode { return g.root }

// Outputs returns the configured outputs.
func (g *Graph) Outputs() []Output { return g.outputs }

// SetOutputs replaces the output list, for example after a hotplug.
func (g *Graph) SetOutputs(outputs ...Output) { g.outputs = slices.Clone(outputs) }

// Cursor returns the graph's pointer.
func (g *Graph) Cursor() Cursor { return g.pointer }

// Pointer returns the pointer as its concrete type.
func (g *Graph) Pointer() *Pointer { return g.pointer }

// Render composites every enabled node onto dst, bottom first. dst is not
// cleared beforehand.
func (g *Graph) Render(dst draw.Image) {
	renderNode(dst, g.root, image.Point{})
}

func renderNode(dst draw.Image, n *GraphNode, origin image.Point) {
	if !n.enabled {
		return
	}
	at := origin.Add(image.Pt(n.x, n.y))
	switch n.kind {
	case KindTree:
		for _, c := range n.children {
			renderNode(dst, c, at)
		}
	case KindRect:
		r := image.Rectangle{Min: at, Max: at.Add(image.Pt(n.width, n.height))}
		draw.Draw(dst, r, image.NewUniform(n.color), image.Point{}, draw.Over)
	case KindBuffer:
		src := bufferImage(n.buffer)
		if src == nil {
			return
		}
		draw.Draw(dst, src.Bounds().Add(at), src, image.Point{}, draw.Over)
	}
}

// bufferImage unpacks an ARGB8888 buffer into an NRGBA image.
func bufferImage(buf pixbuf.Buffer) *image.NRGBA {
	data, format, stride, err := buf.Lock()
	if err != nil {
		return nil
	}
	defer buf.Unlock()
	if format != raster.FormatARGB8888 {
		return nil
	}

	w, h := buf.Size()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		row := data[y*stride:]
		for x := range w {
			r, g, b, a := raster.UnpackARGB8888(binary.LittleEndian.Uint32(row[x*4:]))
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
		}
	}
	return img
}
