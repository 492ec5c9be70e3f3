package render

import "github.com/makhembu/pdf-light/internal/resolver"

// Kind is the variant of a render node
type Kind int

const (
	KindText Kind = iota
	KindBreak
	KindImage
	KindTable
	KindRow
	KindCell
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBreak:
		return "break"
	case KindImage:
		return "image"
	case KindTable:
		return "table"
	case KindRow:
		return "row"
	case KindCell:
		return "cell"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// IsContainer reports whether nodes of this kind hold children
func (k Kind) IsContainer() bool {
	switch k {
	case KindTable, KindRow, KindCell, KindBlock:
		return true
	}
	return false
}

// Node is the output unit handed to the layout engine.
//
// Text is set for text nodes and Src for images. Container kinds always have
// a non-nil Children slice; text, break and image nodes never have children.
// A node is owned by exactly one parent, or is a root.
type Node struct {
	Kind     Kind
	Tag      string // source element name, empty for text
	Styles   resolver.Styles
	Text     string
	Src      string
	Children []*Node
}

func newContainer(kind Kind, tag string, styles resolver.Styles) *Node {
	return &Node{Kind: kind, Tag: tag, Styles: styles, Children: make([]*Node, 0)}
}

// AppendChild adds child as the last child of n
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Walk calls fn for n and every descendant in document order, passing the
// depth below n
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// TextContent concatenates the text of all text nodes below n
func (n *Node) TextContent() string {
	var s string
	n.Walk(func(node *Node, _ int) {
		if node.Kind == KindText {
			s += node.Text
		}
	})
	return s
}
