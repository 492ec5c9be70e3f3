package render

import (
	"fmt"

	tp "github.com/xlab/treeprint"
	"gopkg.in/yaml.v3"

	"github.com/makhembu/pdf-light/internal/resolver"
)

// Dump renders a forest as an indented tree, one line per node
func Dump(nodes []*Node) string {
	printer := tp.New()
	for _, n := range nodes {
		printNode(printer, n)
	}
	return printer.String()
}

func printNode(printer tp.Tree, n *Node) {
	if !n.Kind.IsContainer() {
		printer.AddNode(n.label())
		return
	}
	branch := printer.AddBranch(n.label())
	for _, c := range n.Children {
		printNode(branch, c)
	}
}

func (n *Node) label() string {
	var s string
	switch n.Kind {
	case KindText:
		s = fmt.Sprintf("text %q", n.Text)
	case KindImage:
		s = fmt.Sprintf("image <%s> src=%q", n.Tag, n.Src)
	default:
		s = fmt.Sprintf("%s <%s>", n.Kind, n.Tag)
	}
	if n.Kind != KindText && len(n.Styles.Properties()) > 0 {
		s += " {" + n.Styles.String() + "}"
	}
	return s
}

// MarshalYAML encodes a forest as a YAML sequence
func MarshalYAML(nodes []*Node) ([]byte, error) {
	out, err := yaml.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nodes: %w", err)
	}
	return out, nil
}

type yamlNode struct {
	Kind     string     `yaml:"kind"`
	Tag      string     `yaml:"tag,omitempty"`
	Text     string     `yaml:"text,omitempty"`
	Src      string     `yaml:"src,omitempty"`
	Styles   *yaml.Node `yaml:"styles,omitempty"`
	Children []*Node    `yaml:"children,omitempty"`
}

// MarshalYAML implements yaml.Marshaler. Styles keep their property order;
// text nodes omit them since they repeat the parent's.
func (n *Node) MarshalYAML() (any, error) {
	out := yamlNode{
		Kind:     n.Kind.String(),
		Tag:      n.Tag,
		Text:     n.Text,
		Src:      n.Src,
		Children: n.Children,
	}
	if n.Kind != KindText {
		styles, err := stylesNode(n.Styles)
		if err != nil {
			return nil, err
		}
		out.Styles = styles
	}
	return out, nil
}

func stylesNode(s resolver.Styles) (*yaml.Node, error) {
	props := s.Properties()
	if len(props) == 0 {
		return nil, nil
	}

	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range props {
		value := &yaml.Node{}
		if err := value.Encode(s.Value(p)); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", p, err)
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: p.String()}, value)
	}
	return m, nil
}
