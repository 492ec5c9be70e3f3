package render

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/makhembu/pdf-light/internal/css"
	"github.com/makhembu/pdf-light/internal/html"
	"github.com/makhembu/pdf-light/internal/resolver"
)

// Stats counts what a Builder saw
type Stats struct {
	Elements      int // open events received
	Nodes         int // nodes created, text included
	Unsupported   int // open events without a node
	DiscardedText int // text runs dropped at root level or as blank
}

// Builder assembles render nodes from open, text and close events using an
// explicit stack of open nodes. It is not safe for concurrent use.
type Builder struct {
	resolver *resolver.Resolver
	log      *zap.Logger

	stack []*Node
	roots []*Node
	stats Stats
}

// NewBuilder creates a builder resolving styles with res
func NewBuilder(res *resolver.Resolver, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		resolver: res,
		log:      log.Named("builder"),
		roots:    make([]*Node, 0),
	}
}

// Run drains src and returns the root nodes
func (b *Builder) Run(src html.Source) []*Node {
	for {
		ev, ok := src.Next()
		if !ok {
			break
		}
		switch ev.Kind {
		case html.EventOpen:
			b.Open(ev.Tag, ev.Attrs)
		case html.EventText:
			b.Text(ev.Text)
		case html.EventClose:
			b.Close(ev.Tag)
		}
	}

	if len(b.stack) > 0 {
		b.log.Debug("Unclosed elements at end of input", zap.Int("open", len(b.stack)))
	}
	return b.roots
}

// Open handles an opening tag. Unsupported tags leave no trace: their
// descendants attach where the tag itself would have.
func (b *Builder) Open(tag string, attrs map[string]string) {
	b.stats.Elements++

	t := LookupTag(tag)
	if !t.Supported() {
		b.stats.Unsupported++
		b.log.Debug("Skipping unsupported tag", zap.String("tag", tag))
		return
	}

	styles := b.resolver.Resolve(tag, attrs, css.ParseClassList(attrs["class"]), attrs["id"])
	node, _ := newNode(t, tag, attrs, styles)
	b.attach(node)

	if !html.IsVoid(tag) {
		b.stack = append(b.stack, node)
	}
}

// Text handles a run of decoded character data
func (b *Builder) Text(raw string) {
	top := b.top()
	if top == nil {
		b.stats.DiscardedText++
		return
	}

	collapsed := CollapseWhitespace(raw)
	if strings.TrimSpace(collapsed) == "" {
		b.stats.DiscardedText++
		return
	}

	b.stats.Nodes++
	top.AppendChild(&Node{Kind: KindText, Styles: top.Styles, Text: collapsed})
}

// Close handles a closing tag by popping the stack. The popped node's tag is
// not checked against the closing tag. Void, style and unsupported tags never
// pushed anything and are ignored. For unsupported tags this takes precedence
// over the pop: the element must leave no trace, so its close cannot end the
// enclosing element.
func (b *Builder) Close(tag string) {
	if html.IsVoid(tag) || tag == html.StyleTag || !LookupTag(tag).Supported() {
		return
	}
	if len(b.stack) == 0 {
		b.log.Debug("Close without open element", zap.String("tag", tag))
		return
	}

	top := b.stack[len(b.stack)-1]
	if top.Tag != tag {
		b.log.Debug("Mismatched close", zap.String("tag", tag), zap.String("open", top.Tag))
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// Roots returns the root nodes built so far
func (b *Builder) Roots() []*Node {
	return b.roots
}

// Stats returns the counters collected so far
func (b *Builder) Stats() Stats {
	return b.stats
}

func (b *Builder) top() *Node {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) attach(node *Node) {
	b.stats.Nodes++
	if top := b.top(); top != nil {
		top.AppendChild(node)
		return
	}
	b.roots = append(b.roots, node)
}

// CollapseWhitespace replaces every run of white space with a single space.
// Leading and trailing runs are collapsed, not removed.
func CollapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				sb.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		sb.WriteRune(r)
	}
	return sb.String()
}
