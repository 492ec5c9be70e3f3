package html

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document wraps goquery.Document. Unlike Tokenizer it sees the normalized
// HTML5 tree, so implied elements (html, head, body, tbody) show up as events.
type Document struct {
	doc *goquery.Document
}

// Parse parses markup into a Document
func Parse(markup string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Document{doc: doc}, nil
}

// StyleText returns the content of every <style> element, in document
// order, each followed by a newline
func (d *Document) StyleText() string {
	var cssContent strings.Builder

	d.doc.Find(StyleTag).Each(func(_ int, s *goquery.Selection) {
		content := s.Text()
		if content != "" {
			cssContent.WriteString(content)
			cssContent.WriteString("\n")
		}
	})

	return cssContent.String()
}

// Events returns the document as an event stream
func (d *Document) Events() Source {
	var events []Event
	for _, n := range d.doc.Selection.Nodes {
		events = walk(n, events)
	}
	return Events(events...)
}

func walk(n *html.Node, events []Event) []Event {
	switch n.Type {
	case html.TextNode:
		return append(events, Event{Kind: EventText, Text: n.Data})

	case html.ElementNode:
		events = append(events, Event{Kind: EventOpen, Tag: n.Data, Attrs: attrMap(n.Attr)})
		if n.Data != StyleTag {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				events = walk(c, events)
			}
		}
		if IsVoid(n.Data) {
			return events
		}
		return append(events, Event{Kind: EventClose, Tag: n.Data})

	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			events = walk(c, events)
		}
	}

	// comments and doctypes carry nothing
	return events
}
