package html

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tokenizer is a streaming Source over golang.org/x/net/html. Tag and
// attribute names come out lowercased, entities decoded. Comments and
// doctypes are skipped, and so is the content of style blocks, which
// belongs to the extractor.
type Tokenizer struct {
	z       *html.Tokenizer
	pending []Event
	inStyle bool
}

// NewTokenizer creates an event source over markup
func NewTokenizer(markup string) *Tokenizer {
	return &Tokenizer{z: html.NewTokenizer(strings.NewReader(markup))}
}

// Next returns the next event in document order
func (t *Tokenizer) Next() (Event, bool) {
	if len(t.pending) > 0 {
		ev := t.pending[0]
		t.pending = t.pending[1:]
		return ev, true
	}

	for {
		switch t.z.Next() {
		case html.ErrorToken:
			// io.EOF or a reader error, either way the stream is over
			return Event{}, false

		case html.StartTagToken:
			tok := t.z.Token()
			if tok.DataAtom == atom.Style {
				t.inStyle = true
			}
			return Event{Kind: EventOpen, Tag: tok.Data, Attrs: attrMap(tok.Attr)}, true

		case html.SelfClosingTagToken:
			tok := t.z.Token()
			if tok.DataAtom == atom.Style {
				// <style/> still switches the tokenizer to raw text up to
				// the next </style>, which closes it
				t.inStyle = true
			} else if !IsVoid(tok.Data) {
				// <div/> opens and closes in one go
				t.pending = append(t.pending, Event{Kind: EventClose, Tag: tok.Data})
			}
			return Event{Kind: EventOpen, Tag: tok.Data, Attrs: attrMap(tok.Attr)}, true

		case html.EndTagToken:
			tok := t.z.Token()
			if tok.DataAtom == atom.Style {
				t.inStyle = false
			}
			return Event{Kind: EventClose, Tag: tok.Data}, true

		case html.TextToken:
			if t.inStyle {
				continue
			}
			return Event{Kind: EventText, Text: t.z.Token().Data}, true
		}
	}
}

// attrMap flattens attributes; the first occurrence of a duplicate wins
func attrMap(attrs []html.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if _, exists := m[a.Key]; !exists {
			m[a.Key] = a.Val
		}
	}
	return m
}

// ExtractStyleText returns the content of every <style> block in markup, in
// order of appearance, each followed by a newline.
//
// The tokenizer reads style content as raw text, so the first "</style" ends
// a block even when it appears inside a CSS string. Style blocks do not nest,
// and a block that is never closed is ignored.
func ExtractStyleText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var (
		out       strings.Builder
		block     strings.Builder
		capturing bool
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			return out.String()

		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == StyleTag && !capturing {
				capturing = true
				block.Reset()
			}

		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == StyleTag && capturing {
				capturing = false
				if block.Len() > 0 {
					out.WriteString(block.String())
					out.WriteByte('\n')
				}
			}

		case html.TextToken:
			if capturing {
				block.Write(z.Text())
			}
		}
	}
}
