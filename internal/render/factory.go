package render

import "github.com/makhembu/pdf-light/internal/resolver"

// CreateNode turns an element into a render node. The second result is false
// when the tag is not supported, in which case no node exists.
//
// Presentational attributes are applied over the resolved styles: width and
// cellpadding on tables, align and width on cells. strong and b are always
// bold; em and i are accepted without any extra styling.
func CreateNode(tag string, attrs map[string]string, styles resolver.Styles) (*Node, bool) {
	return newNode(LookupTag(tag), tag, attrs, styles)
}

func newNode(t Tag, tag string, attrs map[string]string, styles resolver.Styles) (*Node, bool) {
	kind, ok := t.Kind()
	if !ok {
		return nil, false
	}

	switch t {
	case TagBr:
		return &Node{Kind: kind, Tag: tag, Styles: styles}, true

	case TagImg:
		return &Node{Kind: kind, Tag: tag, Styles: styles, Src: attrs["src"]}, true

	case TagTable:
		if w, ok := attrs["width"]; ok {
			styles.SetWidth(w)
		}
		if p, ok := attrs["cellpadding"]; ok {
			styles.SetPadding(resolver.ParseFloat(p))
		}

	case TagTd, TagTh:
		if a, ok := attrs["align"]; ok {
			styles.SetTextAlign(resolver.Align(a))
		}
		if w, ok := attrs["width"]; ok {
			styles.SetWidth(w)
		}

	case TagStrong, TagB:
		styles.SetFontWeight(resolver.WeightBold)
	}

	return newContainer(kind, tag, styles), true
}
