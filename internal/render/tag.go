package render

import "golang.org/x/net/html/atom"

// Tag is the closed set of element names the converter turns into nodes.
// Anything outside the set is TagUnsupported.
type Tag int

const (
	TagUnsupported Tag = iota
	TagBr
	TagImg
	TagTable
	TagThead
	TagTbody
	TagTr
	TagTd
	TagTh
	TagH1
	TagH2
	TagH3
	TagH4
	TagH5
	TagH6
	TagP
	TagDiv
	TagSpan
	TagStrong
	TagB
	TagEm
	TagI
)

// LookupTag maps an element name to its Tag
func LookupTag(name string) Tag {
	switch atom.Lookup([]byte(name)) {
	case atom.Br:
		return TagBr
	case atom.Img:
		return TagImg
	case atom.Table:
		return TagTable
	case atom.Thead:
		return TagThead
	case atom.Tbody:
		return TagTbody
	case atom.Tr:
		return TagTr
	case atom.Td:
		return TagTd
	case atom.Th:
		return TagTh
	case atom.H1:
		return TagH1
	case atom.H2:
		return TagH2
	case atom.H3:
		return TagH3
	case atom.H4:
		return TagH4
	case atom.H5:
		return TagH5
	case atom.H6:
		return TagH6
	case atom.P:
		return TagP
	case atom.Div:
		return TagDiv
	case atom.Span:
		return TagSpan
	case atom.Strong:
		return TagStrong
	case atom.B:
		return TagB
	case atom.Em:
		return TagEm
	case atom.I:
		return TagI
	default:
		return TagUnsupported
	}
}

// Kind returns the node kind a tag produces. The second result is false for
// TagUnsupported.
func (t Tag) Kind() (Kind, bool) {
	switch t {
	case TagBr:
		return KindBreak, true
	case TagImg:
		return KindImage, true
	case TagTable:
		return KindTable, true
	case TagTr:
		return KindRow, true
	case TagTd, TagTh:
		return KindCell, true
	case TagThead, TagTbody,
		TagH1, TagH2, TagH3, TagH4, TagH5, TagH6, TagP, TagDiv,
		TagSpan, TagStrong, TagB, TagEm, TagI:
		return KindBlock, true
	case TagUnsupported:
		return 0, false
	}
	return 0, false
}

// Supported reports whether the tag produces a node
func (t Tag) Supported() bool {
	_, ok := t.Kind()
	return ok
}
