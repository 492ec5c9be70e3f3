package css

import (
	"slices"
	"strings"
)

// Element is what a selector is tested against
type Element struct {
	Tag     string
	ID      string
	Classes []string
}

// Matches reports whether the rule's selector applies to el
func (r Rule) Matches(el Element) bool {
	return MatchSelector(r.Selector, el)
}

// MatchSelector tests a single selector against an element. Three forms are
// supported: ".class", "#id" and a bare tag name. There is no specificity and
// no combinators, anything else never matches.
func MatchSelector(selector string, el Element) bool {
	switch {
	case strings.HasPrefix(selector, "."):
		return slices.Contains(el.Classes, selector[1:])
	case strings.HasPrefix(selector, "#"):
		return el.ID != "" && el.ID == selector[1:]
	default:
		return selector == el.Tag
	}
}

// ParseClassList splits a class attribute value into class names
func ParseClassList(class string) []string {
	return strings.Fields(class)
}
