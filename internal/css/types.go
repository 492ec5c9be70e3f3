package css

import (
	"fmt"
	"strings"
)

// Declaration represents a single CSS property declaration
type Declaration struct {
	Property string // CSS property name, as written
	Value    string // raw CSS property value, trimmed
}

func (d Declaration) String() string {
	return fmt.Sprintf("%s: %s", d.Property, d.Value)
}

// Declarations is an ordered declaration block. Setting a property that is
// already present replaces its value in place, so iteration order is the
// order in which each property first appeared.
type Declarations []Declaration

// Set adds or replaces the value of property
func (d *Declarations) Set(property, value string) {
	for i := range *d {
		if (*d)[i].Property == property {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, Declaration{Property: property, Value: value})
}

func (d Declarations) String() string {
	parts := make([]string, 0, len(d))
	for _, decl := range d {
		parts = append(parts, decl.String())
	}
	return strings.Join(parts, "; ")
}

// Rule represents a single CSS rule with its selector and declarations
type Rule struct {
	Selector     string       // Trimmed selector text
	Declarations Declarations // Declarations in source order
	SourceOrder  int          // Position in the concatenated style text
}

// Stylesheet is the ordered rule list of one conversion. Later rules win ties.
type Stylesheet struct {
	Rules    []Rule   // All CSS rules in source order
	Warnings []string // Blocks and declarations that were dropped
}

// Matching returns the declaration blocks of every rule matching el, in
// document order.
func (s *Stylesheet) Matching(el Element) []Declarations {
	if s == nil {
		return nil
	}
	var matched []Declarations
	for _, rule := range s.Rules {
		if rule.Matches(el) {
			matched = append(matched, rule.Declarations)
		}
	}
	return matched
}

// String renders the stylesheet back to CSS text in source order
func (s *Stylesheet) String() string {
	var sb strings.Builder
	for _, rule := range s.Rules {
		fmt.Fprintf(&sb, "%s { %s }\n", rule.Selector, rule.Declarations)
	}
	return sb.String()
}
