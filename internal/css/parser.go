package css

import (
	"strings"

	"go.uber.org/zap"
)

// Parser splits style text into ordered rules. It keeps no state between
// calls and may be shared.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses concatenated style text into a Stylesheet.
//
// Only flat "selector { declarations }" blocks are understood. The scanner
// tracks brace depth: a block that contains another "{" is nested, which is
// not supported, and the whole outer block is dropped. A block left open at
// end of input is dropped as well. Comments and at-rules are not recognized
// and end up as selector text that never matches.
func (p *Parser) Parse(cssText string) *Stylesheet {
	sheet := &Stylesheet{
		Rules: make([]Rule, 0),
	}

	var (
		selector strings.Builder
		current  string
		depth    int
		start    int
		nested   bool
	)

	for i := 0; i < len(cssText); i++ {
		switch c := cssText[i]; c {
		case '{':
			if depth == 0 {
				current = selector.String()
				selector.Reset()
				start = i + 1
				nested = false
			} else {
				nested = true
			}
			depth++
		case '}':
			if depth == 0 {
				// stray closing brace, part of the next selector
				selector.WriteByte(c)
				continue
			}
			depth--
			if depth > 0 {
				continue
			}
			if nested {
				p.warn(sheet, "nested block is not supported", strings.TrimSpace(current))
				continue
			}
			p.addRule(sheet, current, cssText[start:i])
		default:
			if depth == 0 {
				selector.WriteByte(c)
			}
		}
	}

	if depth > 0 {
		p.warn(sheet, "unterminated block", strings.TrimSpace(current))
	}

	p.log.Debug("Parsed style text", zap.Int("bytes", len(cssText)), zap.Int("rules", len(sheet.Rules)))
	return sheet
}

// addRule appends one "selector { body }" block to the stylesheet
func (p *Parser) addRule(sheet *Stylesheet, selectorText, body string) {
	selector := strings.TrimSpace(selectorText)
	if selector == "" || strings.TrimSpace(body) == "" {
		p.warn(sheet, "empty rule", selector)
		return
	}

	sheet.Rules = append(sheet.Rules, Rule{
		Selector:     selector,
		Declarations: p.ParseDeclarations(body),
		SourceOrder:  len(sheet.Rules),
	})
}

// ParseDeclarations parses a declaration block or an inline style attribute.
// Declarations are split on ";" and then on the first ":"; both sides are
// trimmed and a declaration missing either side is discarded.
func (p *Parser) ParseDeclarations(text string) Declarations {
	var decls Declarations
	if strings.TrimSpace(text) == "" {
		return decls
	}

	for part := range strings.SplitSeq(text, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		property, value, _ := strings.Cut(part, ":")
		property = strings.TrimSpace(property)
		value = strings.TrimSpace(value)
		if property == "" || value == "" {
			p.log.Debug("Dropping declaration", zap.String("declaration", strings.TrimSpace(part)))
			continue
		}

		decls.Set(property, value)
	}

	return decls
}

func (p *Parser) warn(sheet *Stylesheet, msg, selector string) {
	sheet.Warnings = append(sheet.Warnings, msg+": "+selector)
	p.log.Debug("Dropping style block", zap.String("reason", msg), zap.String("selector", selector))
}
