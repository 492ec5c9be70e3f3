package resolver

import (
	"math"
	"strings"

	strconvx "github.com/tdewolff/parse/v2/strconv"
	"go.uber.org/zap"

	"github.com/makhembu/pdf-light/internal/css"
)

// Resolver computes the final styles of elements for one conversion. It is
// built from that conversion's stylesheet and must not outlive it.
type Resolver struct {
	stylesheet *css.Stylesheet
	parser     *css.Parser
	log        *zap.Logger
}

// New creates a new style resolver over stylesheet
func New(stylesheet *css.Stylesheet, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		stylesheet: stylesheet,
		parser:     css.NewParser(log),
		log:        log.Named("resolver"),
	}
}

// Resolve computes the styles for an element: user agent defaults, then
// every matching rule in document order, then the inline style attribute.
func (r *Resolver) Resolve(tag string, attrs map[string]string, classes []string, id string) Styles {
	el := css.Element{Tag: tag, ID: id, Classes: classes}

	matched := r.stylesheet.Matching(el)
	inline := r.parser.ParseDeclarations(attrs["style"])

	if len(matched) > 0 {
		r.log.Debug("Matched rules", zap.String("tag", tag), zap.Int("rules", len(matched)))
	}

	return Merge(UserAgent(tag), matched, inline)
}

// Merge layers matched rule declarations and then inline declarations over
// defaults. Each layer overwrites properties set by the previous one.
func Merge(defaults Styles, matched []css.Declarations, inline css.Declarations) Styles {
	out := defaults
	for _, decls := range matched {
		Apply(&out, decls)
	}
	Apply(&out, inline)
	return out
}

// Apply assigns every recognized declaration to s in order. Unknown
// properties are ignored.
func Apply(s *Styles, decls css.Declarations) {
	for _, decl := range decls {
		applyDeclaration(s, decl.Property, decl.Value)
	}
}

func applyDeclaration(s *Styles, property, value string) {
	switch property {
	case "font-size":
		s.SetFontSize(ParseFloat(value))
	case "color":
		s.SetColor(value)
	case "text-align":
		s.SetTextAlign(Align(value))
	case "font-weight":
		if value == "bold" {
			s.SetFontWeight(WeightBold)
		} else {
			s.SetFontWeight(WeightNormal)
		}
	case "margin-top":
		s.SetMarginTop(ParseFloat(value))
	case "margin-bottom":
		s.SetMarginBottom(ParseFloat(value))
	case "margin":
		m := ParseFloat(value)
		s.SetMarginTop(m)
		s.SetMarginBottom(m)
	case "background-color":
		s.SetBackgroundColor(value)
	case "border-bottom":
		s.SetBorderBottom(value)
	case "padding":
		s.SetPadding(ParseFloat(value))
	case "width":
		s.SetWidth(value)
	}
}

// ParseFloat extracts the leading number of a CSS value, so "12px" is 12 and
// ".5em" is 0.5. Surrounding whitespace is ignored and units are not
// interpreted. A value without a numeric prefix yields NaN.
func ParseFloat(value string) float64 {
	f, n := strconvx.ParseFloat([]byte(strings.TrimSpace(value)))
	if n == 0 {
		return math.NaN()
	}
	return f
}
