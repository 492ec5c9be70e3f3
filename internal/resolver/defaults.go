package resolver

// Baseline user agent values applied to every element before any author rule
const (
	DefaultFontSize   = 12
	DefaultFontFamily = "body"
	DefaultColor      = "#000000"
)

// headingDefaults holds the per-tag user agent overrides
var headingDefaults = map[string]struct {
	fontSize     float64
	bold         bool
	marginBottom float64
}{
	"h1": {fontSize: 24, bold: true, marginBottom: 10},
	"h2": {fontSize: 20, bold: true, marginBottom: 10},
	"h3": {fontSize: 18, bold: true, marginBottom: 8},
}

// UserAgent returns the built-in style of tag
func UserAgent(tag string) Styles {
	var s Styles
	s.SetFontSize(DefaultFontSize)
	s.SetFontFamily(DefaultFontFamily)
	s.SetFontWeight(WeightNormal)
	s.SetColor(DefaultColor)
	s.SetTextAlign(AlignLeft)
	s.SetMarginTop(0)
	s.SetMarginBottom(0)

	if h, ok := headingDefaults[tag]; ok {
		s.SetFontSize(h.fontSize)
		if h.bold {
			s.SetFontWeight(WeightBold)
		}
		s.SetMarginBottom(h.marginBottom)
	}
	if tag == "p" {
		s.SetMarginBottom(10)
	}
	return s
}
