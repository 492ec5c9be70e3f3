package resolver

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Property identifies one of the style properties a render node carries
type Property uint16

const (
	PropFontSize Property = 1 << iota
	PropFontFamily
	PropFontWeight
	PropColor
	PropTextAlign
	PropMarginTop
	PropMarginBottom
	PropBackgroundColor
	PropBorderBottom
	PropPadding
	PropWidth
)

// AllProperties lists every property in output order
var AllProperties = []Property{
	PropFontSize,
	PropFontFamily,
	PropFontWeight,
	PropColor,
	PropTextAlign,
	PropMarginTop,
	PropMarginBottom,
	PropBackgroundColor,
	PropBorderBottom,
	PropPadding,
	PropWidth,
}

// String returns the CSS name of the property
func (p Property) String() string {
	switch p {
	case PropFontSize:
		return "font-size"
	case PropFontFamily:
		return "font-family"
	case PropFontWeight:
		return "font-weight"
	case PropColor:
		return "color"
	case PropTextAlign:
		return "text-align"
	case PropMarginTop:
		return "margin-top"
	case PropMarginBottom:
		return "margin-bottom"
	case PropBackgroundColor:
		return "background-color"
	case PropBorderBottom:
		return "border-bottom"
	case PropPadding:
		return "padding"
	case PropWidth:
		return "width"
	default:
		return fmt.Sprintf("Property(%d)", uint16(p))
	}
}

// Weight is the resolved font weight
type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
)

func (w Weight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "normal"
}

// Align is a text-align value. Known values have constants, anything else
// is carried verbatim.
type Align string

const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// Styles is the resolved style of one element. It is a plain value: copying
// it yields an independent snapshot. Numeric properties that could not be
// parsed hold NaN.
type Styles struct {
	FontSize        float64
	FontFamily      string
	FontWeight      Weight
	Color           string
	TextAlign       Align
	MarginTop       float64
	MarginBottom    float64
	BackgroundColor string
	BorderBottom    string
	Padding         float64
	Width           string

	set Property
}

// Has reports whether p has been assigned
func (s Styles) Has(p Property) bool {
	return s.set&p != 0
}

func (s *Styles) SetFontSize(v float64) { s.FontSize = v; s.set |= PropFontSize }

func (s *Styles) SetFontFamily(v string) { s.FontFamily = v; s.set |= PropFontFamily }

func (s *Styles) SetFontWeight(v Weight) { s.FontWeight = v; s.set |= PropFontWeight }

func (s *Styles) SetColor(v string) { s.Color = v; s.set |= PropColor }

func (s *Styles) SetTextAlign(v Align) { s.TextAlign = v; s.set |= PropTextAlign }

func (s *Styles) SetMarginTop(v float64) { s.MarginTop = v; s.set |= PropMarginTop }

func (s *Styles) SetMarginBottom(v float64) { s.MarginBottom = v; s.set |= PropMarginBottom }

func (s *Styles) SetBackgroundColor(v string) { s.BackgroundColor = v; s.set |= PropBackgroundColor }

func (s *Styles) SetBorderBottom(v string) { s.BorderBottom = v; s.set |= PropBorderBottom }

func (s *Styles) SetPadding(v float64) { s.Padding = v; s.set |= PropPadding }

func (s *Styles) SetWidth(v string) { s.Width = v; s.set |= PropWidth }

// Value returns the typed value of p, or nil when p is not set
func (s Styles) Value(p Property) any {
	if !s.Has(p) {
		return nil
	}
	switch p {
	case PropFontSize:
		return s.FontSize
	case PropFontFamily:
		return s.FontFamily
	case PropFontWeight:
		return s.FontWeight.String()
	case PropColor:
		return s.Color
	case PropTextAlign:
		return string(s.TextAlign)
	case PropMarginTop:
		return s.MarginTop
	case PropMarginBottom:
		return s.MarginBottom
	case PropBackgroundColor:
		return s.BackgroundColor
	case PropBorderBottom:
		return s.BorderBottom
	case PropPadding:
		return s.Padding
	case PropWidth:
		return s.Width
	}
	return nil
}

// Properties returns the assigned properties in output order
func (s Styles) Properties() []Property {
	props := make([]Property, 0, len(AllProperties))
	for _, p := range AllProperties {
		if s.Has(p) {
			props = append(props, p)
		}
	}
	return props
}

// String renders the assigned properties as a declaration list
func (s Styles) String() string {
	parts := make([]string, 0, len(AllProperties))
	for _, p := range s.Properties() {
		parts = append(parts, p.String()+": "+formatValue(s.Value(p)))
	}
	return strings.Join(parts, "; ")
}

func formatValue(v any) string {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) {
			return "NaN"
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
