package css_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/makhembu/pdf-light/internal/css"
)

func TestParser_ElementSelector(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse(`p { color: blue; margin-bottom: 4px }`)

	require.Len(t, sheet.Rules, 1)
	rule := sheet.Rules[0]
	assert.Equal(t, "p", rule.Selector)
	assert.Equal(t, css.Declarations{
		{Property: "color", Value: "blue"},
		{Property: "margin-bottom", Value: "4px"},
	}, rule.Declarations)
}

func TestParser_PreservesBlockOrder(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse("h1 { color: red }\n.note { color: green }\n#main { color: blue }")

	require.Len(t, sheet.Rules, 3)
	for i, want := range []string{"h1", ".note", "#main"} {
		assert.Equal(t, want, sheet.Rules[i].Selector)
		assert.Equal(t, i, sheet.Rules[i].SourceOrder)
	}
}

func TestParser_DropsIncompleteDeclarations(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse(`div { color: ; : red; width; padding: 4 ;; font-size : 14px }`)

	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, css.Declarations{
		{Property: "padding", Value: "4"},
		{Property: "font-size", Value: "14px"},
	}, sheet.Rules[0].Declarations)
}

func TestParser_SplitsOnFirstColon(t *testing.T) {
	p := css.NewParser(nil)

	decls := p.ParseDeclarations(`background-color: url(http://x/y.png)`)

	assert.Equal(t, css.Declarations{
		{Property: "background-color", Value: "url(http://x/y.png)"},
	}, decls)
}

func TestParser_DuplicatePropertyKeepsFirstPosition(t *testing.T) {
	p := css.NewParser(nil)

	decls := p.ParseDeclarations(`margin: 5; margin-top: 2; margin: 7`)

	assert.Equal(t, css.Declarations{
		{Property: "margin", Value: "7"},
		{Property: "margin-top", Value: "2"},
	}, decls)
}

func TestParser_NestedBlockIsDropped(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse(`@media print { p { color: red } } .x { color: green }`)

	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, ".x", sheet.Rules[0].Selector)
	require.Len(t, sheet.Warnings, 1)
	assert.Contains(t, sheet.Warnings[0], "nested")
}

func TestParser_UnterminatedBlockIsDropped(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse(`p { color: red } div { color: blue`)

	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, "p", sheet.Rules[0].Selector)
	assert.NotEmpty(t, sheet.Warnings)
}

func TestParser_CommentsBecomeSelectorText(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse("/* heading */ h1 { color: red }")

	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, "/* heading */ h1", sheet.Rules[0].Selector)
	assert.False(t, sheet.Rules[0].Matches(css.Element{Tag: "h1"}))
}

func TestParser_EmptyInput(t *testing.T) {
	p := css.NewParser(nil)

	for _, input := range []string{"", "   \n", "{}", "p {}"} {
		sheet := p.Parse(input)
		assert.Empty(t, sheet.Rules, "input %q", input)
	}
}

func TestStylesheet_String(t *testing.T) {
	p := css.NewParser(nil)

	sheet := p.Parse(`p{color:red;padding:2}`)

	assert.Equal(t, "p { color: red; padding: 2 }\n", sheet.String())
}
