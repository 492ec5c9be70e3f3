package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/makhembu/pdf-light/internal/state"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	state.EnvFromContext(ctx).Log = zaptest.NewLogger(t)
	return ctx
}

func run(ctx context.Context, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := Command()
	cmd.Reader = strings.NewReader(stdin)
	cmd.Writer = &out
	err := cmd.Run(ctx, append([]string{"convert"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRun_Stdin(t *testing.T) {
	out, err := run(testContext(t), `<style>p { color: teal }</style><p>hi</p>`)
	require.NoError(t, err)

	assert.Contains(t, out, "block <p>")
	assert.Contains(t, out, "color: teal")
	assert.Contains(t, out, `text "hi"`)
}

func TestRun_DirectoryToOutputDir(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.html"), `<h1>A</h1>`)
	writeFile(t, filepath.Join(src, "sub", "b.HTM"), `<p>B</p>`)
	writeFile(t, filepath.Join(src, "notes.txt"), `<p>skip</p>`)
	dst := filepath.Join(t.TempDir(), "out")

	out, err := run(testContext(t), "", "--format", "yaml", "--output-dir", dst, src)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(dst, "a.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tag: h1")

	data, err = os.ReadFile(filepath.Join(dst, "sub", "b.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "text: B")

	assert.NoFileExists(t, filepath.Join(dst, "notes.yaml"))
}

func TestRun_ExternalStylesheet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "doc.html"), `<style>p { color: blue }</style><p>x</p>`)
	writeFile(t, filepath.Join(dir, "extra.css"), `p { color: green }`)

	out, err := run(testContext(t), "", "--css", filepath.Join(dir, "extra.css"), filepath.Join(dir, "doc.html"))
	require.NoError(t, err)

	assert.Contains(t, out, "color: green")
	assert.NotContains(t, out, "color: blue")
}

func TestRun_DOMSource(t *testing.T) {
	out, err := run(testContext(t), `<table><tr><td>1</td></tr></table>`, "--source", "dom")
	require.NoError(t, err)

	assert.Contains(t, out, "block <tbody>")
}

func TestRun_ContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.html")
	writeFile(t, good, `<p>ok</p>`)

	out, err := run(testContext(t), "", filepath.Join(dir, "missing.html"), good)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to access source")
	assert.Contains(t, out, `text "ok"`)
}

func TestRun_SeveralFilesToStdoutAreLabeled(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.html")
	second := filepath.Join(dir, "second.html")
	writeFile(t, first, `<p>one</p>`)
	writeFile(t, second, `<p>two</p>`)

	out, err := run(testContext(t), "", first, second)
	require.NoError(t, err)
	assert.Contains(t, out, "==> "+first+" <==\n")
	assert.Contains(t, out, "==> "+second+" <==\n")
	assert.Less(t, strings.Index(out, `text "one"`), strings.Index(out, "==> "+second))

	out, err = run(testContext(t), "", "--format", "yaml", first, second)
	require.NoError(t, err)
	assert.Contains(t, out, "--- # "+first+"\n")
	assert.Contains(t, out, "--- # "+second+"\n")
}

func TestRun_SingleFileToStdoutHasNoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "only.html")
	writeFile(t, path, `<p>x</p>`)

	out, err := run(testContext(t), "", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "==>")
}

func TestRun_SameOutputNameIsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a", "doc.html")
	second := filepath.Join(dir, "b", "doc.html")
	writeFile(t, first, `<p>first</p>`)
	writeFile(t, second, `<p>second</p>`)
	dst := filepath.Join(t.TempDir(), "out")

	_, err := run(testContext(t), "", "--output-dir", dst, first, second)
	require.Error(t, err)
	assert.ErrorContains(t, err, "would overwrite result of "+first)

	data, err := os.ReadFile(filepath.Join(dst, "doc.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.NotContains(t, string(data), "second")
}

func TestRun_InvalidOptions(t *testing.T) {
	_, err := run(testContext(t), "<p>x</p>", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = run(testContext(t), "<p>x</p>", "--source", "sax")
	assert.ErrorContains(t, err, "unknown event source")

	_, err = run(testContext(t), "<p>x</p>", "--css", filepath.Join(t.TempDir(), "none.css"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	_, err := run(ctx, "<p>x</p>")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindHTMLFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.html"), "")
	writeFile(t, filepath.Join(dir, "deep", "y.htm"), "")
	writeFile(t, filepath.Join(dir, "z.css"), "")

	files, base, err := findHTMLFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, base)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "x.html"), filepath.Join(dir, "deep", "y.htm")}, files)

	files, base, err = findHTMLFiles(filepath.Join(dir, "x.html"))
	require.NoError(t, err)
	assert.Equal(t, dir, base)
	assert.Equal(t, []string{filepath.Join(dir, "x.html")}, files)
}
