// Package convert implements the convert subcommand.
package convert

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/makhembu/pdf-light/internal/config"
	"github.com/makhembu/pdf-light/internal/render"
	"github.com/makhembu/pdf-light/internal/state"
	"github.com/makhembu/pdf-light/pkg/converter"
)

// Command returns the convert subcommand definition
func Command() *cli.Command {
	return &cli.Command{
		Name:   "convert",
		Usage:  "Converts HTML file(s) to render trees",
		Action: Run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "css", Usage: "apply style sheet `FILE` after embedded <style> blocks"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output `FORMAT` (tree, yaml)"},
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "event `SOURCE` (stream, dom)"},
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "write results under `DIR` instead of STDOUT"},
			&cli.BoolFlag{Name: "stats", Usage: "log processing statistics for every file"},
		},
		ArgsUsage: "[SOURCE...]",
		CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to an HTML file, or a directory which is searched recursively for
    .html and .htm files. Without SOURCE markup is read from STDIN.
`, cli.CommandHelpTemplate),
	}
}

// options are the effective settings of one run
type options struct {
	format    string
	outputDir string
	css       string
	stats     bool
}

func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	cfg := *env.Cfg
	if cmd.IsSet("source") {
		cfg.Document.Source = cmd.String("source")
	}
	if cmd.IsSet("format") {
		cfg.Document.OutputFormat = cmd.String("format")
	}
	if cmd.IsSet("css") {
		cfg.Document.StylesheetPath = cmd.String("css")
	}
	if err := checkOptions(cfg.Document); err != nil {
		return err
	}

	opts := options{
		format:    cfg.Document.OutputFormat,
		outputDir: cmd.String("output-dir"),
		stats:     cmd.Bool("stats"),
	}
	if len(cfg.Document.StylesheetPath) > 0 {
		data, err := os.ReadFile(cfg.Document.StylesheetPath)
		if err != nil {
			return fmt.Errorf("failed to read style sheet: %w", err)
		}
		opts.css = string(data)
	}

	conv := converter.New(cfg, env.Log)
	out := cmd.Root().Writer

	if cmd.NArg() == 0 {
		return runStdin(conv, cmd.Root().Reader, out, opts, log)
	}

	var (
		err  error
		jobs []job
	)
	for _, src := range cmd.Args().Slice() {
		files, base, er := findHTMLFiles(src)
		if er != nil {
			err = multierr.Append(err, er)
			continue
		}
		if len(files) == 0 {
			log.Warn("No HTML files found", zap.String("source", src))
			continue
		}
		for _, path := range files {
			jobs = append(jobs, job{path: path, base: base})
		}
	}

	b := &batch{
		conv:    conv,
		out:     out,
		opts:    opts,
		log:     log,
		headers: len(jobs) > 1,
		targets: make(map[string]string, len(jobs)),
	}
	for _, j := range jobs {
		// stop between files, never in the middle of one
		if er := ctx.Err(); er != nil {
			return multierr.Append(err, er)
		}
		if er := b.runFile(j); er != nil {
			err = multierr.Append(err, er)
		}
	}
	return err
}

// job is one HTML file and the directory its output path is relative to
type job struct {
	path string
	base string
}

// batch holds the state shared by the files of one run
type batch struct {
	conv    *converter.Converter
	out     io.Writer
	opts    options
	log     *zap.Logger
	headers bool              // mark each result written to out with its file
	targets map[string]string // output path to the file that produced it
}

func checkOptions(doc config.DocumentConfig) error {
	switch doc.Source {
	case config.SourceStream, config.SourceDOM:
	default:
		return fmt.Errorf("unknown event source %q (valid: %s, %s)", doc.Source, config.SourceStream, config.SourceDOM)
	}
	switch doc.OutputFormat {
	case config.FormatTree, config.FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q (valid: %s, %s)", doc.OutputFormat, config.FormatTree, config.FormatYAML)
	}
	return nil
}

// runStdin converts markup from r and writes the result to out
func runStdin(conv *converter.Converter, r io.Reader, out io.Writer, opts options, log *zap.Logger) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}

	res := conv.Process(string(data), opts.css)
	showProcessingStats(log, "<stdin>", res, opts.stats)

	if len(opts.outputDir) > 0 {
		return writeOutput(res, filepath.Join(opts.outputDir, "stdin"), opts.format, nil)
	}
	return writeOutput(res, "", opts.format, out)
}

// runFile converts one file. Results go under the output directory keeping
// the path relative to base, or to out when no directory is set. Two files
// of one run never write the same output.
func (b *batch) runFile(j job) error {
	res, err := b.conv.ProcessFile(j.path, b.opts.css)
	if err != nil {
		return err
	}
	showProcessingStats(b.log, j.path, res, b.opts.stats)

	if len(b.opts.outputDir) == 0 {
		if b.headers {
			if err := writeHeader(b.out, j.path, b.opts.format); err != nil {
				return err
			}
		}
		return writeOutput(res, "", b.opts.format, b.out)
	}

	rel, err := filepath.Rel(j.base, j.path)
	if err != nil {
		rel = filepath.Base(j.path)
	}
	target := filepath.Join(b.opts.outputDir, strings.TrimSuffix(rel, filepath.Ext(rel)))
	if prev, ok := b.targets[target]; ok {
		return fmt.Errorf("output for %s would overwrite result of %s", j.path, prev)
	}
	b.targets[target] = j.path
	return writeOutput(res, target, b.opts.format, nil)
}

// writeHeader names the file whose result follows on out
func writeHeader(out io.Writer, path, format string) error {
	var err error
	if format == config.FormatYAML {
		_, err = fmt.Fprintf(out, "--- # %s\n", path)
	} else {
		_, err = fmt.Fprintf(out, "==> %s <==\n", path)
	}
	return err
}

// writeOutput writes a result to out, or to name plus the format extension
// when out is nil
func writeOutput(res *converter.Result, name, format string, out io.Writer) error {
	var (
		data []byte
		ext  string
	)
	switch format {
	case config.FormatYAML:
		var err error
		if data, err = render.MarshalYAML(res.Nodes); err != nil {
			return err
		}
		ext = ".yaml"
	default:
		data = []byte(render.Dump(res.Nodes))
		ext = ".txt"
	}

	if out != nil {
		_, err := out.Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(name+ext, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name+ext, err)
	}
	return nil
}

// findHTMLFiles expands src into the HTML files to convert. base is the
// directory output paths are made relative to.
func findHTMLFiles(src string) (files []string, base string, err error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, "", fmt.Errorf("unable to access source: %w", err)
	}
	if !info.IsDir() {
		return []string{src}, filepath.Dir(src), nil
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("unable to walk %s: %w", src, err)
	}
	return files, src, nil
}

// showProcessingStats logs what a conversion did, at Info when requested
func showProcessingStats(log *zap.Logger, name string, res *converter.Result, requested bool) {
	level := zap.DebugLevel
	if requested {
		level = zap.InfoLevel
	}
	log.Log(level, "Converted",
		zap.String("file", name),
		zap.String("conversion", res.ID),
		zap.Int("roots", len(res.Nodes)),
		zap.Int("rules", res.Stats.CSSRulesParsed),
		zap.Int("elements", res.Stats.ElementsProcessed),
		zap.Int("unsupported", res.Stats.UnsupportedTags),
		zap.Int("nodes", res.Stats.NodesCreated),
		zap.Duration("elapsed", res.Stats.ProcessingTime))
	for _, w := range res.Warnings {
		log.Warn("Style sheet problem", zap.String("file", name), zap.String("warning", w))
	}
}
