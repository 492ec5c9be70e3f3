package converter

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/makhembu/pdf-light/internal/config"
	"github.com/makhembu/pdf-light/internal/css"
	"github.com/makhembu/pdf-light/internal/html"
	"github.com/makhembu/pdf-light/internal/render"
	"github.com/makhembu/pdf-light/internal/resolver"
)

// Converter turns markup and style text into render nodes. It holds no
// per-conversion state and is safe for concurrent use.
type Converter struct {
	config config.Config
	log    *zap.Logger
}

// New creates a new converter with the given configuration
func New(cfg config.Config, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{
		config: cfg,
		log:    log.Named("converter"),
	}
}

// NewWithDefaults creates a new converter with the built-in configuration
// and no logging
func NewWithDefaults() *Converter {
	return New(config.Default(), nil)
}

// Result contains the outcome of one conversion
type Result struct {
	ID       string         // conversion id, also attached to every log entry
	Nodes    []*render.Node // root nodes in document order
	Warnings []string       // style blocks dropped while parsing
	Stats    ProcessingStats
}

// ProcessingStats contains counters from one conversion
type ProcessingStats struct {
	CSSRulesParsed    int           // rules kept from embedded and external style text
	ElementsProcessed int           // open tags seen
	UnsupportedTags   int           // open tags without a node
	NodesCreated      int           // nodes in the result, text included
	DiscardedText     int           // text runs dropped as blank or at root level
	ProcessingTime    time.Duration // wall time of the conversion
}

// Process converts markup. Rules from embedded <style> blocks come first and
// externalCSS is appended after them, so external rules win ties. Malformed
// input never fails a conversion; the worst outcome is an empty result.
func (c *Converter) Process(markup, externalCSS string) *Result {
	start := time.Now()
	id := uuid.NewString()
	log := c.log.With(zap.String("conversion", id))

	styleText, src := c.source(markup, log)

	// stylesheet and resolver live for this call only
	sheet := css.NewParser(log).Parse(styleText + externalCSS)
	log.Debug("Parsed style sheet", zap.Int("rules", len(sheet.Rules)), zap.Stringer("css", sheet))
	builder := render.NewBuilder(resolver.New(sheet, log), log)
	nodes := builder.Run(src)

	stats := builder.Stats()
	result := &Result{
		ID:       id,
		Nodes:    nodes,
		Warnings: sheet.Warnings,
		Stats: ProcessingStats{
			CSSRulesParsed:    len(sheet.Rules),
			ElementsProcessed: stats.Elements,
			UnsupportedTags:   stats.Unsupported,
			NodesCreated:      stats.Nodes,
			DiscardedText:     stats.DiscardedText,
			ProcessingTime:    time.Since(start),
		},
	}

	log.Debug("Conversion finished",
		zap.Int("roots", len(nodes)),
		zap.Int("rules", result.Stats.CSSRulesParsed),
		zap.Int("nodes", result.Stats.NodesCreated),
		zap.Int("unsupported", result.Stats.UnsupportedTags),
		zap.Duration("elapsed", result.Stats.ProcessingTime))

	return result
}

// source returns the embedded style text and the event source for markup,
// according to the configured document source
func (c *Converter) source(markup string, log *zap.Logger) (string, html.Source) {
	if c.config.Document.Source == config.SourceDOM {
		doc, err := html.Parse(markup)
		if err == nil {
			return doc.StyleText(), doc.Events()
		}
		log.Warn("Falling back to streaming source", zap.Error(err))
	}
	return html.ExtractStyleText(markup), html.NewTokenizer(markup)
}

// ProcessFile reads markup from path and converts it
func (c *Converter) ProcessFile(path, externalCSS string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return c.Process(string(data), externalCSS), nil
}

// Convert is a convenience function that converts markup with the default
// configuration
func Convert(markup, externalCSS string) []*render.Node {
	return NewWithDefaults().Process(markup, externalCSS).Nodes
}

// ConvertWithConfig is a convenience function that converts markup with a
// custom configuration
func ConvertWithConfig(markup, externalCSS string, cfg config.Config) []*render.Node {
	return New(cfg, nil).Process(markup, externalCSS).Nodes
}
