// Package analyze wires the full pipeline: fetch a document, extract
// data-handling statements, classify and assess them, optionally record the
// run. The HTTP server, the MCP server, and the CLI all run analyses through
// this one path.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poliscan/poliscan/internal/config"
	"github.com/poliscan/poliscan/internal/extract"
	"github.com/poliscan/poliscan/internal/fetch"
	"github.com/poliscan/poliscan/internal/history"
	"github.com/poliscan/poliscan/internal/report"
	"github.com/poliscan/poliscan/internal/risk"
)

// Analyzer runs policy analyses with a fixed configuration.
type Analyzer struct {
	cfg    *config.Config
	store  *history.Store
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithHistory records every run to the given store.
func WithHistory(store *history.Store) Option {
	return func(a *Analyzer) { a.store = store }
}

// WithLogger sets the analyzer's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// New builds an Analyzer for the given configuration.
func New(cfg *config.Config, opts ...Option) *Analyzer {
	a := &Analyzer{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Text analyzes raw policy text.
func (a *Analyzer) Text(ctx context.Context, text, source string) (report.Document, error) {
	if text == "" {
		return report.Document{}, fmt.Errorf("empty policy text")
	}

	extractor := a.extractor()
	start := time.Now()
	payload, err := extractor.Extract(ctx, text)
	if err != nil {
		return report.Document{}, fmt.Errorf("extract statements: %w", err)
	}

	items := payload.Items()
	result := risk.Assess(items)
	a.logger.Info("analysis complete",
		"source", source,
		"extractor", extractor.Name(),
		"items", len(items),
		"score", result.Score,
		"level", result.Level,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	doc := report.Document{
		Source:      source,
		GeneratedAt: time.Now(),
		Result:      result,
		Raw:         payload.Raw(),
	}

	if a.store != nil {
		if id, err := a.store.Record(source, &result); err != nil {
			a.logger.Warn("failed to record run", "error", err)
		} else {
			a.logger.Debug("recorded run", "id", id)
		}
	}
	return doc, nil
}

// URL fetches a policy page and analyzes it. Render routes the fetch through
// a headless browser regardless of configuration.
func (a *Analyzer) URL(ctx context.Context, rawURL string, render bool) (report.Document, error) {
	var (
		text string
		err  error
	)
	if render || a.cfg.Fetch.Render {
		text, err = fetch.Rendered(ctx, rawURL, a.cfg.FetchTimeout())
	} else {
		text, err = fetch.URL(ctx, rawURL, a.cfg.FetchTimeout())
	}
	if err != nil {
		return report.Document{}, err
	}
	return a.Text(ctx, text, rawURL)
}

// File reads a local policy document and analyzes it.
func (a *Analyzer) File(ctx context.Context, path string) (report.Document, error) {
	text, err := fetch.ReadFile(path)
	if err != nil {
		return report.Document{}, err
	}
	return a.Text(ctx, text, path)
}

func (a *Analyzer) extractor() extract.Extractor {
	if a.cfg.Extract.DisableLLM {
		return extract.NewHeuristicExtractor()
	}
	return extract.Best(a.cfg.Extract.Model)
}
