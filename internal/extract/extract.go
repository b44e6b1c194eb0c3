// Package extract turns raw policy text into structured data collection
// statements. Extraction is the only fallible stage: failures surface here,
// before any item reaches the risk engine.
package extract

import (
	"context"

	"github.com/poliscan/poliscan/internal/ingest"
)

// Extractor produces an extraction payload from raw policy text.
type Extractor interface {
	Extract(ctx context.Context, text string) (*ingest.Payload, error)
	Name() string
}

// Best returns the LLM extractor when credentials are available, otherwise
// the deterministic heuristic extractor.
func Best(modelName string) Extractor {
	if llm := NewLLMExtractor(modelName); llm != nil {
		return llm
	}
	return NewHeuristicExtractor()
}
