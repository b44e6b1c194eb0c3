// Package ingest defines the Payload, the handoff artifact between the
// extraction collaborator and the risk engine. Parsing is fail-soft: any
// partial or malformed record degrades to documented defaults so that the
// engine downstream never has to error.
package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/poliscan/poliscan/internal/model"
	"github.com/poliscan/poliscan/internal/risk"
)

// Payload is the loosely-typed extraction output. DataCollection records are
// kept as raw maps until Items() applies the centralized defaults, so that
// unrecognized fields survive the round trip.
type Payload struct {
	DataCollection []map[string]any `json:"data_collection"`
	Summary        string           `json:"summary,omitempty"`

	raw map[string]any
}

// Parse decodes extraction output. A payload without data_collection is
// valid and yields zero items.
func Parse(data []byte) (*Payload, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse extraction payload: %w", err)
	}

	p := &Payload{raw: raw}
	if s, ok := raw["summary"].(string); ok {
		p.Summary = s
	}
	records, ok := raw["data_collection"].([]any)
	if !ok {
		return p, nil
	}
	for _, r := range records {
		if m, ok := r.(map[string]any); ok {
			p.DataCollection = append(p.DataCollection, m)
		}
	}
	return p, nil
}

// FromRecords wraps already-decoded extraction records.
func FromRecords(records []map[string]any) *Payload {
	return &Payload{DataCollection: records}
}

// Items applies the default-substitution step to every record and assigns
// each item its taxonomy category from the type label. This is the single
// place where loose input becomes the engine's immutable item list.
func (p *Payload) Items() []model.DataCollectionItem {
	items := make([]model.DataCollectionItem, 0, len(p.DataCollection))
	for _, record := range p.DataCollection {
		item := model.ItemFromMap(record)
		item.Category = risk.Classify(item.Type)
		items = append(items, item)
	}
	return items
}

// Raw returns the decoded payload for callers that echo raw input.
func (p *Payload) Raw() map[string]any {
	return p.raw
}
