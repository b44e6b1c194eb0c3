package extract

import (
	"context"
	"testing"

	"github.com/poliscan/poliscan/internal/risk"
)

const samplePolicy = `We collect your email address to create your account.
Your payment information is processed using encryption and access controls.
We may share your browsing history with third-party advertising partners.
Usage data is retained indefinitely for analytics.
You can opt-out of marketing emails at any time.`

func TestHeuristicExtract(t *testing.T) {
	payload, err := NewHeuristicExtractor().Extract(context.Background(), samplePolicy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byType := map[string]map[string]any{}
	for _, r := range payload.DataCollection {
		byType[r["type"].(string)] = r
	}

	if _, ok := byType["Email Address"]; !ok {
		t.Errorf("expected Email Address statement, got %v", byType)
	}
	payment, ok := byType["Payment Information"]
	if !ok {
		t.Fatalf("expected Payment Information statement, got %v", byType)
	}
	measures := payment["security_measures"].([]any)
	if len(measures) < 2 {
		t.Errorf("expected encryption and access controls captured, got %v", measures)
	}

	browsing, ok := byType["Browsing History"]
	if !ok {
		t.Fatalf("expected Browsing History statement")
	}
	if browsing["shared_with_third_parties"] != true {
		t.Error("expected third-party sharing flag on browsing history")
	}

	usage, ok := byType["Usage Data"]
	if !ok {
		t.Fatalf("expected Usage Data statement")
	}
	if usage["retention_period"] == nil {
		t.Error("expected retention period captured for usage data")
	}
}

func TestHeuristicExtractEmptyText(t *testing.T) {
	payload, err := NewHeuristicExtractor().Extract(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload.DataCollection) != 0 {
		t.Errorf("expected no statements, got %v", payload.DataCollection)
	}
}

func TestHeuristicDeterministicOrder(t *testing.T) {
	e := NewHeuristicExtractor()
	first, _ := e.Extract(context.Background(), samplePolicy)
	second, _ := e.Extract(context.Background(), samplePolicy)
	if len(first.DataCollection) != len(second.DataCollection) {
		t.Fatal("extraction must be deterministic")
	}
	for i := range first.DataCollection {
		if first.DataCollection[i]["type"] != second.DataCollection[i]["type"] {
			t.Errorf("statement order differs at %d", i)
		}
	}
}

func TestHeuristicMeasuresReachScoring(t *testing.T) {
	// Every canonical measure label must be visible to the engine's substring
	// checks; a detected deletion right changes the userControls factor.
	e := NewHeuristicExtractor()
	ctx := context.Background()

	without, err := e.Extract(ctx, "We collect your email address to create your account.")
	if err != nil {
		t.Fatal(err)
	}
	with, err := e.Extract(ctx, "We collect your email address to create your account. You may delete your email address at any time.")
	if err != nil {
		t.Fatal(err)
	}

	base := risk.UserControls(without.Items())
	granted := risk.UserControls(with.Items())
	if granted != base+20 {
		t.Errorf("deletion right not credited at scoring: %f -> %f", base, granted)
	}

	anon, err := e.Extract(ctx, "Browsing history is anonymized before use.")
	if err != nil {
		t.Fatal(err)
	}
	if got := risk.DataSharing(anon.Items()); got != 30 {
		t.Errorf("anonymization not credited at scoring: got %f, want 30", got)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct{ in, want string }{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
