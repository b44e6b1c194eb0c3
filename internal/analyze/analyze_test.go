package analyze

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poliscan/poliscan/internal/config"
	"github.com/poliscan/poliscan/internal/history"
)

func heuristicConfig() *config.Config {
	cfg := config.Default()
	cfg.Extract.DisableLLM = true
	return cfg
}

const samplePolicy = "We collect your email address for account creation. " +
	"We collect payment information for billing and share it with third-party processors. " +
	"All data is protected with encryption."

func TestTextPipeline(t *testing.T) {
	a := New(heuristicConfig())

	doc, err := a.Text(context.Background(), samplePolicy, "sample")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Source != "sample" {
		t.Errorf("expected source sample, got %q", doc.Source)
	}
	if len(doc.Result.Items) == 0 {
		t.Fatal("expected extracted items")
	}
	if doc.Result.Score <= 0 || doc.Result.Score > 100 {
		t.Errorf("score out of range: %d", doc.Result.Score)
	}
}

func TestTextEmpty(t *testing.T) {
	a := New(heuristicConfig())
	if _, err := a.Text(context.Background(), "", "empty"); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestTextDeterministic(t *testing.T) {
	a := New(heuristicConfig())

	first, err := a.Text(context.Background(), samplePolicy, "doc")
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Text(context.Background(), samplePolicy, "doc")
	if err != nil {
		t.Fatal(err)
	}
	if first.Result.Score != second.Result.Score {
		t.Errorf("same input scored differently: %d vs %d", first.Result.Score, second.Result.Score)
	}
	if len(first.Result.Items) != len(second.Result.Items) {
		t.Errorf("same input extracted differently: %d vs %d items", len(first.Result.Items), len(second.Result.Items))
	}
}

func TestFilePipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.txt")
	if err := os.WriteFile(path, []byte(samplePolicy), 0600); err != nil {
		t.Fatal(err)
	}

	a := New(heuristicConfig())
	doc, err := a.File(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Source != path {
		t.Errorf("expected source %q, got %q", path, doc.Source)
	}
}

func TestFileMissing(t *testing.T) {
	a := New(heuristicConfig())
	if _, err := a.File(context.Background(), filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHistoryRecording(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	a := New(heuristicConfig(), WithHistory(store))
	if _, err := a.Text(context.Background(), samplePolicy, "recorded"); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Recent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Source != "recorded" {
		t.Errorf("run was not recorded: %+v", entries)
	}
}
