package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/poliscan/poliscan/internal/analyze"
	"github.com/poliscan/poliscan/internal/config"
	"github.com/poliscan/poliscan/internal/history"
	"github.com/poliscan/poliscan/internal/report"
)

var (
	analyzeURL     string
	analyzeFormat  string
	analyzeRender  bool
	analyzeNoLLM   bool
	analyzeVerbose bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "Fetch and analyze a policy page by URL")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "Output format: text or json")
	analyzeCmd.Flags().BoolVar(&analyzeRender, "render", false, "Fetch URLs through a headless browser")
	analyzeCmd.Flags().BoolVar(&analyzeNoLLM, "no-llm", false, "Force the deterministic heuristic extractor")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Debug logging")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Assess the privacy risk of a policy document",
	Long:  "Reads a policy from a file, a URL (--url), or stdin (-), extracts its data collection\nstatements, and scores them. Use --format json for the full machine-readable report.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeFormat != "text" && analyzeFormat != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", analyzeFormat)
	}
	if analyzeURL == "" && len(args) == 0 {
		return fmt.Errorf("provide a file argument, --url, or - for stdin")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if analyzeNoLLM {
		cfg.Extract.DisableLLM = true
	}

	logger := newLogger(analyzeVerbose)
	opts := []analyze.Option{analyze.WithLogger(logger)}
	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history disabled", "error", err)
		} else {
			defer store.Close()
			opts = append(opts, analyze.WithHistory(store))
		}
	}
	analyzer := analyze.New(cfg, opts...)

	ctx := cmd.Context()
	var doc report.Document
	switch {
	case analyzeURL != "":
		doc, err = analyzer.URL(ctx, analyzeURL, analyzeRender)
	case args[0] == "-":
		text, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return fmt.Errorf("read stdin: %w", readErr)
		}
		doc, err = analyzer.Text(ctx, strings.TrimSpace(string(text)), "stdin")
	default:
		doc, err = analyzer.File(ctx, args[0])
	}
	if err != nil {
		return err
	}

	if analyzeFormat == "json" {
		out, err := report.FormatJSON(doc)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Print(report.FormatText(doc))
	return nil
}
