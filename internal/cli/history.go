package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/poliscan/poliscan/internal/config"
	"github.com/poliscan/poliscan/internal/history"
	"github.com/poliscan/poliscan/internal/report"
)

var (
	historyLimit int
	historyJSON  bool
	historyShow  string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum runs to list")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyCmd.Flags().StringVar(&historyShow, "show", "", "Print the full report for a run ID")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analysis runs",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return fmt.Errorf("history is disabled: set history.path in the config")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if historyShow != "" {
		result, err := store.Result(historyShow)
		if err != nil {
			return err
		}
		out, err := report.FormatJSON(report.Document{Result: *result})
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	entries, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}

	if historyJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCORE\tLEVEL\tITEMS\tSOURCE\tWHEN")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%.0f\t%s\t%d\t%s\t%s\n",
			e.ID, e.Score, e.Level, e.Items, e.Source, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
