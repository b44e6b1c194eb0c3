package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poliscan/poliscan/internal/risk"
)

func init() {
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify <type>...",
	Short: "Classify data type labels into the risk taxonomy",
	Long:  "Maps labels like 'Email Address' or 'Precise GPS Location' to their taxonomy\ncategory and sensitivity tier, without running a full analysis.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	type placement struct {
		Type      string `json:"type"`
		Category  string `json:"category"`
		Risk      string `json:"risk"`
		RiskScore int    `json:"risk_score"`
	}

	out := make([]placement, 0, len(args))
	for _, label := range args {
		category := risk.Classify(label)
		out = append(out, placement{
			Type:      label,
			Category:  string(category),
			Risk:      string(risk.ItemRiskLevel(category)),
			RiskScore: risk.ItemRiskScore(category),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
