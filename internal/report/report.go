// Package report renders assessment results for humans (terminal text) and
// machines (JSON). Rendering never recomputes anything; it only reshapes the
// engine's output.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/poliscan/poliscan/internal/model"
)

// Document pairs an assessment with its provenance.
type Document struct {
	Source      string
	GeneratedAt time.Time
	Result      model.RiskAssessmentResult
	Raw         map[string]any
}

// jsonLevel is the merged level object in the JSON report. Level is the
// authoritative classification; DisplayLevel plus the display metadata come
// from the score's display bucket, which uses different boundaries.
type jsonLevel struct {
	Level        model.RiskLevel `json:"level"`
	DisplayLevel model.RiskLevel `json:"display_level"`
	Color        string          `json:"color"`
	Label        string          `json:"label"`
	Description  string          `json:"description"`
}

type jsonReport struct {
	Source          string             `json:"source,omitempty"`
	GeneratedAt     string             `json:"generated_at"`
	RiskScore       int                `json:"risk_score"`
	RiskLevel       jsonLevel          `json:"risk_level"`
	RiskFactors     model.RiskFactors  `json:"risk_factors"`
	Recommendations []string           `json:"recommendations"`
	DataCollection  []model.ItemReport `json:"data_collection"`
	RawAnalysis     map[string]any     `json:"raw_analysis,omitempty"`
}

// FormatJSON renders the report as indented JSON.
func FormatJSON(doc Document) (string, error) {
	r := doc.Result
	out := jsonReport{
		Source:      doc.Source,
		GeneratedAt: doc.GeneratedAt.UTC().Format(time.RFC3339),
		RiskScore:   r.Score,
		RiskLevel: jsonLevel{
			Level:        r.Level,
			DisplayLevel: r.DisplayBucket.Level,
			Color:        r.DisplayBucket.Color,
			Label:        r.DisplayBucket.Label,
			Description:  r.DisplayBucket.Description,
		},
		RiskFactors:     r.Factors,
		Recommendations: r.Recommendations,
		DataCollection:  r.Items,
		RawAnalysis:     doc.Raw,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(data), nil
}

// FormatText renders a terminal summary.
func FormatText(doc Document) string {
	r := doc.Result
	var sb strings.Builder

	sb.WriteString("Privacy Risk Assessment\n")
	sb.WriteString("=======================\n")
	if doc.Source != "" {
		fmt.Fprintf(&sb, "Source: %s\n", doc.Source)
	}
	fmt.Fprintf(&sb, "Score:  %d/100 (%s)\n", r.Score, r.Level)
	fmt.Fprintf(&sb, "Rating: %s - %s\n", r.DisplayBucket.Label, r.DisplayBucket.Description)

	sb.WriteString("\nRisk factors:\n")
	fmt.Fprintf(&sb, "  data sensitivity    %5.1f\n", r.Factors.DataSensitivity)
	fmt.Fprintf(&sb, "  collection context  %5.1f\n", r.Factors.CollectionContext)
	fmt.Fprintf(&sb, "  storage security    %5.1f\n", r.Factors.StorageSecurity)
	fmt.Fprintf(&sb, "  data sharing        %5.1f\n", r.Factors.DataSharing)
	fmt.Fprintf(&sb, "  user controls       %5.1f\n", r.Factors.UserControls)

	if len(r.Items) > 0 {
		sb.WriteString("\nData collected:\n")
		for _, item := range r.Items {
			fmt.Fprintf(&sb, "  [%-8s] %s (%s) - %s\n", item.Risk, item.Type, item.Category, item.Purpose)
		}
	}

	if len(r.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&sb, "  - %s\n", rec)
		}
	}

	return sb.String()
}
