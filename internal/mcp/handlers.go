package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/poliscan/poliscan/internal/model"
	"github.com/poliscan/poliscan/internal/report"
	"github.com/poliscan/poliscan/internal/risk"
)

// --- Input/Output types ---

// AnalyzeInput defines parameters for the poliscan_analyze tool.
type AnalyzeInput struct {
	Text   string `json:"text" jsonschema:"privacy policy text to assess"`
	Source string `json:"source,omitempty" jsonschema:"label for this document (app name, file name)"`
}

// AnalyzeURLInput defines parameters for the poliscan_analyze_url tool.
type AnalyzeURLInput struct {
	URL    string `json:"url" jsonschema:"privacy policy page URL"`
	Render bool   `json:"render,omitempty" jsonschema:"fetch through a headless browser for JavaScript-heavy pages"`
}

// AnalyzeOutput is the assessment result for both analyze tools.
type AnalyzeOutput struct {
	Source          string             `json:"source,omitempty"`
	RiskScore       int                `json:"risk_score"`
	RiskLevel       string             `json:"risk_level"`
	Rating          string             `json:"rating"`
	Description     string             `json:"description"`
	RiskFactors     model.RiskFactors  `json:"risk_factors"`
	Recommendations []string           `json:"recommendations"`
	DataCollection  []model.ItemReport `json:"data_collection"`
}

// ClassifyInput defines parameters for the poliscan_classify tool.
type ClassifyInput struct {
	Type string `json:"type" jsonschema:"data type label to classify"`
}

// ClassifyOutput contains the taxonomy placement for one data type.
type ClassifyOutput struct {
	Type      string `json:"type"`
	Category  string `json:"category"`
	Risk      string `json:"risk"`
	RiskScore int    `json:"risk_score"`
}

// HistoryInput defines parameters for the poliscan_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default 20)"`
}

// HistoryOutput lists recent analysis runs.
type HistoryOutput struct {
	Runs []HistoryRun `json:"runs"`
}

// HistoryRun describes one recorded analysis.
type HistoryRun struct {
	ID        string  `json:"id"`
	Source    string  `json:"source"`
	Score     float64 `json:"score"`
	Level     string  `json:"level"`
	Items     int     `json:"items"`
	CreatedAt string  `json:"created_at"`
}

// --- Handlers ---

func toAnalyzeOutput(doc report.Document) AnalyzeOutput {
	r := doc.Result
	return AnalyzeOutput{
		Source:          doc.Source,
		RiskScore:       r.Score,
		RiskLevel:       string(r.Level),
		Rating:          r.DisplayBucket.Label,
		Description:     r.DisplayBucket.Description,
		RiskFactors:     r.Factors,
		Recommendations: r.Recommendations,
		DataCollection:  r.Items,
	}
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcpsdk.CallToolRequest, input AnalyzeInput) (*mcpsdk.CallToolResult, AnalyzeOutput, error) {
	if input.Text == "" {
		return nil, AnalyzeOutput{}, fmt.Errorf("text is required")
	}
	source := input.Source
	if source == "" {
		source = "mcp"
	}

	doc, err := s.analyzer.Text(ctx, input.Text, source)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}
	return nil, toAnalyzeOutput(doc), nil
}

func (s *Server) handleAnalyzeURL(ctx context.Context, req *mcpsdk.CallToolRequest, input AnalyzeURLInput) (*mcpsdk.CallToolResult, AnalyzeOutput, error) {
	if input.URL == "" {
		return nil, AnalyzeOutput{}, fmt.Errorf("url is required")
	}

	doc, err := s.analyzer.URL(ctx, input.URL, input.Render)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}
	return nil, toAnalyzeOutput(doc), nil
}

func (s *Server) handleClassify(ctx context.Context, req *mcpsdk.CallToolRequest, input ClassifyInput) (*mcpsdk.CallToolResult, ClassifyOutput, error) {
	if input.Type == "" {
		return nil, ClassifyOutput{}, fmt.Errorf("type is required")
	}

	category := risk.Classify(input.Type)
	out := ClassifyOutput{
		Type:      input.Type,
		Category:  string(category),
		Risk:      string(risk.ItemRiskLevel(category)),
		RiskScore: risk.ItemRiskScore(category),
	}
	return nil, out, nil
}

func (s *Server) handleHistory(ctx context.Context, req *mcpsdk.CallToolRequest, input HistoryInput) (*mcpsdk.CallToolResult, HistoryOutput, error) {
	if s.store == nil {
		return nil, HistoryOutput{}, fmt.Errorf("history is disabled: no database path configured")
	}

	entries, err := s.store.Recent(input.Limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	out := HistoryOutput{Runs: make([]HistoryRun, 0, len(entries))}
	for _, e := range entries {
		out.Runs = append(out.Runs, HistoryRun{
			ID:        e.ID,
			Source:    e.Source,
			Score:     e.Score,
			Level:     e.Level,
			Items:     e.Items,
			CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return nil, out, nil
}
