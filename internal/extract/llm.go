package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/poliscan/poliscan/internal/ingest"
)

const maxPolicyChars = 48000

// LLMExtractor uses Claude to pull data collection statements out of
// free-form policy text.
type LLMExtractor struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewLLMExtractor returns nil when ANTHROPIC_API_KEY is unset.
func NewLLMExtractor(modelName string) *LLMExtractor {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil
	}

	m := anthropic.Model(modelName)
	if modelName == "" {
		m = anthropic.ModelClaude3_5Haiku20241022
	}
	return &LLMExtractor{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}
}

func (e *LLMExtractor) Name() string { return "llm" }

// Extract asks the model for the data_collection JSON payload.
func (e *LLMExtractor) Extract(ctx context.Context, text string) (*ingest.Payload, error) {
	if e == nil {
		return nil, fmt.Errorf("llm extractor not initialized (missing ANTHROPIC_API_KEY)")
	}

	prompt := fmt.Sprintf(`Analyze this privacy policy and list every data collection statement it makes.

Policy text:
%s

Provide a JSON response with the following structure:
{
  "data_collection": [
    {
      "type": "name of the data collected, e.g. Email Address",
      "purpose": "why it is collected",
      "retention_period": "how long it is kept, omit if not stated",
      "shared_with_third_parties": false,
      "security_measures": ["protective controls, user rights, and transfer practices mentioned for this data"]
    }
  ],
  "summary": "one-sentence summary of the policy's data practices"
}

List one entry per distinct data type. Use only statements actually present in the text.
Return ONLY the JSON, no other text.`, truncate(text, maxPolicyChars))

	resp, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     e.model,
		MaxTokens: 4000,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	var responseText string
	for _, block := range resp.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	payload, err := ingest.Parse([]byte(stripFences(responseText)))
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	return payload, nil
}

func truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "\n...[truncated]..."
}

// stripFences removes a markdown code fence if the model wrapped its JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
