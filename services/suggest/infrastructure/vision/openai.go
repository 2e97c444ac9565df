// Package vision implements garment analysis against the OpenAI chat
// completions API.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ghuser/capsule/pkg/config"
	"github.com/ghuser/capsule/services/suggest/domain"
)

const systemPrompt = `You are a fashion expert analyzing clothing items. ` +
	`Given front and back photos of a garment, respond with a JSON object ` +
	`containing exactly these keys: "brand", "type", "color", "description". ` +
	`Use an empty string for anything you cannot determine. "type" is the ` +
	`garment category (shirt, pants, dress, jacket, ...). "description" is one ` +
	`or two sentences describing the item.`

const userPrompt = "Analyze this clothing item and suggest its metadata."

// Analyzer calls a vision-capable chat model to propose item metadata from
// a pair of signed image URLs.
type Analyzer struct {
	client *openai.Client
	model  string
}

// NewAnalyzer creates an Analyzer from config.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	return NewAnalyzerWithBaseURL(cfg, "")
}

// NewAnalyzerWithBaseURL creates an Analyzer pointed at an alternative API
// base URL. Used by tests to target a local stub server.
func NewAnalyzerWithBaseURL(cfg *config.Config, baseURL string) *Analyzer {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	return &Analyzer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.OpenAIModel,
	}
}

// Analyze sends both garment photos to the model and parses the structured
// response. Low-detail image mode keeps token usage flat regardless of photo
// resolution. Unparsable model output maps to ErrAnalysisFailed.
func (a *Analyzer) Analyze(ctx context.Context, frontURL, backURL string) (*domain.Suggestion, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: 300,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: userPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    frontURL,
							Detail: openai.ImageURLDetailLow,
						},
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    backURL,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vision: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("vision: empty response: %w", domain.ErrAnalysisFailed)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	var suggestion domain.Suggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return nil, fmt.Errorf("vision: parse %q: %w", content, domain.ErrAnalysisFailed)
	}
	return &suggestion, nil
}
