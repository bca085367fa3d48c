// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
)

const (
	DefaultModel = "gemini-2.0-flash"
)

// Client implements the SentimentClient interface
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: genaiClient,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ClassifySentences classifies each sentence as positive or negative.
// Returns one bool per input sentence (true = positive), in input order.
func (c *Client) ClassifySentences(ctx context.Context, sentences []string) ([]bool, error) {
	if len(sentences) == 0 {
		return nil, nil
	}

	c.logger.Debug().Str("model", c.model).Int("sentences", len(sentences)).Msg("Classifying sentiment batch")

	prompt := buildSentimentPrompt(sentences)
	contents := genai.Text(prompt)

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to classify sentences: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	return parseSentimentResponse(text, len(sentences))
}

// buildSentimentPrompt creates a strict one-label-per-line prompt
func buildSentimentPrompt(sentences []string) string {
	var sb strings.Builder
	sb.WriteString("Classify the sentiment of each numbered sentence as POSITIVE or NEGATIVE.\n")
	sb.WriteString("Respond with exactly one label per line, in order, nothing else.\n\n")
	for i, s := range sentences {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.TrimSpace(s)))
	}
	return sb.String()
}

// parseSentimentResponse maps label lines back to booleans. Lines that are
// not recognizably POSITIVE count as negative; short responses fail.
func parseSentimentResponse(text string, want int) ([]bool, error) {
	var labels []bool
	for _, line := range strings.Split(text, "\n") {
		line = strings.ToUpper(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		// Tolerate "3. POSITIVE" style echoes
		line = strings.TrimLeft(line, "0123456789. )-")
		switch {
		case strings.HasPrefix(line, "POSITIVE"):
			labels = append(labels, true)
		case strings.HasPrefix(line, "NEGATIVE"):
			labels = append(labels, false)
		}
	}

	if len(labels) < want {
		return nil, fmt.Errorf("sentiment response had %d labels, want %d", len(labels), want)
	}
	return labels[:want], nil
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// Compile-time check
var _ interfaces.SentimentClient = (*Client)(nil)
