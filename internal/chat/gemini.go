package chat

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "gemini-2.0-flash"
	geminiPrimer       = "I understand. I'll act as a professional health assistant."
)

// GeminiProvider primes the model with the system prompt and sends only the
// latest message.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider returns an unconfigured provider when apiKey is empty.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if model == "" {
		model = defaultGeminiModel
	}
	p := &GeminiProvider{model: model}
	if apiKey == "" {
		return p, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	p.client = client
	return p, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Reply(ctx context.Context, _ []Message, message string) (string, error) {
	if p.client == nil {
		return "", ErrNotConfigured
	}

	contents := []*genai.Content{
		genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		genai.NewContentFromText(geminiPrimer, genai.RoleModel),
		genai.NewContentFromText(message, genai.RoleUser),
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](defaultTemperature),
		MaxOutputTokens: defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
