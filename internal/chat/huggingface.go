package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHuggingFaceURL = "https://api-inference.huggingface.co/models/facebook/blenderbot-400M-distill"

// HuggingFaceProvider calls a single-model inference endpoint. The token is
// optional; public models answer anonymous requests.
type HuggingFaceProvider struct {
	url        string
	token      string
	enabled    bool
	httpClient *http.Client
}

func NewHuggingFaceProvider(url, token string, enabled bool, timeout time.Duration) *HuggingFaceProvider {
	if url == "" {
		url = defaultHuggingFaceURL
	}
	return &HuggingFaceProvider{
		url:        url,
		token:      token,
		enabled:    enabled,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *HuggingFaceProvider) Name() string { return "huggingface" }

type hfGenerated struct {
	GeneratedText string `json:"generated_text"`
}

func (p *HuggingFaceProvider) Reply(ctx context.Context, _ []Message, message string) (string, error) {
	if !p.enabled {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]any{
		"inputs": map[string]string{
			"text": SystemPrompt + "\n\nUser: " + message,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	text, err := parseGenerated(body)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

// parseGenerated accepts both the object and the list form of the response.
func parseGenerated(body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var list []hfGenerated
		if err := json.Unmarshal(body, &list); err != nil {
			return "", fmt.Errorf("parse response: %w", err)
		}
		if len(list) == 0 {
			return "", ErrEmptyReply
		}
		return list[0].GeneratedText, nil
	}

	var one hfGenerated
	if err := json.Unmarshal(body, &one); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return one.GeneratedText, nil
}
