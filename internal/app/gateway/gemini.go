package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-pro"

// ErrMissingAPIKey is returned by GeminiGenerator when no API key was configured.
var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY is not set")

// GeminiGenerator calls the Gemini API through the Google Gen AI SDK.
// The SDK client is created on the first call, so a missing key only fails calls.
type GeminiGenerator struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiGenerator returns a generator for model using apiKey.
func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{apiKey: apiKey, model: model}
}

// Model returns the configured model name.
func (g *GeminiGenerator) Model() string {
	return g.model
}

func (g *GeminiGenerator) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g.client = client
	return client, nil
}

// Generate sends parts as one user turn and returns the concatenated text of the first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, parts []Part) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}

	contents := []*genai.Content{genai.NewContentFromParts(toGenaiParts(parts), genai.RoleUser)}

	result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", &UpstreamError{Err: errors.New("model returned no text")}
	}

	return text, nil
}

func toGenaiParts(parts []Part) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.IsBlob() {
			out = append(out, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		out = append(out, genai.NewPartFromText(p.Text))
	}
	return out
}
