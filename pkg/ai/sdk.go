package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// SDKClient implements the same contract as Client on top of the official
// Gemini SDK. The SDK client is created on first use so a missing key only
// fails the request that needs it.
type SDKClient struct {
	Model      string
	Generation GenerationConfig

	apiKey string

	mu     sync.Mutex
	client *genai.Client
}

func NewSDKClient(apiKey, model string) *SDKClient {
	if model == "" {
		model = DefaultModel
	}
	return &SDKClient{Model: model, Generation: DefaultGenerationConfig(), apiKey: apiKey}
}

func (c *SDKClient) sdk(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = cl
	return cl, nil
}

func (c *SDKClient) Enhance(ctx context.Context, text string, kind ContentKind) (string, error) {
	prompt, err := BuildPrompt(text, kind)
	if err != nil {
		return "", err
	}
	cl, err := c.sdk(ctx)
	if err != nil {
		return "", err
	}

	model := cl.GenerativeModel(c.Model)
	model.SetTemperature(c.Generation.Temperature)
	model.SetTopK(c.Generation.TopK)
	model.SetTopP(c.Generation.TopP)
	model.SetMaxOutputTokens(c.Generation.MaxOutputTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return firstText(resp)
}

func (c *SDKClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// firstText returns the trimmed first text part of the first candidate.
func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	t, ok := cand.Content.Parts[0].(genai.Text)
	if !ok {
		return "", ErrEmptyResponse
	}
	s := strings.TrimSpace(string(t))
	if s == "" {
		return "", ErrEmptyResponse
	}
	return s, nil
}
