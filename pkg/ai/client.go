// Package ai talks to the generative-language API that rewrites CV text.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cv-generator/pkg/ai/formatters"
)

// ContentKind tags what a piece of text is, which selects the prompt.
type ContentKind string

const (
	KindSummary    ContentKind = "summary"
	KindExperience ContentKind = "experience"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-1.5-flash"
	DefaultTimeout = 60 * time.Second

	maxResponseBytes = 1 << 20
)

var (
	ErrMissingAPIKey = errors.New("gemini api key is not configured")
	ErrEmptyResponse = errors.New("no enhanced content received from API")
	ErrUnknownKind   = errors.New("unknown content kind")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed: %d", e.StatusCode)
}

// GenerationConfig holds the fixed sampling parameters sent with every
// request.
type GenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int32   `json:"topK"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int32   `json:"maxOutputTokens"`
}

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1024,
	}
}

// BuildPrompt wraps text in the instructions for its kind.
func BuildPrompt(text string, kind ContentKind) (string, error) {
	switch kind {
	case KindSummary:
		return formatters.NewSummaryFormatter().Prompt(text), nil
	case KindExperience:
		return formatters.NewExperienceFormatter().Prompt(text), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
	HTTP    *http.Client
}

// Client calls the generateContent REST endpoint with a single POST per
// enhancement.
type Client struct {
	BaseURL    string
	Model      string
	HTTP       *http.Client
	Generation GenerationConfig

	apiKey string
	log    *slog.Logger
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	httpClient := opts.HTTP
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		BaseURL:    base,
		Model:      model,
		HTTP:       httpClient,
		Generation: DefaultGenerationConfig(),
		apiKey:     opts.APIKey,
		log:        slog.Default().With("component", "ai.client"),
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) endpoint() string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?%s", c.BaseURL, url.PathEscape(c.Model), q.Encode())
}

// Enhance sends text for rewriting and returns the trimmed result. A missing
// API key, a non-2xx status and a response without text are all errors.
func (c *Client) Enhance(ctx context.Context, text string, kind ContentKind) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	prompt, err := BuildPrompt(text, kind)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: c.Generation,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("generateContent request", "kind", kind, "model", c.Model, "bytes", len(body))

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("generateContent: %w", err)
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("generateContent failed", "kind", kind, "status", resp.StatusCode, "body", string(rb))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(rb)}
	}

	var out generateResponse
	if err := json.Unmarshal(rb, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	enhanced := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if enhanced == "" {
		return "", ErrEmptyResponse
	}

	c.log.Debug("generateContent response", "kind", kind, "status", resp.StatusCode, "chars", len(enhanced))
	return enhanced, nil
}
