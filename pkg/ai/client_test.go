package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiReply(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	}
}

func newFakeGemini(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(Options{BaseURL: srv.URL, APIKey: "test-key", HTTP: srv.Client()})
	return srv, c
}

func TestClient_Enhance_RequestShape(t *testing.T) {
	var got generateRequest
	_, c := newFakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(b, &got))
		_ = json.NewEncoder(w).Encode(geminiReply("  Polished summary.\n"))
	})

	out, err := c.Enhance(context.Background(), "Professional Summary: dev", KindSummary)
	require.NoError(t, err)
	assert.Equal(t, "Polished summary.", out)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.True(t, strings.HasPrefix(got.Contents[0].Parts[0].Text, "Please enhance this professional summary"))
	assert.True(t, strings.HasSuffix(got.Contents[0].Parts[0].Text, "Professional Summary: dev"))
	assert.Equal(t, DefaultGenerationConfig(), got.GenerationConfig)
}

func TestClient_Enhance_ExperiencePrompt(t *testing.T) {
	_, c := newFakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "job experience description")
		_ = json.NewEncoder(w).Encode(geminiReply("Led things."))
	})

	out, err := c.Enhance(context.Background(), "Job Experience at A as B: did", KindExperience)
	require.NoError(t, err)
	assert.Equal(t, "Led things.", out)
}

func TestClient_Enhance_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
			},
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
				assert.Equal(t, "API request failed: 429", se.Error())
			},
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEmptyResponse) },
		},
		{
			name: "missing text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{}]}}]}`))
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEmptyResponse) },
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			check: func(t *testing.T, err error) { assert.ErrorContains(t, err, "decode response") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newFakeGemini(t, tt.handler)
			_, err := c.Enhance(context.Background(), "x", KindSummary)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_Enhance_MissingKeyFailsAtCallTime(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, HTTP: srv.Client()})
	_, err := c.Enhance(context.Background(), "x", KindSummary)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, called)
}

func TestClient_Enhance_UnknownKind(t *testing.T) {
	c := NewClient(Options{APIKey: "k"})
	_, err := c.Enhance(context.Background(), "x", ContentKind("cover-letter"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://example.test/"})
	assert.Equal(t, "http://example.test", c.BaseURL)
	assert.Equal(t, DefaultModel, c.Model)
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)
}
