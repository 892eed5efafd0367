package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/sant0-9/intelligenn/internal/report"
)

func TestNewGeminiProviderNeedsKey(t *testing.T) {
	_, err := NewGeminiProvider("", "", "")
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestGroundingCitations(t *testing.T) {
	md := &genai.GroundingMetadata{
		GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{URI: "https://a.com", Title: "A"}},
			nil,
			{},
			{Web: &genai.GroundingChunkWeb{URI: "https://b.com"}},
		},
	}

	assert.Equal(t, []report.Citation{
		{URI: "https://a.com", Title: "A"},
		{URI: "https://b.com"},
	}, groundingCitations(md))
	assert.Nil(t, groundingCitations(nil))
}

func TestGeminiCompleteWithGrounding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "### Executive Summary\nok"}]},
				"finishReason": "STOP",
				"groundingMetadata": {
					"groundingChunks": [{"web": {"uri": "https://proff.dk/x", "title": "Proff"}}]
				}
			}],
			"usageMetadata": {"promptTokenCount": 2, "candidatesTokenCount": 3, "totalTokenCount": 5}
		}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider("key", "", srv.URL)
	require.NoError(t, err)

	req := NewRequest("", "system", "analyze")
	req.WebSearch = true
	resp, err := p.Complete(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "### Executive Summary\nok", resp.Content)
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, 5, resp.Usage.TotalTokens)
	assert.Equal(t, []report.Citation{{URI: "https://proff.dk/x", Title: "Proff"}}, resp.Citations)
}
