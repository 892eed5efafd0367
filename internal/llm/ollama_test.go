package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req ollamaChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, "llama3.1:8b", req.Model)

		_, _ = w.Write([]byte(`{
			"model": "llama3.1:8b",
			"message": {"role": "assistant", "content": "hello"},
			"done": true,
			"done_reason": "stop",
			"prompt_eval_count": 10,
			"eval_count": 5
		}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.1:8b")
	assert.Equal(t, "ollama", p.Name())

	resp, err := p.Complete(context.Background(), NewRequest("", "", "hi"))
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestOllamaPingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	err := NewOllamaProvider(srv.URL, "m").Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot connect to Ollama")
}
