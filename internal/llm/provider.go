package llm

import (
	"context"
	"errors"

	"github.com/sant0-9/intelligenn/internal/report"
)

// ErrMissingAPIKey is returned by the factory when a hosted provider has no key.
var ErrMissingAPIKey = errors.New("missing API key")

// Provider is the interface all LLM providers must implement
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a completion request and returns the full response
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Ping checks if the provider is reachable
	Ping(ctx context.Context) error
}

// CompletionRequest represents a request to the LLM
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	// WebSearch asks providers that support it to ground the answer in live
	// search results. Others ignore it.
	WebSearch bool
}

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionResponse represents the full response
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
	// Citations lists the web sources a grounded answer was built from, in
	// the order the provider returned them. They are not filtered.
	Citations []report.Citation
}

// Usage tracks token usage
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// NewRequest creates a simple completion request
func NewRequest(model string, systemPrompt, userPrompt string) *CompletionRequest {
	var msgs []Message
	if systemPrompt != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: systemPrompt})
	}
	msgs = append(msgs, Message{Role: RoleUser, Content: userPrompt})

	return &CompletionRequest{
		Model:       model,
		Messages:    msgs,
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}
