// Package llm is the optional free-form generation collaborator. It may
// only rephrase content the pipeline has already decided on: stage,
// resources and the gate outcome are fixed before any provider is called,
// and a provider that invents content has its output discarded.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

// Provider is an LLM backend capable of rephrasing an approved message
type Provider interface {
	// Name returns the provider name
	Name() string

	// Rephrase rewrites the message in a warmer register without adding
	// information
	Rephrase(ctx context.Context, req RephraseRequest) (*RephraseResponse, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// RephraseRequest is the input for message polishing
type RephraseRequest struct {
	// Message is the deterministic, already-approved reply text
	Message string

	// Stage sets the register the rephrasing should keep
	Stage model.Stage

	// AllowedMentions is the strict allowlist of service and article names
	// the output may reference
	AllowedMentions []string

	// Model overrides the configured model (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// RephraseResponse is a provider's polished output
type RephraseResponse struct {
	Message    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	Provider  string // "openai", "ollama", ""
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

// BuildPrompt constructs the rephrasing prompt with the mention allowlist
func BuildPrompt(req RephraseRequest) string {
	return fmt.Sprintf(`Rewrite the support message below so it reads warmly and naturally for someone at the %q stage of their support journey.

STRICT RULES:
1. Do NOT add any service, organisation, phone number, website or fact that is not already in the message.
2. You may only mention these names: %s
3. Keep every phone number and URL from the original exactly as written.
4. Do not give medical or legal advice beyond what the message already says.
5. Keep roughly the same length.

Message:
%s`, req.Stage, joinMentions(req.AllowedMentions), req.Message)
}

func joinMentions(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, "; ")
}
