package llm

import (
	"context"
	"fmt"
	"regexp"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

// Polisher wraps a provider and enforces the rephrase-only contract. If
// the provider's output adds URLs or drops phone numbers, the polished
// text is rejected and the caller keeps the deterministic message.
type Polisher struct {
	provider Provider
	config   Config
}

// NewPolisher creates a polisher, or (nil, nil) when no provider is
// configured
func NewPolisher(config Config) (*Polisher, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Polisher{provider: provider, config: config}, nil
}

// IsEnabled reports whether polishing is active
func (p *Polisher) IsEnabled() bool {
	return p != nil && p.provider != nil
}

// Polish rephrases an approved message. The structured decision is already
// final: on any provider failure or contract violation an error is
// returned and the original message stands.
func (p *Polisher) Polish(ctx context.Context, message string, stage model.Stage, allowedMentions []string) (string, error) {
	resp, err := p.provider.Rephrase(ctx, RephraseRequest{
		Message:         message,
		Stage:           stage,
		AllowedMentions: allowedMentions,
		MaxTokens:       p.config.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "", fmt.Errorf("empty response from %s", p.provider.Name())
	}

	if err := verifyRephrase(message, resp.Message); err != nil {
		return "", err
	}
	return resp.Message, nil
}

var (
	urlPattern   = regexp.MustCompile(`https?://[^\s)\]]+`)
	phonePattern = regexp.MustCompile(`\b(?:999|111|116 123|0[0-9]{3} [0-9]{3,4} [0-9]{3,4})\b`)
)

// verifyRephrase rejects polished text that introduces URLs not present in
// the original or loses any phone number the original carried
func verifyRephrase(original, polished string) error {
	originalURLs := make(map[string]bool)
	for _, u := range urlPattern.FindAllString(original, -1) {
		originalURLs[u] = true
	}
	for _, u := range urlPattern.FindAllString(polished, -1) {
		if !originalURLs[u] {
			return fmt.Errorf("content leak: polished message cites unapproved URL %s", u)
		}
	}

	polishedPhones := make(map[string]bool)
	for _, n := range phonePattern.FindAllString(polished, -1) {
		polishedPhones[n] = true
	}
	for _, n := range phonePattern.FindAllString(original, -1) {
		if !polishedPhones[n] {
			return fmt.Errorf("content loss: polished message dropped phone number %s", n)
		}
	}

	return nil
}
