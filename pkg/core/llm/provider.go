// Package llm abstracts the language-model collaborator used by the deal
// analyzer. The pipeline itself never depends on a concrete provider; it
// only needs GenerateResponse, and it must keep working when no provider
// is configured at all.
package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
