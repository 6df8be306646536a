package services

import (
	"context"
	"fmt"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

// LLMProvider sends a prompt to a text-generation API and returns the raw
// text response.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// ProviderRegistry resolves a provider name from the API surface to a
// configured client. Providers without credentials are simply absent.
type ProviderRegistry struct {
	providers map[models.AIProvider]LLMProvider
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{providers: make(map[models.AIProvider]LLMProvider)}
}

func (r *ProviderRegistry) Register(name models.AIProvider, provider LLMProvider) {
	r.providers[name] = provider
}

func (r *ProviderRegistry) Get(name models.AIProvider) (LLMProvider, error) {
	provider, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q is not configured", name)
	}
	return provider, nil
}

func (r *ProviderRegistry) Has(name models.AIProvider) bool {
	_, ok := r.providers[name]
	return ok
}
