package providers

import (
	"context"

	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/ai/gemini"
	"github.com/thomas-vilte/prtitle/internal/ai/openai"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
)

// NewTitleSuggester creates a TitleSuggester for the configured provider.
// On error the returned interface is nil, never a typed nil.
func NewTitleSuggester(ctx context.Context, cfg *config.Config) (ai.TitleSuggester, error) {
	switch cfg.AI.Provider {
	case config.AIOpenAI, "":
		s, err := openai.NewTitleSuggester(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.AIGemini:
		s, err := gemini.NewTitleSuggester(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, domainErrors.ErrProviderNotSupported.WithContext("provider", string(cfg.AI.Provider))
	}
}
