package ai

import (
	"context"
)

// TitleSuggester is an interface that defines the service to suggest pull request titles.
type TitleSuggester interface {
	// SuggestTitle returns a title suggestion for the changes described in changesContext.
	// The suggestion is returned verbatim as produced by the model.
	SuggestTitle(ctx context.Context, changesContext string) (string, error)

	// ProviderName returns the name of the provider (e.g.: "openai", "gemini")
	ProviderName() string
}
