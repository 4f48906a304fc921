package ai

import (
	"context"
	"time"

	"github.com/thomas-vilte/prtitle/internal/logger"
)

// UsageRecorder receives one call per completion request.
type UsageRecorder interface {
	CompletionRequest(provider string, elapsed time.Duration, err error)
}

// TrackingSuggester wraps a TitleSuggester and reports the latency and outcome
// of every request.
type TrackingSuggester struct {
	next     TitleSuggester
	recorder UsageRecorder
	now      func() time.Time
}

var _ TitleSuggester = (*TrackingSuggester)(nil)

func NewTrackingSuggester(next TitleSuggester, recorder UsageRecorder) *TrackingSuggester {
	return &TrackingSuggester{
		next:     next,
		recorder: recorder,
		now:      time.Now,
	}
}

func (w *TrackingSuggester) SuggestTitle(ctx context.Context, changesContext string) (string, error) {
	start := w.now()
	provider := w.next.ProviderName()

	title, err := w.next.SuggestTitle(ctx, changesContext)
	elapsed := w.now().Sub(start)

	if w.recorder != nil {
		w.recorder.CompletionRequest(provider, elapsed, err)
	}

	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn("completion request failed",
			"provider", provider,
			"duration", elapsed,
			"error", err)
		return "", err
	}

	log.Debug("completion request finished",
		"provider", provider,
		"duration", elapsed,
		"suggested_title", title)

	return title, nil
}

func (w *TrackingSuggester) ProviderName() string {
	return w.next.ProviderName()
}
