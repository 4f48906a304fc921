package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/httpclient"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
)

const providerName = string(config.AIOpenAI)

var _ ai.TitleSuggester = (*TitleSuggester)(nil)

// CompleteFunc performs one chat completion call.
type CompleteFunc func(ctx context.Context, req models.CompletionRequest) (*models.CompletionResponse, error)

// TitleSuggester asks an OpenAI-compatible chat completion API for a title.
type TitleSuggester struct {
	client     openaisdk.Client
	model      string
	completeFn CompleteFunc
}

func NewTitleSuggester(cfg *config.Config) (*TitleSuggester, error) {
	if cfg.AI.OpenAIAPIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing.WithContext("provider", providerName)
	}

	baseURL := cfg.AI.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultOpenAIBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	// The bearer header comes from the HTTP client; the SDK must not retry.
	client := openaisdk.NewClient(
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpclient.NewBearer(cfg.AI.OpenAIAPIKey, cfg.AI.Timeout)),
		option.WithMaxRetries(0),
	)

	s := &TitleSuggester{
		client: client,
		model:  cfg.AI.ModelName(),
	}
	s.completeFn = s.defaultComplete

	return s, nil
}

func (s *TitleSuggester) ProviderName() string {
	return providerName
}

func (s *TitleSuggester) SuggestTitle(ctx context.Context, changesContext string) (string, error) {
	log := logger.FromContext(ctx)

	req := ai.NewCompletionRequest(s.model, ai.BuildTitlePrompt(changesContext))

	log.Debug("requesting title suggestion",
		"provider", providerName,
		"model", s.model,
		"context_length", len(changesContext))

	resp, err := s.completeFn(ctx, req)
	if err != nil {
		log.Error("chat completion failed", "provider", providerName, "error", err)
		return "", err
	}

	return ai.FirstChoice(resp)
}

func (s *TitleSuggester) defaultComplete(ctx context.Context, req models.CompletionRequest) (*models.CompletionResponse, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model:    openaisdk.ChatModel(req.Model),
		Messages: toSDKMessages(req.Messages),
	}

	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &models.CompletionResponse{Choices: make([]models.Choice, 0, len(completion.Choices))}
	for _, c := range completion.Choices {
		resp.Choices = append(resp.Choices, models.Choice{
			Message: models.Message{Role: models.RoleAssistant, Content: c.Message.Content},
		})
	}
	return resp, nil
}

func toSDKMessages(msgs []models.Message) []openaisdk.ChatCompletionMessageParamUnion {
	out := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case models.RoleSystem:
			out = append(out, openaisdk.SystemMessage(m.Content))
		case models.RoleAssistant:
			out = append(out, openaisdk.AssistantMessage(m.Content))
		default:
			out = append(out, openaisdk.UserMessage(m.Content))
		}
	}
	return out
}

func mapError(err error) error {
	var apiErr *openaisdk.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domainErrors.ErrAIAuth.WithError(err).WithContext("status_code", apiErr.StatusCode)
		default:
			return domainErrors.ErrAIGeneration.WithError(err).WithContext("status_code", apiErr.StatusCode)
		}
	}
	return domainErrors.ErrAIGeneration.WithError(err)
}
