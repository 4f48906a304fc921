package gemini

import (
	"context"
	"strings"

	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/httpclient"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
	"google.golang.org/genai"
)

const providerName = string(config.AIGemini)

var _ ai.TitleSuggester = (*TitleSuggester)(nil)

// GenerateFunc performs one GenerateContent call.
type GenerateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

type TitleSuggester struct {
	client     *genai.Client
	model      string
	generateFn GenerateFunc
}

func NewTitleSuggester(ctx context.Context, cfg *config.Config) (*TitleSuggester, error) {
	if cfg.AI.GeminiAPIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing.WithContext("provider", providerName)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.AI.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpclient.New(nil, cfg.AI.Timeout),
	})
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}

	s := &TitleSuggester{
		client: client,
		model:  cfg.AI.ModelName(),
	}
	s.generateFn = s.defaultGenerate

	return s, nil
}

func (s *TitleSuggester) ProviderName() string {
	return providerName
}

func (s *TitleSuggester) SuggestTitle(ctx context.Context, changesContext string) (string, error) {
	log := logger.FromContext(ctx)

	req := ai.NewCompletionRequest(s.model, ai.BuildTitlePrompt(changesContext))
	contents, genConfig := toGenerateInput(req)

	log.Debug("requesting title suggestion",
		"provider", providerName,
		"model", s.model,
		"context_length", len(changesContext))

	resp, err := s.generateFn(ctx, req.Model, contents, genConfig)
	if err != nil {
		log.Error("gemini API call failed", "model", s.model, "error", err)
		return "", mapError(err)
	}

	return ai.FirstChoice(toCompletionResponse(resp))
}

func (s *TitleSuggester) defaultGenerate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return s.client.Models.GenerateContent(ctx, model, contents, cfg)
}

// toGenerateInput sends system messages as the system instruction and the
// rest as user content.
func toGenerateInput(req models.CompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	genConfig := &genai.GenerateContentConfig{}
	var contents []*genai.Content

	for _, m := range req.Messages {
		switch m.Role {
		case models.RoleSystem:
			genConfig.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
		case models.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	return contents, genConfig
}

// toCompletionResponse turns each candidate into a choice, dropping thought
// parts.
func toCompletionResponse(resp *genai.GenerateContentResponse) *models.CompletionResponse {
	out := &models.CompletionResponse{}
	if resp == nil {
		return out
	}

	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var text strings.Builder
		for _, part := range cand.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			text.WriteString(part.Text)
		}
		out.Choices = append(out.Choices, models.Choice{
			Message: models.Message{Role: models.RoleAssistant, Content: text.String()},
		})
	}

	return out
}

func mapError(err error) error {
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "api key") ||
		strings.Contains(errMsg, "unauthorized") ||
		strings.Contains(errMsg, "permission denied") {
		return domainErrors.ErrAIAuth.WithError(err).WithContext("provider", providerName)
	}
	return domainErrors.ErrAIGeneration.WithError(err).WithContext("provider", providerName)
}
