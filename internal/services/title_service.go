package services

import (
	"context"

	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/config"
	"github.com/thomas-vilte/prtitle/internal/conventional"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/metrics"
	"github.com/thomas-vilte/prtitle/internal/models"
	"github.com/thomas-vilte/prtitle/internal/vcs"
)

// titleAIProvider defines the methods needed by TitleService from an AI provider.
type titleAIProvider interface {
	SuggestTitle(ctx context.Context, changesContext string) (string, error)
	ProviderName() string
}

// messageTranslator renders the comment bodies in the configured language.
type messageTranslator interface {
	GetMessage(messageID string, count int, templateData map[string]interface{}) string
}

var _ titleAIProvider = (ai.TitleSuggester)(nil)

// TitleService checks pull request titles and, when one does not conform,
// replaces it with a suggestion derived from the changed files.
type TitleService struct {
	clients      vcs.ClientFactory
	suggester    titleAIProvider
	translations messageTranslator
	metrics      *metrics.Metrics
}

type TitleOption func(*TitleService)

func WithTitleClientFactory(f vcs.ClientFactory) TitleOption {
	return func(s *TitleService) {
		s.clients = f
	}
}

func WithTitleSuggester(p titleAIProvider) TitleOption {
	return func(s *TitleService) {
		s.suggester = p
	}
}

func WithTitleTranslations(t messageTranslator) TitleOption {
	return func(s *TitleService) {
		s.translations = t
	}
}

func WithTitleMetrics(m *metrics.Metrics) TitleOption {
	return func(s *TitleService) {
		s.metrics = m
	}
}

func NewTitleService(opts ...TitleOption) *TitleService {
	s := &TitleService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.translations == nil {
		s.translations = defaultTranslations()
	}
	return s
}

// ValidatePullRequest classifies the event title. A conforming title gets a
// single confirmation comment. Otherwise the service comments on the
// violation, asks for a suggestion built from the changed files, posts it and
// retitles the pull request. The first failing call aborts the remaining
// steps; comments already posted stay.
func (s *TitleService) ValidatePullRequest(ctx context.Context, ev models.PullRequestEvent) (models.RemediationResult, error) {
	ctx = logger.With(ctx, "repo", ev.FullRepo(), "number", ev.Number)
	log := logger.FromContext(ctx)

	conforms := conventional.IsConventional(ev.Title)
	s.metrics.TitleClassified(conforms)

	log.Info("pull request title classified",
		"title", ev.Title,
		"conforms", conforms)

	if s.clients == nil {
		return models.RemediationResult{}, domainErrors.ErrGitHubCredentialsMissing
	}

	client, err := s.clients.ForRepository(ctx, ev.InstallationID, ev.Owner, ev.Repo)
	if err != nil {
		log.Error("failed to build GitHub client", "error", err)
		return s.fail(err)
	}

	if conforms {
		if err := client.CreateComment(ctx, ev.Number, s.translations.GetMessage("title_conforms", 0, nil)); err != nil {
			log.Error("failed to post confirmation comment", "error", err)
			return s.fail(err)
		}
		s.metrics.Remediation(metrics.OutcomeConforming)
		return models.RemediationResult{Conforms: true}, nil
	}

	if s.suggester == nil {
		log.Error("AI provider not configured")
		return s.fail(domainErrors.ErrAPIKeyMissing)
	}

	if err := client.CreateComment(ctx, ev.Number, s.translations.GetMessage("title_not_conforming", 0, nil)); err != nil {
		log.Error("failed to post violation comment", "error", err)
		return s.fail(err)
	}

	files, err := client.ListChangedFiles(ctx, ev.Number)
	if err != nil {
		log.Error("failed to list changed files", "error", err)
		return s.fail(err)
	}

	changes := ai.BuildChangesContext(files)

	log.Debug("requesting title suggestion",
		"provider", s.suggester.ProviderName(),
		"files", len(files),
		"context_length", len(changes))

	suggestion, err := s.suggester.SuggestTitle(ctx, changes)
	if err != nil {
		log.Error("failed to obtain title suggestion", "error", err)
		return s.fail(err)
	}

	body := s.translations.GetMessage("title_suggestion_header", 0, nil) + "\n" + suggestion
	if err := client.CreateComment(ctx, ev.Number, body); err != nil {
		log.Error("failed to post suggestion comment", "error", err)
		return s.fail(err)
	}

	if err := client.UpdateTitle(ctx, ev.Number, suggestion); err != nil {
		log.Error("failed to update pull request title", "error", err)
		return s.fail(err)
	}

	s.metrics.Remediation(metrics.OutcomeRetitled)
	log.Info("pull request retitled", "suggested_title", suggestion)

	return models.RemediationResult{SuggestedTitle: suggestion}, nil
}

func (s *TitleService) fail(err error) (models.RemediationResult, error) {
	s.metrics.Remediation(metrics.OutcomeFailed)
	return models.RemediationResult{}, err
}

func defaultTranslations() messageTranslator {
	t, err := i18n.NewTranslations(config.LangEN)
	if err != nil {
		// The English catalog is embedded; this only trips on a broken build.
		panic(err)
	}
	return t
}
