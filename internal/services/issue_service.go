package services

import (
	"context"

	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
	"github.com/thomas-vilte/prtitle/internal/vcs"
)

const (
	IssueActionOpened   = "opened"
	IssueActionReopened = "reopened"
)

// IssueService greets newly opened and reopened issues.
type IssueService struct {
	clients      vcs.ClientFactory
	translations messageTranslator
}

type IssueOption func(*IssueService)

func WithIssueClientFactory(f vcs.ClientFactory) IssueOption {
	return func(s *IssueService) {
		s.clients = f
	}
}

func WithIssueTranslations(t messageTranslator) IssueOption {
	return func(s *IssueService) {
		s.translations = t
	}
}

func NewIssueService(opts ...IssueOption) *IssueService {
	s := &IssueService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.translations == nil {
		s.translations = defaultTranslations()
	}
	return s
}

// GreetIssue comments on opened and reopened issues. Other actions are a no-op.
func (s *IssueService) GreetIssue(ctx context.Context, ev models.IssueEvent) error {
	var messageID string
	switch ev.Action {
	case IssueActionOpened:
		messageID = "issue_opened"
	case IssueActionReopened:
		messageID = "issue_reopened"
	default:
		return nil
	}

	if s.clients == nil {
		return domainErrors.ErrGitHubCredentialsMissing
	}

	client, err := s.clients.ForRepository(ctx, ev.InstallationID, ev.Owner, ev.Repo)
	if err != nil {
		return err
	}

	if err := client.CreateComment(ctx, ev.Number, s.translations.GetMessage(messageID, 0, nil)); err != nil {
		logger.Error(ctx, "failed to greet issue", err, "repo", ev.FullRepo(), "number", ev.Number)
		return err
	}

	logger.Info(ctx, "issue greeted", "repo", ev.FullRepo(), "number", ev.Number, "action", ev.Action)
	return nil
}
