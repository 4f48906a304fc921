package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/prtitle/internal/models"
	"github.com/thomas-vilte/prtitle/internal/vcs"
)

type (
	MockVCSClient struct {
		mock.Mock
	}

	MockClientFactory struct {
		mock.Mock
	}

	MockTitleSuggester struct {
		mock.Mock
	}
)

func (m *MockVCSClient) ListChangedFiles(ctx context.Context, prNumber int) ([]models.ChangedFile, error) {
	args := m.Called(ctx, prNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChangedFile), args.Error(1)
}

func (m *MockVCSClient) CreateComment(ctx context.Context, number int, body string) error {
	args := m.Called(ctx, number, body)
	return args.Error(0)
}

func (m *MockVCSClient) UpdateTitle(ctx context.Context, prNumber int, title string) error {
	args := m.Called(ctx, prNumber, title)
	return args.Error(0)
}

func (m *MockClientFactory) ForRepository(ctx context.Context, installationID int64, owner, repo string) (vcs.VCSClient, error) {
	args := m.Called(ctx, installationID, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(vcs.VCSClient), args.Error(1)
}

func (m *MockTitleSuggester) SuggestTitle(ctx context.Context, changesContext string) (string, error) {
	args := m.Called(ctx, changesContext)
	return args.String(0), args.Error(1)
}

func (m *MockTitleSuggester) ProviderName() string {
	args := m.Called()
	return args.String(0)
}
