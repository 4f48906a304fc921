package remediate

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/prtitle/internal/commands"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/models"
	"github.com/urfave/cli/v3"
)

type MockTitleValidator struct {
	mock.Mock
}

func (m *MockTitleValidator) ValidatePullRequest(ctx context.Context, ev models.PullRequestEvent) (models.RemediationResult, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(models.RemediationResult), args.Error(1)
}

func setupRemediateTest(t *testing.T) *commands.Runtime {
	t.Helper()
	color.NoColor = true

	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	return &commands.Runtime{Config: &config.Config{}, Translations: translations}
}

func runRemediate(t *testing.T, rt *commands.Runtime, provider TitleServiceProvider, args ...string) (string, error) {
	t.Helper()

	cmd := NewRemediateCommand(provider).CreateCommand(rt)
	cmd.Before = nil

	var out bytes.Buffer
	root := &cli.Command{
		Name:           "prtitle",
		Writer:         &out,
		Commands:       []*cli.Command{cmd},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(context.Background(), append([]string{"prtitle", "remediate"}, args...))
	return out.String(), err
}

func TestRemediateCommand(t *testing.T) {
	t.Run("should retitle the pull request and print the new title", func(t *testing.T) {
		rt := setupRemediateTest(t)
		svc := &MockTitleValidator{}
		svc.On("ValidatePullRequest", mock.Anything, models.PullRequestEvent{
			Action: "manual",
			Owner:  "octo",
			Repo:   "hello",
			Number: 12,
			Title:  "Fix bug",
		}).Return(models.RemediationResult{SuggestedTitle: "fix: guard nil config"}, nil).Once()

		provider := func(context.Context, *config.Config, *i18n.Translations) (TitleValidator, error) {
			return svc, nil
		}

		out, err := runRemediate(t, rt, provider, "--owner", "octo", "--repo", "hello", "--pr-number", "12", "--title", "Fix bug")

		require.NoError(t, err)
		assert.Contains(t, out, "Pull request #12 retitled to: fix: guard nil config")
		svc.AssertExpectations(t)
	})

	t.Run("should report a conforming title", func(t *testing.T) {
		rt := setupRemediateTest(t)
		svc := &MockTitleValidator{}
		svc.On("ValidatePullRequest", mock.Anything, mock.Anything).Return(models.RemediationResult{Conforms: true}, nil).Once()

		provider := func(context.Context, *config.Config, *i18n.Translations) (TitleValidator, error) {
			return svc, nil
		}

		out, err := runRemediate(t, rt, provider, "--owner", "octo", "--repo", "hello", "-n", "3", "--title", "feat: add login")

		require.NoError(t, err)
		assert.Contains(t, out, "Pull request #3 already has a conventional title")
	})

	t.Run("should pass the installation id through", func(t *testing.T) {
		rt := setupRemediateTest(t)
		svc := &MockTitleValidator{}
		svc.On("ValidatePullRequest", mock.Anything, mock.MatchedBy(func(ev models.PullRequestEvent) bool {
			return ev.InstallationID == 555
		})).Return(models.RemediationResult{Conforms: true}, nil).Once()

		provider := func(context.Context, *config.Config, *i18n.Translations) (TitleValidator, error) {
			return svc, nil
		}

		_, err := runRemediate(t, rt, provider, "--owner", "o", "--repo", "r", "-n", "1", "--title", "feat: x", "--installation-id", "555")

		require.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("should return provider errors", func(t *testing.T) {
		rt := setupRemediateTest(t)
		provider := func(context.Context, *config.Config, *i18n.Translations) (TitleValidator, error) {
			return nil, domainErrors.ErrAPIKeyMissing
		}

		_, err := runRemediate(t, rt, provider, "--owner", "o", "--repo", "r", "-n", "1", "--title", "Fix bug")

		assert.ErrorIs(t, err, domainErrors.ErrAPIKeyMissing)
	})

	t.Run("should return remediation errors", func(t *testing.T) {
		rt := setupRemediateTest(t)
		svc := &MockTitleValidator{}
		svc.On("ValidatePullRequest", mock.Anything, mock.Anything).Return(models.RemediationResult{}, domainErrors.ErrNoCompletionResponse).Once()

		provider := func(context.Context, *config.Config, *i18n.Translations) (TitleValidator, error) {
			return svc, nil
		}

		_, err := runRemediate(t, rt, provider, "--owner", "o", "--repo", "r", "-n", "1", "--title", "Fix bug")

		assert.ErrorIs(t, err, domainErrors.ErrNoCompletionResponse)
	})

	t.Run("should reject a non-positive pull request number", func(t *testing.T) {
		rt := setupRemediateTest(t)

		_, err := runRemediate(t, rt, nil, "--owner", "o", "--repo", "r", "-n", "0", "--title", "Fix bug")

		assert.Error(t, err)
	})

	t.Run("should require the current title", func(t *testing.T) {
		rt := setupRemediateTest(t)
		called := false
		provider := func(context.Context, *config.Config, *i18n.Translations) (TitleValidator, error) {
			called = true
			return nil, nil
		}

		_, err := runRemediate(t, rt, provider, "--owner", "o", "--repo", "r", "-n", "7")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
		assert.False(t, called)
	})
}

func TestDefaultTitleServiceProvider(t *testing.T) {
	t.Run("should require credentials", func(t *testing.T) {
		rt := setupRemediateTest(t)

		svc, err := DefaultTitleServiceProvider(context.Background(), rt.Config, rt.Translations)

		assert.Nil(t, svc)
		assert.ErrorIs(t, err, domainErrors.ErrAPIKeyMissing)
	})
}
