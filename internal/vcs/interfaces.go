package vcs

import (
	"context"

	"github.com/thomas-vilte/prtitle/internal/models"
)

// VCSClient defines the calls the title checker makes against one repository.
type VCSClient interface {
	// ListChangedFiles returns every file touched by the pull request, across all pages.
	ListChangedFiles(ctx context.Context, prNumber int) ([]models.ChangedFile, error)
	// CreateComment posts body on the pull request or issue conversation.
	CreateComment(ctx context.Context, number int, body string) error
	// UpdateTitle replaces the pull request title.
	UpdateTitle(ctx context.Context, prNumber int, title string) error
}

// ClientFactory builds a VCSClient scoped to one repository, authenticated for
// the installation that delivered the event. installationID is 0 outside of
// webhook deliveries.
type ClientFactory interface {
	ForRepository(ctx context.Context, installationID int64, owner, repo string) (VCSClient, error)
}
