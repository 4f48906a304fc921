package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
	"github.com/thomas-vilte/prtitle/internal/vcs"
)

const filesPerPage = 100

var _ vcs.VCSClient = (*GitHubClient)(nil)

type PullRequestsService interface {
	Edit(ctx context.Context, owner, repo string, number int, pr *github.PullRequest) (*github.PullRequest, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

type IssuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

type GitHubClient struct {
	prService     PullRequestsService
	issuesService IssuesService
	owner         string
	repo          string
}

func NewGitHubClient(client *github.Client, owner, repo string) *GitHubClient {
	return NewGitHubClientWithServices(client.PullRequests, client.Issues, owner, repo)
}

func NewGitHubClientWithServices(prService PullRequestsService, issuesService IssuesService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		prService:     prService,
		issuesService: issuesService,
		owner:         owner,
		repo:          repo,
	}
}

func (ghc *GitHubClient) ListChangedFiles(ctx context.Context, prNumber int) ([]models.ChangedFile, error) {
	log := logger.FromContext(ctx)

	log.Debug("listing pull request files",
		"repo", ghc.fullRepo(),
		"number", prNumber)

	var files []models.ChangedFile
	opts := &github.ListOptions{PerPage: filesPerPage}

	for {
		page, resp, err := ghc.prService.ListFiles(ctx, ghc.owner, ghc.repo, prNumber, opts)
		if err != nil {
			return nil, ghc.mapError(resp, err, domainErrors.ErrListFiles, "list files", prNumber)
		}

		for _, f := range page {
			files = append(files, models.ChangedFile{
				Filename: f.GetFilename(),
				Patch:    f.GetPatch(),
			})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debug("pull request files listed",
		"repo", ghc.fullRepo(),
		"number", prNumber,
		"count", len(files))

	return files, nil
}

func (ghc *GitHubClient) CreateComment(ctx context.Context, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}

	_, resp, err := ghc.issuesService.CreateComment(ctx, ghc.owner, ghc.repo, number, comment)
	if err != nil {
		return ghc.mapError(resp, err, domainErrors.ErrCreateComment, "create comment", number)
	}

	logger.Debug(ctx, "comment created", "repo", ghc.fullRepo(), "number", number)
	return nil
}

func (ghc *GitHubClient) UpdateTitle(ctx context.Context, prNumber int, title string) error {
	pr := &github.PullRequest{Title: github.Ptr(title)}

	_, resp, err := ghc.prService.Edit(ctx, ghc.owner, ghc.repo, prNumber, pr)
	if err != nil {
		return ghc.mapError(resp, err, domainErrors.ErrUpdateTitle, "update title", prNumber)
	}

	logger.Debug(ctx, "pull request title updated", "repo", ghc.fullRepo(), "number", prNumber)
	return nil
}

func (ghc *GitHubClient) mapError(resp *github.Response, err error, sentinel *domainErrors.AppError, operation string, number int) error {
	base := sentinel
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
		if status == http.StatusForbidden {
			base = domainErrors.ErrGitHubInsufficientPerms
		}
	}

	appErr := base.WithError(err).
		WithContext("operation", operation).
		WithContext("number", number).
		WithContext("repo", ghc.fullRepo())
	if status != 0 {
		appErr = appErr.WithContext("status_code", status)
	}
	return appErr
}

func (ghc *GitHubClient) fullRepo() string {
	return fmt.Sprintf("%s/%s", ghc.owner, ghc.repo)
}
