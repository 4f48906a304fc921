package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) Edit(ctx context.Context, owner, repo string, number int, pr *github.PullRequest) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, pr)
	return responseOrNil[*github.PullRequest](args.Get(0)), responseOrNil[*github.Response](args.Get(1)), args.Error(2)
}

func (m *MockPRService) ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
	// Copy the page so expectations matched on opts are not affected by the
	// caller advancing it afterwards.
	var page github.ListOptions
	if opts != nil {
		page = *opts
	}
	args := m.Called(ctx, owner, repo, number, page)
	return responseOrNil[[]*github.CommitFile](args.Get(0)), responseOrNil[*github.Response](args.Get(1)), args.Error(2)
}

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	return responseOrNil[*github.IssueComment](args.Get(0)), responseOrNil[*github.Response](args.Get(1)), args.Error(2)
}

func responseOrNil[T any](v interface{}) T {
	var zero T
	if v == nil {
		return zero
	}
	return v.(T)
}
