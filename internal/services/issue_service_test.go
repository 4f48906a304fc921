package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/models"
)

func issueEvent(action string) models.IssueEvent {
	return models.IssueEvent{
		Action:         action,
		Owner:          "octo",
		Repo:           "hello",
		Number:         3,
		Title:          "Crash on start",
		InstallationID: 1001,
	}
}

func TestIssueService_GreetIssue(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		comment string
	}{
		{name: "should greet opened issues", action: "opened", comment: "Hello from my GitHub App"},
		{name: "should thank on reopened issues", action: "reopened", comment: "Reopened issue, thanks for the update!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockVCSClient{}
			factory := &MockClientFactory{}
			factory.On("ForRepository", mock.Anything, int64(1001), "octo", "hello").Return(client, nil).Once()
			client.On("CreateComment", mock.Anything, 3, tt.comment).Return(nil).Once()
			service := NewIssueService(WithIssueClientFactory(factory))

			err := service.GreetIssue(context.Background(), issueEvent(tt.action))

			assert.NoError(t, err)
			client.AssertExpectations(t)
			factory.AssertExpectations(t)
		})
	}

	t.Run("should ignore other actions", func(t *testing.T) {
		factory := &MockClientFactory{}
		service := NewIssueService(WithIssueClientFactory(factory))

		err := service.GreetIssue(context.Background(), issueEvent("closed"))

		assert.NoError(t, err)
		factory.AssertNotCalled(t, "ForRepository", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should return comment failures", func(t *testing.T) {
		client := &MockVCSClient{}
		factory := &MockClientFactory{}
		factory.On("ForRepository", mock.Anything, int64(1001), "octo", "hello").Return(client, nil)
		client.On("CreateComment", mock.Anything, 3, mock.Anything).Return(domainErrors.ErrCreateComment)
		service := NewIssueService(WithIssueClientFactory(factory))

		err := service.GreetIssue(context.Background(), issueEvent("opened"))

		assert.ErrorIs(t, err, domainErrors.ErrCreateComment)
	})
}
