package webhook

import (
	"context"
	"fmt"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/models"
)

type titleValidator interface {
	ValidatePullRequest(ctx context.Context, ev models.PullRequestEvent) (models.RemediationResult, error)
}

type issueGreeter interface {
	GreetIssue(ctx context.Context, ev models.IssueEvent) error
}

// NewDefaultRouter wires the pull request and issue events the app reacts to.
func NewDefaultRouter(titles titleValidator, issues issueGreeter) *Router {
	r := NewRouter()

	prHandler := PullRequestHandler(titles)
	r.Register(KindPullRequestOpened, prHandler)
	r.Register(KindPullRequestSynchronize, prHandler)
	r.Register(KindPullRequestEdited, prHandler)

	issueHandler := IssuesHandler(issues)
	r.Register(KindIssuesOpened, issueHandler)
	r.Register(KindIssuesReopened, issueHandler)

	return r
}

func PullRequestHandler(svc titleValidator) Handler {
	return func(ctx context.Context, payload interface{}, d Delivery) (Result, error) {
		ev, ok := payload.(*github.PullRequestEvent)
		if !ok {
			return Result{}, domainErrors.ErrInvalidPayload.WithContext("expected", "pull_request").
				WithError(fmt.Errorf("unexpected payload type %T", payload))
		}

		repo := ev.GetRepo()
		if repo.GetOwner().GetLogin() == "" || repo.GetName() == "" || ev.GetNumber() == 0 {
			return Result{}, domainErrors.ErrInvalidPayload.WithContext("reason", "missing repository or pull request number")
		}

		res, err := svc.ValidatePullRequest(ctx, models.PullRequestEvent{
			Action:         ev.GetAction(),
			Owner:          repo.GetOwner().GetLogin(),
			Repo:           repo.GetName(),
			Number:         ev.GetNumber(),
			Title:          ev.GetPullRequest().GetTitle(),
			InstallationID: ev.GetInstallation().GetID(),
			DeliveryID:     d.ID,
		})
		if err != nil {
			return Result{}, err
		}
		return Result{SuggestedTitle: res.SuggestedTitle}, nil
	}
}

func IssuesHandler(svc issueGreeter) Handler {
	return func(ctx context.Context, payload interface{}, d Delivery) (Result, error) {
		ev, ok := payload.(*github.IssuesEvent)
		if !ok {
			return Result{}, domainErrors.ErrInvalidPayload.WithContext("expected", "issues").
				WithError(fmt.Errorf("unexpected payload type %T", payload))
		}

		repo := ev.GetRepo()
		if repo.GetOwner().GetLogin() == "" || repo.GetName() == "" || ev.GetIssue().GetNumber() == 0 {
			return Result{}, domainErrors.ErrInvalidPayload.WithContext("reason", "missing repository or issue number")
		}

		err := svc.GreetIssue(ctx, models.IssueEvent{
			Action:         ev.GetAction(),
			Owner:          repo.GetOwner().GetLogin(),
			Repo:           repo.GetName(),
			Number:         ev.GetIssue().GetNumber(),
			Title:          ev.GetIssue().GetTitle(),
			InstallationID: ev.GetInstallation().GetID(),
			DeliveryID:     d.ID,
		})
		return Result{}, err
	}
}
