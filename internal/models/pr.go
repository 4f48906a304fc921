package models

type (
	// PullRequestEvent identifies a pull request delivered by a webhook, with
	// the title it carried at delivery time.
	PullRequestEvent struct {
		Action         string
		Owner          string
		Repo           string
		Number         int
		Title          string
		InstallationID int64
		DeliveryID     string
	}

	// ChangedFile is one file touched by a pull request. Patch is empty when
	// GitHub omits the diff (binary files, diffs that are too large).
	ChangedFile struct {
		Filename string
		Patch    string
	}

	// RemediationResult reports what the title check did for one event.
	RemediationResult struct {
		Conforms       bool
		SuggestedTitle string
	}
)

// FullRepo returns the "owner/repo" form used in logs.
func (e PullRequestEvent) FullRepo() string {
	return e.Owner + "/" + e.Repo
}
