package models

// IssueEvent identifies an issue delivered by a webhook.
type IssueEvent struct {
	Action         string
	Owner          string
	Repo           string
	Number         int
	Title          string
	InstallationID int64
	DeliveryID     string
}

// FullRepo returns the "owner/repo" form used in logs.
func (e IssueEvent) FullRepo() string {
	return e.Owner + "/" + e.Repo
}
