package providers

import (
	"github.com/thomas-vilte/prtitle/internal/config"
	"github.com/thomas-vilte/prtitle/internal/vcs"
	"github.com/thomas-vilte/prtitle/internal/vcs/github"
)

// NewVCSClientFactory creates the GitHub client factory from configuration.
func NewVCSClientFactory(cfg *config.Config) (vcs.ClientFactory, error) {
	f, err := github.NewClientFactory(cfg.GitHub)
	if err != nil {
		return nil, err
	}
	return f, nil
}
