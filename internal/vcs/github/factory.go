package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v80/github"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/httpclient"
	"github.com/thomas-vilte/prtitle/internal/vcs"
)

var _ vcs.ClientFactory = (*ClientFactory)(nil)

// ClientFactory authenticates as a GitHub App installation when an App ID and
// private key are configured, and falls back to a static token otherwise.
type ClientFactory struct {
	cfg        config.GitHubConfig
	privateKey []byte
	transport  http.RoundTripper
}

func NewClientFactory(cfg config.GitHubConfig) (*ClientFactory, error) {
	f := &ClientFactory{
		cfg:       cfg,
		transport: http.DefaultTransport,
	}

	if cfg.UsesApp() {
		key, err := loadPrivateKey(cfg)
		if err != nil {
			return nil, err
		}
		f.privateKey = key
	} else if cfg.Token == "" {
		return nil, domainErrors.ErrGitHubCredentialsMissing
	}

	return f, nil
}

func (f *ClientFactory) ForRepository(ctx context.Context, installationID int64, owner, repo string) (vcs.VCSClient, error) {
	httpClient, err := f.httpClient(installationID)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(httpClient)
	if f.cfg.BaseURL != "" {
		client, err = client.WithEnterpriseURLs(f.cfg.BaseURL, f.cfg.BaseURL)
		if err != nil {
			return nil, domainErrors.ErrGitHubClient.WithError(err).WithContext("base_url", f.cfg.BaseURL)
		}
	}

	return NewGitHubClient(client, owner, repo), nil
}

func (f *ClientFactory) httpClient(installationID int64) (*http.Client, error) {
	if f.privateKey != nil && installationID != 0 {
		itr, err := ghinstallation.New(f.transport, f.cfg.AppID, installationID, f.privateKey)
		if err != nil {
			return nil, domainErrors.ErrGitHubClient.WithError(err).
				WithContext("app_id", f.cfg.AppID).
				WithContext("installation_id", installationID)
		}
		if f.cfg.BaseURL != "" {
			itr.BaseURL = strings.TrimSuffix(enterpriseAPIURL(f.cfg.BaseURL), "/")
		}
		return httpclient.New(itr, f.cfg.Timeout), nil
	}

	if f.cfg.Token == "" {
		return nil, domainErrors.ErrGitHubCredentialsMissing.
			WithError(errors.New("installation auth needs an installation id; configure github.token for direct runs"))
	}

	return httpclient.New(httpclient.BearerTransport(f.cfg.Token, f.transport), f.cfg.Timeout), nil
}

func loadPrivateKey(cfg config.GitHubConfig) ([]byte, error) {
	if cfg.PrivateKey != "" {
		// Environment variables often carry the PEM with escaped newlines.
		return []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")), nil
	}

	key, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, domainErrors.ErrGitHubCredentialsMissing.
			WithContext("private_key_path", cfg.PrivateKeyPath).
			WithError(fmt.Errorf("reading private key: %w", err))
	}
	return key, nil
}

// enterpriseAPIURL mirrors go-github's WithEnterpriseURLs so installation
// tokens are minted against the same API root.
func enterpriseAPIURL(base string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if !strings.HasSuffix(base, "/api/v3/") && !strings.HasPrefix(base, "https://api.") && !strings.Contains(base, ".api.") {
		base += "api/v3/"
	}
	return base
}
