package httpclient

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// New returns a client bounded by timeout on top of base. A nil base uses
// http.DefaultTransport.
func New(base http.RoundTripper, timeout time.Duration) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: base,
	}
}

// NewBearer returns a client that sends "Authorization: Bearer <token>" on
// every request.
func NewBearer(token string, timeout time.Duration) *http.Client {
	return New(BearerTransport(token, nil), timeout)
}

// BearerTransport wraps base so each request carries token as a bearer
// credential.
func BearerTransport(token string, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base:   base,
	}
}
