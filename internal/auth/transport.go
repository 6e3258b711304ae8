package auth

import (
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// Transport adds the app token headers to every request
type Transport struct {
	source oauth2.TokenSource
	base   http.RoundTripper

	mu    sync.Mutex
	token *oauth2.Token
}

// NewTransport wraps base (http.DefaultTransport when nil)
func NewTransport(source oauth2.TokenSource, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		source: oauth2.ReuseTokenSource(nil, source),
		base:   base,
	}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.currentToken()
	if err != nil {
		return nil, fmt.Errorf("getting app token: %w", err)
	}

	// RoundTrippers must not modify the caller's request
	r := req.Clone(req.Context())
	r.Header.Set("apptoken", token.AccessToken)
	r.Header.Set("appPlatform", AppPlatform)
	r.Header.Set("appname", AppName)

	return t.base.RoundTrip(r)
}

func (t *Transport) currentToken() (*oauth2.Token, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token.Valid() {
		return t.token, nil
	}

	token, err := t.source.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, ErrNoToken
	}
	t.token = token
	return token, nil
}
