package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNewTokenSource(t *testing.T) {
	_, err := NewTokenSource("   ")
	require.ErrorIs(t, err, ErrNoToken)

	ts, err := NewTokenSource(" abc123 ")
	require.NoError(t, err)

	token, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token.AccessToken)
	assert.Equal(t, TokenType, token.TokenType)
}

func TestTransportSetsHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ts, err := NewTokenSource("secret-token")
	require.NoError(t, err)

	client := &http.Client{Transport: NewTransport(ts, nil)}
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "secret-token", got.Get("apptoken"))
	assert.Equal(t, AppPlatform, got.Get("appPlatform"))
	assert.Equal(t, AppName, got.Get("appname"))
	assert.Empty(t, req.Header.Get("apptoken"), "caller's request must not be modified")
}

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("boom")
}

func TestTransportTokenError(t *testing.T) {
	client := &http.Client{Transport: NewTransport(failingSource{}, nil)}

	_, err := client.Get("http://127.0.0.1:1/unused")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getting app token")
}
