package auth

import (
	"errors"
	"strings"

	"golang.org/x/oauth2"
)

const (
	// Headers the Zepp web client sends along with the app token
	AppPlatform = "web"
	AppName     = "com.xiaomi.hm.health"

	// TokenType marks tokens sent in the apptoken header instead of Authorization
	TokenType = "apptoken"
)

// ErrNoToken is returned when no app token is configured
var ErrNoToken = errors.New("no app token configured")

// NewTokenSource returns a token source for a static app token, such as
// the one copied from a logged-in Zepp web session
func NewTokenSource(appToken string) (oauth2.TokenSource, error) {
	appToken = strings.TrimSpace(appToken)
	if appToken == "" {
		return nil, ErrNoToken
	}
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: appToken,
		TokenType:   TokenType,
	}), nil
}
