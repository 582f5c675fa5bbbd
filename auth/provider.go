package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// Profile is the identity returned by the provider after a successful exchange.
type Profile struct {
	ID      string `json:"id"` // Provider-assigned subject
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Provider is the external identity service behind the login flow.
type Provider interface {
	// AuthCodeURL returns the consent screen URL carrying state.
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for a token. A rejection by the
	// provider is reported as errors.ErrTokenExchange.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Profile(ctx context.Context, token *oauth2.Token) (Profile, error)
	// TokenSource returns a source that refreshes token when it expires.
	TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource
}
