package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"golang.org/x/oauth2"
)

var _ Provider = (*GoogleProvider)(nil)

// GoogleProvider implements Provider against an OIDC issuer, Google by default.
type GoogleProvider struct {
	provider *oidc.Provider
	config   *oauth2.Config
}

// NewGoogleProvider runs OIDC discovery on issuer and prepares the code flow.
func NewGoogleProvider(ctx context.Context, issuer, clientID, clientSecret, redirectURL string, scopes []string) (*GoogleProvider, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("[NewGoogleProvider] client id and secret are required")
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("[NewGoogleProvider] failed to create OIDC provider: %w", err)
	}

	return &GoogleProvider{
		provider: provider,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  redirectURL,
			Scopes:       scopes,
		},
	}, nil
}

// AuthCodeURL asks for offline access so the stored token can be refreshed.
func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (g *GoogleProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrTokenExchange, err)
		}
		return nil, fmt.Errorf("[GoogleProvider Exchange] %w", err)
	}
	return token, nil
}

func (g *GoogleProvider) Profile(ctx context.Context, token *oauth2.Token) (Profile, error) {
	info, err := g.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return Profile{}, fmt.Errorf("[GoogleProvider Profile] failed to fetch userinfo: %w", err)
	}

	var claims struct {
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := info.Claims(&claims); err != nil {
		return Profile{}, fmt.Errorf("[GoogleProvider Profile] failed to extract claims: %w", err)
	}

	return Profile{
		ID:      info.Subject,
		Email:   info.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

func (g *GoogleProvider) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return g.config.TokenSource(ctx, token)
}
