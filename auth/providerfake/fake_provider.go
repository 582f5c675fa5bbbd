package providerfake

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/jrsteele09/go-expenses-tracker/auth"
	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"golang.org/x/oauth2"
)

var _ auth.Provider = (*FakeProvider)(nil)

// FakeConsentURL is the consent screen the fake redirects to.
const FakeConsentURL = "https://consent.example.com/auth"

// FakeProvider maps authorization codes to tokens and tokens to profiles.
type FakeProvider struct {
	lock     sync.Mutex
	tokens   map[string]*oauth2.Token
	profiles map[string]auth.Profile

	// ProfileErr, when set, is returned by Profile.
	ProfileErr error
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		tokens:   make(map[string]*oauth2.Token),
		profiles: make(map[string]auth.Profile),
	}
}

// AddLogin makes code exchangeable for accessToken, which resolves to profile.
func (p *FakeProvider) AddLogin(code, accessToken string, profile auth.Profile) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.tokens[code] = &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	p.profiles[accessToken] = profile
}

func (p *FakeProvider) AuthCodeURL(state string) string {
	return FakeConsentURL + "?state=" + url.QueryEscape(state)
}

func (p *FakeProvider) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	token, ok := p.tokens[code]
	if !ok {
		return nil, fmt.Errorf("%w: unknown code %q", apperrors.ErrTokenExchange, code)
	}
	t := *token
	return &t, nil
}

func (p *FakeProvider) Profile(_ context.Context, token *oauth2.Token) (auth.Profile, error) {
	if p.ProfileErr != nil {
		return auth.Profile{}, p.ProfileErr
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	profile, ok := p.profiles[token.AccessToken]
	if !ok {
		return auth.Profile{}, fmt.Errorf("no profile for token")
	}
	return profile, nil
}

func (p *FakeProvider) TokenSource(_ context.Context, token *oauth2.Token) oauth2.TokenSource {
	return oauth2.StaticTokenSource(token)
}
