package config

const (
	googleClientIDVar = "GOOGLE_CLIENT_ID"
	googleSecretVar   = "GOOGLE_SECRET"
	oidcIssuerVar     = "OIDC_ISSUER"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetIssuer() string
	GetScopes() []string
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetClientID() string {
	return GetEnv(googleClientIDVar, "")
}

func (OAuth) GetClientSecret() string {
	return GetEnv(googleSecretVar, "")
}

func (OAuth) GetIssuer() string {
	return GetEnv(oidcIssuerVar, "https://accounts.google.com")
}

// GetScopes returns the consent scopes: identity plus spreadsheet access to files this app creates.
func (OAuth) GetScopes() []string {
	return []string{
		"openid",
		"email",
		"profile",
		"https://www.googleapis.com/auth/spreadsheets",
		"https://www.googleapis.com/auth/drive.file",
	}
}
