package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// userIDNamespace is the UUIDv5 namespace for deriving stable user IDs from
// OAuth provider subjects. Never change this — it would re-key every user.
var userIDNamespace = uuid.MustParse("7a9c1c2e-4f6b-4a3d-9c7e-2b8f0d5e1a64")

const googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// GoogleUser is the subset of the OIDC userinfo response we consume.
type GoogleUser struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// UserID derives the stable application user ID for this Google account.
func (u *GoogleUser) UserID() uuid.UUID {
	return uuid.NewSHA1(userIDNamespace, []byte("google:"+u.Subject))
}

// GoogleProvider wraps golang.org/x/oauth2 for the Google Authorization Code flow.
// The code-for-token exchange happens server to server; the access token never
// reaches the browser.
type GoogleProvider struct {
	config *oauth2.Config
	// userinfoURL is overridable in tests.
	userinfoURL string
}

// NewGoogleProvider creates a GoogleProvider with the given credentials.
// callbackURL must exactly match the redirect URI registered with Google.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoints.Google,
		},
		userinfoURL: googleUserinfoURL,
	}
}

// NewState returns a fresh random state token for CSRF protection of the
// OAuth flow. Store it in a short-lived cookie before redirecting and verify
// it in the callback.
func NewState() string {
	return xid.New().String()
}

// AuthURL returns the Google authorization URL for the given state.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for a Google user profile:
// code → access token → userinfo endpoint.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchange oauth code: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(p.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("auth: fetch userinfo: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: userinfo endpoint returned status %d", resp.StatusCode)
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("auth: decode userinfo response: %w", err)
	}
	if user.Subject == "" {
		return nil, fmt.Errorf("auth: userinfo response missing subject")
	}
	return &user, nil
}

// EmailAllowed reports whether email is admitted by the allowlist.
// An empty allowlist admits everyone; comparison is case-insensitive.
func EmailAllowed(email string, allowlist []string) bool {
	if len(allowlist) == 0 {
		return true
	}
	return slices.Contains(allowlist, strings.ToLower(strings.TrimSpace(email)))
}
