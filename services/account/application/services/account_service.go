package services

import (
	"context"
	"fmt"

	"github.com/ghuser/capsule/pkg/auth"
	accountdomain "github.com/ghuser/capsule/services/account/domain"
)

// OAuthProvider is implemented by pkg/auth's GoogleProvider. Defined here so
// the callback flow can be tested without Google.
type OAuthProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleUser, error)
}

// AccountService runs the sign-in flow: authorization URL generation, code
// exchange, and allowlist enforcement.
type AccountService struct {
	provider  OAuthProvider
	allowlist []string
}

// NewAccountService wires an AccountService from the OAuth provider and the
// normalized email allowlist. An empty allowlist admits everyone.
func NewAccountService(provider OAuthProvider, allowlist []string) *AccountService {
	return &AccountService{provider: provider, allowlist: allowlist}
}

// AuthURL returns the provider authorization URL bound to state.
func (s *AccountService) AuthURL(state string) string {
	return s.provider.AuthURL(state)
}

// CompleteSignIn exchanges the authorization code for a profile and enforces
// the allowlist. Returns the resolved user on success.
func (s *AccountService) CompleteSignIn(ctx context.Context, code string) (*auth.GoogleUser, error) {
	user, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("complete sign-in: %w", err)
	}
	if !auth.EmailAllowed(user.Email, s.allowlist) {
		return nil, fmt.Errorf("%w: %s", accountdomain.ErrEmailNotAllowed, user.Email)
	}
	return user, nil
}
