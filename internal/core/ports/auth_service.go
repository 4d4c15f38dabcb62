package ports

import (
	"context"
	"time"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

// TokenPair carries a freshly issued access/refresh token pair together
// with the validity window of each token, so that session cookies can be
// given matching lifetimes.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// AuthService implements the authentication flow.
type AuthService interface {
	// Login verifies credentials and issues a token pair. All credential
	// failures collapse to domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (TokenPair, domain.Claims, error)

	// Refresh reissues both tokens from a valid refresh token. The claim-set
	// is taken from the token, not re-derived from the store.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, domain.Claims, error)
}
