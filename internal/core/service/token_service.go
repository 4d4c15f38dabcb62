package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour

	// claimsVersion guards the token payload shape. Bump on any change to
	// tokenClaims so stale tokens are rejected instead of silently
	// misdecoded.
	claimsVersion = 1
)

// tokenClaims is the wire shape of the embedded claim-set.
type tokenClaims struct {
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	Version     int      `json:"ver"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the access/refresh token pair. The two
// tokens are signed with independent secrets and are never interchangeable.
//
// The full claim-set is embedded in both tokens so authorized requests need
// no database round-trip. The trade-off is staleness: permissions revoked
// mid-session stay effective until the access token expires.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// AccessTTL returns the access-token validity window.
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL returns the refresh-token validity window.
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// Issue signs a fresh access/refresh pair embedding the given claim-set.
func (s *TokenService) Issue(claims domain.Claims) (ports.TokenPair, error) {
	access, err := s.sign(claims, s.accessSecret, s.accessTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := s.sign(claims, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessTTL:    s.accessTTL,
		RefreshTTL:   s.refreshTTL,
	}, nil
}

// VerifyAccess decodes an access token.
func (s *TokenService) VerifyAccess(token string) (domain.Claims, error) {
	return s.verify(token, s.accessSecret)
}

// VerifyRefresh decodes a refresh token.
func (s *TokenService) VerifyRefresh(token string) (domain.Claims, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *TokenService) sign(claims domain.Claims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	tc := tokenClaims{
		Username:    claims.Username,
		Roles:       claims.Roles,
		Permissions: claims.Permissions,
		Version:     claimsVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(secret)
}

// verify collapses every failure mode (bad signature, expiry, malformed or
// mismatched payload) into domain.ErrInvalidToken so callers cannot probe
// which check failed.
func (s *TokenService) verify(token string, secret []byte) (domain.Claims, error) {
	tc := tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid || tc.Version != claimsVersion {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	return domain.Claims{
		UserID:      tc.Subject,
		Username:    tc.Username,
		Roles:       tc.Roles,
		Permissions: tc.Permissions,
	}, nil
}
