package service

import (
	"context"
	"time"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

// AuditRecorder accepts audit events without blocking the request path.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuthService implements login and token refresh.
type AuthService struct {
	users  ports.UserRepository
	tokens *TokenService
	hasher *PasswordHasher
	audit  AuditRecorder
}

func NewAuthService(users ports.UserRepository, tokens *TokenService, hasher *PasswordHasher, audit AuditRecorder) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, audit: audit}
}

// Login verifies credentials and issues a token pair. A missing user, a
// disabled account and a wrong password all surface as
// domain.ErrInvalidCredentials — the caller never learns which field was
// wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (ports.TokenPair, domain.Claims, error) {
	if username == "" || password == "" {
		return ports.TokenPair{}, domain.Claims{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.record(domain.AuditEvent{Username: username, Action: domain.AuditLoginFailed, Detail: "unknown user"})
		return ports.TokenPair{}, domain.Claims{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.record(domain.AuditEvent{UserID: user.ID, Username: username, Action: domain.AuditLoginFailed, Detail: "inactive user"})
		return ports.TokenPair{}, domain.Claims{}, domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.record(domain.AuditEvent{UserID: user.ID, Username: username, Action: domain.AuditLoginFailed, Detail: "wrong password"})
		return ports.TokenPair{}, domain.Claims{}, domain.ErrInvalidCredentials
	}

	claims := domain.NewClaims(user)
	pair, err := s.tokens.Issue(claims)
	if err != nil {
		return ports.TokenPair{}, domain.Claims{}, err
	}

	s.record(domain.AuditEvent{UserID: user.ID, Username: username, Action: domain.AuditLoginSucceeded})
	return pair, claims, nil
}

// Refresh reissues both tokens from a valid refresh token. The claim-set is
// carried over from the token as-is; permissions changed since login take
// effect only through this rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (ports.TokenPair, domain.Claims, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return ports.TokenPair{}, domain.Claims{}, domain.ErrInvalidToken
	}

	pair, err := s.tokens.Issue(claims)
	if err != nil {
		return ports.TokenPair{}, domain.Claims{}, err
	}

	s.record(domain.AuditEvent{UserID: claims.UserID, Username: claims.Username, Action: domain.AuditTokenRefreshed})
	return pair, claims, nil
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.CreatedAt = time.Now().UTC()
	s.audit.Record(event)
}

var _ ports.AuthService = (*AuthService)(nil)
