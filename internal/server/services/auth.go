// Package services contains server-side business logic. AuthService sequences
// the credential and session directories into the sign-up, sign-in and
// sign-out flows and the administrative account deletion.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/credentials"
)

// CredentialDirectory is the part of credentials.Directory the service uses.
type CredentialDirectory interface {
	CreateAccount(username, password string) (string, error)
	Authenticate(username, password string) (string, bool)
	DeleteAccount(accountID string) (credentials.Account, bool)
	Lookup(accountID string) (credentials.Account, bool)
}

// SessionDirectory is the part of sessions.Directory the service uses.
type SessionDirectory interface {
	CreateSession(accountID string) (string, error)
	RevokeSession(token string) bool
	Lookup(token string) (string, bool)
	RevokeAll(accountID string) int
}

// SignInResult carries the bearer token handed to the client.
type SignInResult struct {
	AccountID    string
	SessionToken string
}

// DeleteAccountResult reports what an account deletion removed.
type DeleteAccountResult struct {
	Deleted         bool
	RevokedSessions int
}

// AuthService implements the account and session operations.
type AuthService struct {
	accounts CredentialDirectory
	sessions SessionDirectory
	logger   logging.Logger
}

// NewAuthService wires the service to both directories.
func NewAuthService(accounts CredentialDirectory, sessions SessionDirectory, l logging.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		logger:   l.With("module", "auth_service"),
	}
}

// SignUp registers a new account and returns its id.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (string, error) {
	id, err := s.accounts.CreateAccount(username, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorDuplicateUsername), errors.Is(err, common.ErrorInvalidInput):
			s.logger.Info(ctx, "sign-up rejected", "username", username, "reason", err.Error())
		default:
			s.logger.Error(ctx, "sign-up failed", "username", username, "error", err.Error())
		}
		return "", err
	}

	s.logger.Info(ctx, "account created", "username", username, "account_id", id)
	return id, nil
}

// SignIn verifies the credentials and mints a new session token. Unknown
// users and wrong passwords both return common.ErrorUnauthorized.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*SignInResult, error) {
	id, ok := s.accounts.Authenticate(username, password)
	if !ok {
		s.logger.Info(ctx, "sign-in rejected", "username", username)
		return nil, common.ErrorUnauthorized
	}

	token, err := s.sessions.CreateSession(id)
	if err != nil {
		s.logger.Error(ctx, "session creation failed", "account_id", id, "error", err.Error())
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	s.logger.Info(ctx, "signed in", "account_id", id)
	return &SignInResult{AccountID: id, SessionToken: token}, nil
}

// SignOut revokes token. Unknown and already revoked tokens are not an error.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if s.sessions.RevokeSession(token) {
		s.logger.Info(ctx, "signed out")
	} else {
		s.logger.Debug(ctx, "sign-out for unknown token")
	}
	return nil
}

// ValidateSession resolves token to its account. A token whose account has
// been deleted in the meantime is revoked and rejected.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (string, error) {
	id, ok := s.sessions.Lookup(token)
	if !ok {
		return "", common.ErrorUnauthorized
	}

	if _, exists := s.accounts.Lookup(id); !exists {
		s.sessions.RevokeSession(token)
		s.logger.Warn(ctx, "revoked orphaned session", "account_id", id)
		return "", common.ErrorUnauthorized
	}

	return id, nil
}

// DeleteAccount removes the account and cascades revocation onto every
// session it still holds. Unknown ids are a no-op.
func (s *AuthService) DeleteAccount(ctx context.Context, accountID string) (*DeleteAccountResult, error) {
	acc, deleted := s.accounts.DeleteAccount(accountID)
	revoked := s.sessions.RevokeAll(accountID)

	if deleted {
		s.logger.Info(ctx, "account deleted", "account_id", accountID, "username", acc.Username, "revoked_sessions", revoked)
	} else {
		s.logger.Debug(ctx, "delete for unknown account", "account_id", accountID, "revoked_sessions", revoked)
	}

	return &DeleteAccountResult{Deleted: deleted, RevokedSessions: revoked}, nil
}
