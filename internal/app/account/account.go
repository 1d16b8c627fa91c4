/*
Package account implements login, registration and password reset against the
persisted user mapping.

The mapping is loaded once at startup and kept in memory; every successful
registration or reset rewrites the whole mapping through the configured store.
*/
package account

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"nutrigen/internal/app/userstore"
	"nutrigen/internal/pkg/errs"
	"nutrigen/internal/pkg/logx"
)

// Service validates credentials and applies account changes.
type Service struct {
	store     userstore.Store
	passwords PasswordPolicy

	// mu serializes access to users within this process.
	mu    sync.Mutex
	users userstore.Users

	logger zerolog.Logger
}

// NewService returns a Service over an already loaded mapping. A nil users map is treated as empty.
func NewService(store userstore.Store, users userstore.Users, passwords PasswordPolicy) *Service {
	if users == nil {
		users = userstore.Users{}
	}
	if passwords == nil {
		passwords = Plain{}
	}
	return &Service{
		store:     store,
		passwords: passwords,
		users:     users,
		logger:    logx.Component("account"),
	}
}

// Load reads the mapping from store and returns a Service over it.
func Load(ctx context.Context, store userstore.Store, passwords PasswordPolicy) (*Service, error) {
	users, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewService(store, users, passwords), nil
}

// Count returns the number of registered usernames.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Exists reports whether username is registered.
func (s *Service) Exists(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok
}

// Login succeeds iff username is registered and password matches its stored value.
// Unknown usernames and wrong passwords produce the same error.
func (s *Service) Login(_ context.Context, username, password string) *errs.CustomError {
	s.mu.Lock()
	stored, ok := s.users[username]
	s.mu.Unlock()

	if !ok || !s.passwords.Verify(stored, password) {
		s.logger.Warn().Str("username", username).Bool("known_user", ok).Msg("Login rejected")
		return errs.NewError(errs.ErrInvalidCredentials)
	}

	return nil
}

// Register creates a new account. Checks run in order: all fields present, username
// free, password equal to confirmation. The first failure is returned and nothing is saved.
func (s *Service) Register(ctx context.Context, username, password, confirm string) *errs.CustomError {
	if username == "" || password == "" || confirm == "" {
		return errs.NewError(errs.ErrRegistrationIncomplete)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		s.logger.Warn().Str("username", username).Msg("Registration conflict: username already exists")
		return errs.NewError(errs.ErrUsernameExists)
	}

	if password != confirm {
		return errs.NewError(errs.ErrPasswordMismatch)
	}

	if err := s.setPasswordLocked(ctx, username, password); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("User registered")
	return nil
}

// ResetPassword replaces the password of an existing account. Existence is checked
// before the confirmation match.
func (s *Service) ResetPassword(ctx context.Context, username, newPassword, confirm string) *errs.CustomError {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; !exists {
		s.logger.Warn().Str("username", username).Msg("Password reset for unknown username")
		return errs.NewError(errs.ErrUsernameNotFound)
	}

	if newPassword != confirm {
		return errs.NewError(errs.ErrPasswordMismatch)
	}

	if err := s.setPasswordLocked(ctx, username, newPassword); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("Password changed")
	return nil
}

// setPasswordLocked stores password for username and persists the whole mapping.
// On a persistence failure the in-memory mapping is left as it was. Callers hold s.mu.
func (s *Service) setPasswordLocked(ctx context.Context, username, password string) *errs.CustomError {
	stored, err := s.passwords.Hash(password)
	if err != nil {
		return errs.NewError(errs.ErrUnknown, err)
	}

	next := s.users.Clone()
	next[username] = stored

	if err := s.store.Save(ctx, next); err != nil {
		return errs.NewError(errs.ErrUserStoreFailed, err)
	}

	s.users = next
	return nil
}
