package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fayclick/internal/domain"
	tokenrepo "fayclick/internal/repository/token"
	userrepo "fayclick/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when login/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles merchant login and session management.
type Service struct {
	users       userrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(users userrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		users:       users,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		passwordMin: 8,
	}
}

// Login validates credentials and returns an issued access token plus the user.
func (s *Service) Login(ctx context.Context, login, password string) (*domain.User, string, error) {
	login = strings.TrimSpace(strings.ToLower(login))
	password = strings.TrimSpace(password)
	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, access, nil
}

// LookupByToken returns the user bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password and stores a new hash.
// A successful change marks the account as no longer running on the
// provisioning password.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(current))); err != nil {
		return ErrInvalidCredentials
	}
	next = strings.TrimSpace(next)
	if err := validatePassword(next, s.passwordMin); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hashed))
}

// Logout revokes the given access token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func validatePassword(p string, min int) error {
	if len(p) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
