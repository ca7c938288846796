package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/platformlab/auth-api/internal/core/domain"
	"github.com/platformlab/auth-api/internal/core/ports"
)

// AuthService implements the credential lifecycle: registration, login and
// token-gated profile access. It owns password hashing; tokens and storage
// are delegated to the injected ports.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	cache  ports.ProfileCache
	logger zerolog.Logger
}

// NewAuthService wires the service. cache may be nil, in which case every
// profile read goes straight to the repository.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, cache ports.ProfileCache, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, cache: cache, logger: logger}
}

// Register creates a user with a freshly computed password hash and mints a
// session token for it. Uniqueness of username and email is enforced by the
// store; a race between two identical registrations is decided there and
// surfaces as domain.ErrConflict.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return &ports.Session{Token: token, UserID: created.ID, Username: created.Username}, nil
}

// Login authenticates by username and password and mints a fresh token.
// Unknown username and wrong password both return ErrInvalidCredentials so
// the response never reveals whether an account exists.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.Session, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.Session{Token: token, UserID: user.ID, Username: user.Username}, nil
}

// GetProfile resolves the token's subject to a stored user and returns it
// without the password hash. A valid token whose subject has since been
// deleted yields ErrUserNotFound, not ErrUnauthenticated: the token itself
// stays verifiable until expiry.
func (s *AuthService) GetProfile(ctx context.Context, token string) (*ports.Profile, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Msg("profile cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &ports.Profile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, profile); err != nil {
			s.logger.Warn().Err(err).Msg("profile cache write failed")
		}
	}

	return profile, nil
}

// UpdateProfile applies the fields present in the input to the token's own
// subject. Absent fields keep their stored values. A new password is
// rehashed before it reaches the repository; the clear form is never stored.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, in ports.UpdateProfileInput) error {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}

	if in.Username == nil && in.Email == nil && in.Password == nil {
		return domain.ErrValidation
	}

	upd := ports.UserUpdate{Username: in.Username, Email: in.Email}
	if in.Password != nil {
		if *in.Password == "" {
			return domain.ErrValidation
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		h := string(hash)
		upd.PasswordHash = &h
	}

	if err := s.repo.Update(ctx, userID, upd); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return nil
}

// DeleteProfile removes the token's subject. The deletion is permanent and
// idempotent: a second call with the same still-valid token also succeeds.
func (s *AuthService) DeleteProfile(ctx context.Context, token string) error {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}

func (s *AuthService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("profile cache invalidation failed")
	}
}
