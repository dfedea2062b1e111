package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/tramites-portal/internal/auth"
	"github.com/spec-kit/tramites-portal/internal/config"
	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/repository"
	apperrors "github.com/spec-kit/tramites-portal/pkg/util"
)

// ProviderPassword names the email/password sign-in method; the remaining
// providers are external identity federations asserted at the edge.
const ProviderPassword = "password"

var knownProviders = map[string]struct{}{
	"google":   {},
	"facebook": {},
	"github":   {},
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Register creates a new portal account with the usuario role.
func (s *AuthService) Register(ctx context.Context, displayName, email, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errors.New("email already registered")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		UID:          uuid.NewString(),
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleUsuario,
		Providers:    []string{ProviderPassword},
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.UID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginPassword authenticates an account by email and password.
func (s *AuthService) LoginPassword(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.UID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginProvider signs in via an external identity provider assertion,
// creating the account on first sight and linking the provider on repeat
// sign-ins with a new method.
func (s *AuthService) LoginProvider(ctx context.Context, provider, displayName, email string) (*domain.User, string, time.Time, error) {
	if _, ok := knownProviders[provider]; !ok {
		return nil, "", time.Time{}, apperrors.NewValidationError("unknown identity provider", map[string]any{"provider": provider})
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !user.HasProvider(provider) {
			if err := s.users.AddProvider(ctx, user.UID, provider); err != nil {
				return nil, "", time.Time{}, err
			}
			user.Providers = append(user.Providers, provider)
		}
	case errors.Is(err, mongo.ErrNoDocuments):
		user = &domain.User{
			UID:         uuid.NewString(),
			DisplayName: displayName,
			Email:       email,
			Role:        domain.UserRoleUsuario,
			Providers:   []string{provider},
			CreatedAt:   time.Now(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", time.Time{}, err
		}
	default:
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.UID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// RequestPasswordReset persists a one-time reset code for the account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token := &repository.PasswordResetToken{
		UID:       user.UID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset code and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return errors.New("token expired or used")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	user, err := s.users.GetByUID(ctx, token.UID)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.resets.MarkUsed(ctx, token.ID)
}

// ChangePassword verifies the current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, uid, currentPassword, newPassword string) error {
	user, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return errors.New("invalid credentials")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
