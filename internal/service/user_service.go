package service

import (
	"context"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/repository"
	apperrors "github.com/spec-kit/tramites-portal/pkg/util"
)

// UserService exposes the admin account directory.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns every portal account for the admin dashboard.
func (s *UserService) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Get fetches one account.
func (s *UserService) Get(ctx context.Context, actor *domain.User, uid string) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
