package service

import (
	"github.com/spec-kit/tramites-portal/internal/domain"
	apperrors "github.com/spec-kit/tramites-portal/pkg/util"
)

func requireAdmin(actor *domain.User) error {
	if actor == nil || actor.Role != domain.UserRoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}
