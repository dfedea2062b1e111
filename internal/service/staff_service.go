package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/repository"
	apperrors "github.com/spec-kit/tramites-portal/pkg/util"
)

// StaffService manages funcionario records through the admin modal flow.
type StaffService struct {
	staff repository.StaffRepository
}

// StaffInput is the admin create/edit modal payload.
type StaffInput struct {
	NombreCompleto   string
	ApellidoCompleto string
	Email            string
	Telefono         string
	Cargo            string
	Estado           bool
}

// NewStaffService constructs the service.
func NewStaffService(staff repository.StaffRepository) *StaffService {
	return &StaffService{staff: staff}
}

// List returns every funcionario record.
func (s *StaffService) List(ctx context.Context, actor *domain.User) ([]domain.Staff, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.staff.List(ctx)
}

// Create adds a funcionario record.
func (s *StaffService) Create(ctx context.Context, actor *domain.User, input StaffInput) (*domain.Staff, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStaffInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	staff := &domain.Staff{
		ID:               uuid.NewString(),
		NombreCompleto:   input.NombreCompleto,
		ApellidoCompleto: input.ApellidoCompleto,
		Email:            input.Email,
		Telefono:         input.Telefono,
		Cargo:            input.Cargo,
		Estado:           input.Estado,
		FechaCreacion:    now,
		FechaActualizado: now,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// Update edits a funcionario record in place.
func (s *StaffService) Update(ctx context.Context, actor *domain.User, id string, input StaffInput) (*domain.Staff, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStaffInput(input); err != nil {
		return nil, err
	}

	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	staff.NombreCompleto = input.NombreCompleto
	staff.ApellidoCompleto = input.ApellidoCompleto
	staff.Email = input.Email
	staff.Telefono = input.Telefono
	staff.Cargo = input.Cargo
	staff.Estado = input.Estado
	staff.FechaActualizado = time.Now()

	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// Delete removes a funcionario record.
func (s *StaffService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.staff.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func validateStaffInput(input StaffInput) error {
	missing := map[string]any{}
	for field, value := range map[string]string{
		"nombreCompleto":   input.NombreCompleto,
		"apellidoCompleto": input.ApellidoCompleto,
		"email":            input.Email,
		"cargo":            input.Cargo,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("campos requeridos vacíos", missing)
	}
	return nil
}
