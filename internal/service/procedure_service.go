package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/events"
	"github.com/spec-kit/tramites-portal/internal/repository"
	apperrors "github.com/spec-kit/tramites-portal/pkg/util"
)

// ProcedureService coordinates trámite workflows.
type ProcedureService struct {
	procedures repository.ProcedureRepository
	types      repository.ProcedureTypeRepository
	dispatcher events.Dispatcher
}

// ProcedureDependencies bundles repositories for the service.
type ProcedureDependencies struct {
	ProcedureRepo repository.ProcedureRepository
	TypeRepo      repository.ProcedureTypeRepository
	Dispatcher    events.Dispatcher
}

// ProcedureCreateInput describes the citizen-facing "new procedure" form.
type ProcedureCreateInput struct {
	Solicitante  string
	Tipo         string
	Departamento string
	Email        string
	Telefono     string
	Descripcion  string
	FechaLimite  time.Time
}

// NewProcedureService constructs the service.
func NewProcedureService(deps ProcedureDependencies) *ProcedureService {
	return &ProcedureService{
		procedures: deps.ProcedureRepo,
		types:      deps.TypeRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create files a new trámite for the given account. New records always
// enter the review timeline at estado pendiente, etapa 1.
func (s *ProcedureService) Create(ctx context.Context, actor *domain.User, input ProcedureCreateInput) (*domain.Procedure, error) {
	missing := map[string]any{}
	for field, value := range map[string]string{
		"solicitante":  input.Solicitante,
		"tipo":         input.Tipo,
		"departamento": input.Departamento,
		"email":        input.Email,
		"descripcion":  input.Descripcion,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("campos requeridos vacíos", missing)
	}

	now := time.Now()
	proc := &domain.Procedure{
		ID:               uuid.NewString(),
		Solicitante:      input.Solicitante,
		Tipo:             input.Tipo,
		Departamento:     input.Departamento,
		Email:            input.Email,
		Telefono:         input.Telefono,
		Descripcion:      input.Descripcion,
		Estado:           domain.ProcedureStatusPendiente,
		EtapaActual:      domain.ProcedureEtapaMin,
		FechaCreado:      now,
		FechaActualizado: now,
		FechaLimite:      input.FechaLimite,
		UserID:           actor.UID,
	}
	if err := s.procedures.Create(ctx, proc); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor.UID, events.EventTramiteCreated, events.TramiteCreatedPayload{
		TramiteID:    proc.ID,
		Tipo:         proc.Tipo,
		Departamento: proc.Departamento,
	})

	return proc, nil
}

// Get returns a trámite visible to the actor: owners see their own records,
// admins see everything.
func (s *ProcedureService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Procedure, error) {
	proc, err := s.procedures.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if actor.Role != domain.UserRoleAdmin && proc.UserID != actor.UID {
		return nil, apperrors.NewForbidden("not the owner of this trámite")
	}
	return proc, nil
}

// List returns the trámites visible to the actor.
func (s *ProcedureService) List(ctx context.Context, actor *domain.User) ([]domain.Procedure, error) {
	if actor.Role == domain.UserRoleAdmin {
		return s.procedures.List(ctx)
	}
	return s.procedures.ListByUser(ctx, actor.UID)
}

// Review advances the staff review: estado and etapa change together and
// fechaActualizado moves; fechaCreado is never touched.
func (s *ProcedureService) Review(ctx context.Context, actor *domain.User, id string, estado domain.ProcedureStatus, etapa int) (*domain.Procedure, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !domain.ValidStatus(estado) {
		return nil, apperrors.NewValidationError("estado inválido", map[string]any{"estado": string(estado)})
	}
	if etapa < domain.ProcedureEtapaMin || etapa > domain.ProcedureEtapaMax {
		return nil, apperrors.NewValidationError("etapa fuera de rango", map[string]any{"etapa": etapa})
	}

	proc, err := s.procedures.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	oldStatus := proc.Estado
	now := time.Now()
	if err := s.procedures.UpdateReview(ctx, id, estado, etapa, now); err != nil {
		return nil, apperrors.MapError(err)
	}

	proc.Estado = estado
	proc.EtapaActual = etapa
	proc.FechaActualizado = now

	if oldStatus != estado {
		s.publish(ctx, actor.UID, events.EventTramiteStatusChanged, events.TramiteStatusChangedPayload{
			TramiteID: id,
			OldStatus: oldStatus,
			NewStatus: estado,
			Etapa:     etapa,
		})
	}

	return proc, nil
}

// Delete removes a trámite record.
func (s *ProcedureService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.procedures.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ProcedureService) publish(ctx context.Context, uid string, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UID:       uid,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
