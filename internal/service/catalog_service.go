package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/repository"
	apperrors "github.com/spec-kit/tramites-portal/pkg/util"
)

// CatalogService manages the trámite type catalog. It keeps a live snapshot
// of the catalog fed by the store's change subscription, so the public form
// source reads from memory instead of hitting the store per request.
type CatalogService struct {
	types repository.ProcedureTypeRepository

	mu       sync.RWMutex
	snapshot []domain.ProcedureType
	warm     bool
}

// NewCatalogService constructs the service.
func NewCatalogService(types repository.ProcedureTypeRepository) *CatalogService {
	return &CatalogService{types: types}
}

// StartWatch subscribes to catalog changes. Every change event replaces the
// snapshot wholesale with the re-fetched collection. The returned func tears
// the subscription down.
func (s *CatalogService) StartWatch(ctx context.Context) (func(), error) {
	return s.types.Watch(ctx, func(items []domain.ProcedureType) {
		s.mu.Lock()
		s.snapshot = items
		s.warm = true
		s.mu.Unlock()
	})
}

func (s *CatalogService) liveSnapshot() ([]domain.ProcedureType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.warm
}

// List returns every catalog entry.
func (s *CatalogService) List(ctx context.Context, actor *domain.User) ([]domain.ProcedureType, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.types.List(ctx)
}

// ListActive returns the catalog entries selectable on the public form,
// served from the live snapshot once the subscription has delivered one.
func (s *CatalogService) ListActive(ctx context.Context) ([]domain.ProcedureType, error) {
	all, warm := s.liveSnapshot()
	if !warm {
		var err error
		all, err = s.types.List(ctx)
		if err != nil {
			return nil, err
		}
	}
	active := make([]domain.ProcedureType, 0, len(all))
	for _, t := range all {
		if t.Estado {
			active = append(active, t)
		}
	}
	return active, nil
}

// Create adds a catalog entry.
func (s *CatalogService) Create(ctx context.Context, actor *domain.User, nombre string, estado bool) (*domain.ProcedureType, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(nombre) == "" {
		return nil, apperrors.NewValidationError("nombre requerido", nil)
	}

	now := time.Now()
	pt := &domain.ProcedureType{
		ID:                  uuid.NewString(),
		Nombre:              nombre,
		Estado:              estado,
		FechaCreacion:       now,
		UltimaActualizacion: now,
	}
	if err := s.types.Create(ctx, pt); err != nil {
		return nil, apperrors.MapError(err)
	}
	return pt, nil
}

// Update edits a catalog entry.
func (s *CatalogService) Update(ctx context.Context, actor *domain.User, id, nombre string, estado bool) (*domain.ProcedureType, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(nombre) == "" {
		return nil, apperrors.NewValidationError("nombre requerido", nil)
	}

	pt, err := s.types.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	pt.Nombre = nombre
	pt.Estado = estado
	pt.UltimaActualizacion = time.Now()

	if err := s.types.Update(ctx, pt); err != nil {
		return nil, apperrors.MapError(err)
	}
	return pt, nil
}

// Delete removes a catalog entry.
func (s *CatalogService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.types.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
