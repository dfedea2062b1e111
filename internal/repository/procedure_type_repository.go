package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/persistence"
)

// ProcedureTypeRepository handles the trámite category catalog.
type ProcedureTypeRepository interface {
	Create(ctx context.Context, pt *domain.ProcedureType) error
	Update(ctx context.Context, pt *domain.ProcedureType) error
	GetByID(ctx context.Context, id string) (*domain.ProcedureType, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.ProcedureType, error)
	Watch(ctx context.Context, onChange func([]domain.ProcedureType)) (func(), error)
}

type procedureTypeRepository struct {
	records *Records[domain.ProcedureType]
}

// NewProcedureTypeRepository instantiates the repository.
func NewProcedureTypeRepository(db *persistence.Mongo, logger *zap.Logger) ProcedureTypeRepository {
	return &procedureTypeRepository{
		records: NewRecords[domain.ProcedureType](db.Collection(domain.CollectionProcedureTypes), logger),
	}
}

func (r *procedureTypeRepository) Create(ctx context.Context, pt *domain.ProcedureType) error {
	id, err := r.records.Create(ctx, pt.ID, pt)
	if err != nil {
		return err
	}
	pt.ID = id
	return nil
}

func (r *procedureTypeRepository) Update(ctx context.Context, pt *domain.ProcedureType) error {
	return r.records.Replace(ctx, pt.ID, pt)
}

func (r *procedureTypeRepository) GetByID(ctx context.Context, id string) (*domain.ProcedureType, error) {
	return r.records.GetByID(ctx, id)
}

func (r *procedureTypeRepository) Delete(ctx context.Context, id string) error {
	return r.records.Delete(ctx, id)
}

func (r *procedureTypeRepository) List(ctx context.Context) ([]domain.ProcedureType, error) {
	return r.records.GetAll(ctx)
}

func (r *procedureTypeRepository) Watch(ctx context.Context, onChange func([]domain.ProcedureType)) (func(), error) {
	return r.records.Watch(ctx, onChange)
}
