package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/persistence"
)

// ProcedureRepository encapsulates trámite persistence.
type ProcedureRepository interface {
	Create(ctx context.Context, proc *domain.Procedure) error
	GetByID(ctx context.Context, id string) (*domain.Procedure, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Procedure, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Procedure, error)
	UpdateReview(ctx context.Context, id string, estado domain.ProcedureStatus, etapa int, at time.Time) error
}

type procedureRepository struct {
	records *Records[domain.Procedure]
}

// NewProcedureRepository instantiates repository.
func NewProcedureRepository(db *persistence.Mongo, logger *zap.Logger) ProcedureRepository {
	return &procedureRepository{
		records: NewRecords[domain.Procedure](db.Collection(domain.CollectionProcedures), logger),
	}
}

func (r *procedureRepository) Create(ctx context.Context, proc *domain.Procedure) error {
	id, err := r.records.Create(ctx, proc.ID, proc)
	if err != nil {
		return err
	}
	proc.ID = id
	return nil
}

func (r *procedureRepository) GetByID(ctx context.Context, id string) (*domain.Procedure, error) {
	return r.records.GetByID(ctx, id)
}

func (r *procedureRepository) Delete(ctx context.Context, id string) error {
	return r.records.Delete(ctx, id)
}

func (r *procedureRepository) List(ctx context.Context) ([]domain.Procedure, error) {
	return r.records.GetAll(ctx)
}

func (r *procedureRepository) ListByUser(ctx context.Context, userID string) ([]domain.Procedure, error) {
	return r.records.Query(ctx, "userId", userID, "fechaCreado", true)
}

// UpdateReview mutates the staff-review fields only; fechaCreado stays put.
func (r *procedureRepository) UpdateReview(ctx context.Context, id string, estado domain.ProcedureStatus, etapa int, at time.Time) error {
	return r.records.Update(ctx, id, bson.D{
		{Key: "estado", Value: estado},
		{Key: "etapaActual", Value: etapa},
		{Key: "fechaActualizado", Value: at},
	})
}
