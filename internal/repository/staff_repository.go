package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/persistence"
)

// StaffRepository handles persistence for funcionario records.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	Update(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Staff, error)
}

type staffRepository struct {
	records *Records[domain.Staff]
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(db *persistence.Mongo, logger *zap.Logger) StaffRepository {
	return &staffRepository{
		records: NewRecords[domain.Staff](db.Collection(domain.CollectionStaff), logger),
	}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	id, err := r.records.Create(ctx, staff.ID, staff)
	if err != nil {
		return err
	}
	staff.ID = id
	return nil
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.Staff) error {
	return r.records.Replace(ctx, staff.ID, staff)
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	return r.records.GetByID(ctx, id)
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	return r.records.Delete(ctx, id)
}

func (r *staffRepository) List(ctx context.Context) ([]domain.Staff, error) {
	return r.records.GetAll(ctx)
}
