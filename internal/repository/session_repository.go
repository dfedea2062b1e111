package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/persistence"
)

// SessionRepository handles persistence for login session records.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	ListByUID(ctx context.Context, uid string) ([]domain.Session, error)
	Close(ctx context.Context, id string, logoutTime time.Time, durationSeconds int64) error
}

type sessionRepository struct {
	records *Records[domain.Session]
}

// NewSessionRepository returns a Mongo-backed implementation.
func NewSessionRepository(db *persistence.Mongo, logger *zap.Logger) SessionRepository {
	return &sessionRepository{
		records: NewRecords[domain.Session](db.Collection(domain.CollectionSessions), logger),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	_, err := r.records.Create(ctx, session.ID, session)
	return err
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return r.records.GetByID(ctx, id)
}

func (r *sessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	return r.records.GetAll(ctx)
}

func (r *sessionRepository) ListByUID(ctx context.Context, uid string) ([]domain.Session, error) {
	return r.records.Query(ctx, "uid", uid, "loginTime", true)
}

// Close writes logout time, duration and the inactive flag in one
// single-document atomic update.
func (r *sessionRepository) Close(ctx context.Context, id string, logoutTime time.Time, durationSeconds int64) error {
	return r.records.Update(ctx, id, bson.D{
		{Key: "logoutTime", Value: logoutTime},
		{Key: "duration", Value: durationSeconds},
		{Key: "isActive", Value: false},
	})
}
