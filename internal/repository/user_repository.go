package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/persistence"
)

// UserRepository defines persistence access for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	MarkOnline(ctx context.Context, uid string, at time.Time) error
	MarkOffline(ctx context.Context, uid string, at time.Time) error
	AddProvider(ctx context.Context, uid, provider string) error
}

type userRepository struct {
	records *Records[domain.User]
}

// NewUserRepository returns a Mongo-backed implementation.
func NewUserRepository(db *persistence.Mongo, logger *zap.Logger) UserRepository {
	return &userRepository{
		records: NewRecords[domain.User](db.Collection(domain.CollectionUsers), logger),
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.records.Create(ctx, user.UID, user)
	return err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.records.Replace(ctx, user.UID, user)
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	return r.records.GetByID(ctx, uid)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.records.FindOneBy(ctx, "email", email)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.records.GetAll(ctx)
}

func (r *userRepository) MarkOnline(ctx context.Context, uid string, at time.Time) error {
	return r.records.Update(ctx, uid, bson.D{
		{Key: "isOnline", Value: true},
		{Key: "lastLogin", Value: at},
	})
}

func (r *userRepository) MarkOffline(ctx context.Context, uid string, at time.Time) error {
	return r.records.Update(ctx, uid, bson.D{
		{Key: "isOnline", Value: false},
		{Key: "lastLogout", Value: at},
	})
}

func (r *userRepository) AddProvider(ctx context.Context, uid, provider string) error {
	_, err := r.records.coll.UpdateByID(ctx, uid, bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "providers", Value: provider}}},
	})
	return err
}
