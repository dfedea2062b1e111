package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/persistence"
)

// PasswordResetToken represents stored reset codes.
type PasswordResetToken struct {
	ID        string     `bson:"_id"`
	UID       string     `bson:"uid"`
	Token     string     `bson:"token"`
	ExpiresAt time.Time  `bson:"expiresAt"`
	UsedAt    *time.Time `bson:"usedAt,omitempty"`
	CreatedAt time.Time  `bson:"createdAt"`
}

// PasswordResetRepository manages password reset token persistence.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) error
}

type passwordResetRepository struct {
	records *Records[PasswordResetToken]
}

// NewPasswordResetRepository constructs repository.
func NewPasswordResetRepository(db *persistence.Mongo, logger *zap.Logger) PasswordResetRepository {
	return &passwordResetRepository{
		records: NewRecords[PasswordResetToken](db.Collection(domain.CollectionPasswordResets), logger),
	}
}

func (r *passwordResetRepository) Create(ctx context.Context, token *PasswordResetToken) error {
	token.CreatedAt = time.Now()
	id, err := r.records.Create(ctx, token.ID, token)
	if err != nil {
		return err
	}
	token.ID = id
	return nil
}

func (r *passwordResetRepository) GetByToken(ctx context.Context, tokenStr string) (*PasswordResetToken, error) {
	return r.records.FindOneBy(ctx, "token", tokenStr)
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id string) error {
	return r.records.Update(ctx, id, bson.D{{Key: "usedAt", Value: time.Now()}})
}
