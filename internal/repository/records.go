package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Records is the generic document client every typed repository builds on.
// It exposes the full record-store surface: get-all, live subscription,
// create, update-by-id, delete-by-id and equality queries with ordering.
type Records[T any] struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewRecords binds a collection handle.
func NewRecords[T any](coll *mongo.Collection, logger *zap.Logger) *Records[T] {
	return &Records[T]{coll: coll, logger: logger}
}

// GetAll returns every document in the collection.
func (r *Records[T]) GetAll(ctx context.Context) ([]T, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Watch opens a change stream and invokes onChange with a full snapshot of
// the collection after every remote change. The snapshot replaces whatever
// the subscriber held before; there is no incremental diffing. An initial
// snapshot is delivered before the first event. The returned func tears the
// subscription down; calling it is the only release discipline required.
func (r *Records[T]) Watch(ctx context.Context, onChange func([]T)) (func(), error) {
	stream, err := r.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer stream.Close(context.Background())

		if items, err := r.GetAll(streamCtx); err == nil {
			onChange(items)
		}

		for stream.Next(streamCtx) {
			items, err := r.GetAll(streamCtx)
			if err != nil {
				r.logger.Warn("watch refetch failed",
					zap.String("collection", r.coll.Name()), zap.Error(err))
				continue
			}
			onChange(items)
		}
	}()

	return cancel, nil
}

// Create inserts a document. When id is empty a new one is generated.
func (r *Records[T]) Create(ctx context.Context, id string, doc any) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	fields, err := toSetFields(doc)
	if err != nil {
		return "", err
	}
	fields = append(bson.D{{Key: "_id", Value: id}}, fields...)
	if _, err := r.coll.InsertOne(ctx, fields); err != nil {
		return "", err
	}
	return id, nil
}

// GetByID fetches a single document.
func (r *Records[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies a partial $set to the identified document. All given
// fields land in one single-document atomic write.
func (r *Records[T]) Update(ctx context.Context, id string, fields bson.D) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Replace overwrites the identified document with doc.
func (r *Records[T]) Replace(ctx context.Context, id string, doc *T) error {
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the identified document.
func (r *Records[T]) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Query runs an equality filter with optional ordering.
func (r *Records[T]) Query(ctx context.Context, field string, value any, orderBy string, desc bool) ([]T, error) {
	opts := options.Find()
	if orderBy != "" {
		dir := 1
		if desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: orderBy, Value: dir}})
	}

	cursor, err := r.coll.Find(ctx, bson.D{{Key: field, Value: value}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindOneBy fetches the first document matching an equality filter.
func (r *Records[T]) FindOneBy(ctx context.Context, field string, value any) (*T, error) {
	var item T
	if err := r.coll.FindOne(ctx, bson.D{{Key: field, Value: value}}).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func toSetFields(doc any) (bson.D, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var fields bson.D
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	out := fields[:0]
	for _, f := range fields {
		if f.Key == "_id" {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
