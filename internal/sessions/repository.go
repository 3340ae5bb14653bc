package sessions

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists the per-user refresh-token row.
// Upsert must be atomic per user key: two concurrent logins may not leave
// inconsistent rows behind.
type Repository interface {
	Upsert(ctx context.Context, rec *RefreshRecord) error
	GetByUser(ctx context.Context, userID int64) (*RefreshRecord, error)
	Revoke(ctx context.Context, userID int64) error
}

// MongoRepository implements Repository on a Mongo collection keyed by userID.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Upsert(ctx context.Context, rec *RefreshRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userID": rec.UserID},
		bson.M{"$set": bson.M{
			"token":     rec.Token,
			"expiresAt": rec.ExpiresAt,
			"isRevoked": rec.IsRevoked,
			"updatedAt": rec.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoRepository) GetByUser(ctx context.Context, userID int64) (*RefreshRecord, error) {
	var rec RefreshRecord
	if err := r.col.FindOne(ctx, bson.M{"userID": userID}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *MongoRepository) Revoke(ctx context.Context, userID int64) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userID": userID},
		bson.M{"$set": bson.M{"isRevoked": true, "updatedAt": time.Now().UTC()}},
	)
	return err
}
