package users

import (
	"context"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/database"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
)

// Repository defines persistence operations for users
type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	Create(ctx context.Context, u *models.User) (int64, error)
	List(ctx context.Context) ([]models.User, error)
}

// MongoRepository implements Repository using MongoDB. Sequential userIDs come
// from the shared counters collection.
type MongoRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewMongoRepository(col, counters *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col, counters: counters}
}

func (r *MongoRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"userID": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByIdentifier looks a user up by email, or by userID when the identifier
// is numeric. Login accepts either.
func (r *MongoRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	filter := bson.M{"email": identifier}
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		filter = bson.M{"$or": bson.A{bson.M{"email": identifier}, bson.M{"userID": id}}}
	}
	var u models.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) Create(ctx context.Context, u *models.User) (int64, error) {
	id, err := database.NextSequence(ctx, r.counters, "users")
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.User{}
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, cur.Err()
}
