package privileges

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/models"
)

// Repository resolves the privilege names granted to a user.
type Repository interface {
	NamesForUser(ctx context.Context, userID int64) ([]string, error)
}

// MongoRepository joins the user_privileges assignments against the
// privileges catalog in two queries.
type MongoRepository struct {
	assignments *mongo.Collection
	catalog     *mongo.Collection
}

func NewMongoRepository(assignments, catalog *mongo.Collection) *MongoRepository {
	return &MongoRepository{assignments: assignments, catalog: catalog}
}

func (r *MongoRepository) NamesForUser(ctx context.Context, userID int64) ([]string, error) {
	cur, err := r.assignments.Find(ctx, bson.M{"userID": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []int64{}
	for cur.Next(ctx) {
		var a models.PrivilegeAssignment
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		ids = append(ids, a.PrivID)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pcur, err := r.catalog.Find(ctx, bson.M{"privilegeID": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer pcur.Close(ctx)

	names := []string{}
	for pcur.Next(ctx) {
		var p models.Privilege
		if err := pcur.Decode(&p); err != nil {
			return nil, err
		}
		names = append(names, p.Name)
	}
	return names, pcur.Err()
}
