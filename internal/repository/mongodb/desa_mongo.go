package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"potensidesa/internal/model"
	"potensidesa/internal/repository"
)

// DesaCollection is the collection holding village reference data.
const DesaCollection = "desa"

// DesaMongo reads villages from MongoDB.
type DesaMongo struct {
	col *mongo.Collection
}

func NewDesaMongo(col *mongo.Collection) *DesaMongo {
	return &DesaMongo{col: col}
}

var _ repository.DesaRepository = (*DesaMongo)(nil)

// List returns all villages ordered by name.
func (r *DesaMongo) List(ctx context.Context) ([]model.Desa, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]model.Desa, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
