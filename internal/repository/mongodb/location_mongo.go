package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"potensidesa/internal/model"
	"potensidesa/internal/repository"
)

// LocationCollection is the collection holding village potential submissions.
const LocationCollection = "locations"

// LocationMongo is a MongoDB implementation of repository.LocationRepository.
type LocationMongo struct {
	col *mongo.Collection
}

// NewLocationMongo creates a new LocationMongo repository over col.
func NewLocationMongo(col *mongo.Collection) *LocationMongo {
	return &LocationMongo{col: col}
}

var _ repository.LocationRepository = (*LocationMongo)(nil)

func (r *LocationMongo) Create(ctx context.Context, loc *model.Location) (*model.Location, error) {
	out := *loc
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CountByStatus runs a $group over status.
func (r *LocationMongo) CountByStatus(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *LocationMongo) ListByStatus(ctx context.Context, status string, pq repository.PageQuery) ([]model.Location, error) {
	return r.find(ctx, bson.M{"status": status}, pq)
}

func (r *LocationMongo) ListBySubmitter(ctx context.Context, userID string, pq repository.PageQuery) ([]model.Location, error) {
	return r.find(ctx, bson.M{"submitted_by": userID}, pq)
}

// UpdateStatus only moves pending locations. It returns repository.ErrNotFound when no
// pending location has the given ID, so a reviewed location cannot be flipped.
func (r *LocationMongo) UpdateStatus(ctx context.Context, id, status, reviewerID string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "status": model.StatusPending}, bson.M{"$set": bson.M{
		"status":      status,
		"reviewed_by": reviewerID,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *LocationMongo) find(ctx context.Context, filter bson.M, pq repository.PageQuery) ([]model.Location, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(pq.Offset)).
		SetLimit(int64(pq.Limit))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]model.Location, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
