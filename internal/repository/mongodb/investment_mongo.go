package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"potensidesa/internal/model"
	"potensidesa/internal/repository"
)

// InvestmentCollection is the collection holding investment opportunities.
const InvestmentCollection = "investments"

// InvestmentMongo is a MongoDB implementation of repository.InvestmentRepository.
type InvestmentMongo struct {
	col *mongo.Collection
}

// NewInvestmentMongo creates a new InvestmentMongo repository over col.
func NewInvestmentMongo(col *mongo.Collection) *InvestmentMongo {
	return &InvestmentMongo{col: col}
}

var _ repository.InvestmentRepository = (*InvestmentMongo)(nil)

// Create inserts inv, assigning an ID and timestamps when missing.
func (r *InvestmentMongo) Create(ctx context.Context, inv *model.Investment) (*model.Investment, error) {
	out := *inv
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	if out.ImageURLs == nil {
		out.ImageURLs = []string{}
	}
	if _, err := r.col.InsertOne(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the stored document with inv.
func (r *InvestmentMongo) Update(ctx context.Context, inv *model.Investment) (*model.Investment, error) {
	out := *inv
	out.UpdatedAt = time.Now().UTC()
	if out.ImageURLs == nil {
		out.ImageURLs = []string{}
	}
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": out.ID}, &out)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return &out, nil
}

// FindByID fetches a single investment by its ID.
func (r *InvestmentMongo) FindByID(ctx context.Context, id string) (*model.Investment, error) {
	var inv model.Investment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// List returns investments newest first with a total count.
func (r *InvestmentMongo) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Investment], error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(pq.Offset)).
		SetLimit(int64(pq.Limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]model.Investment, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Investment]{Items: items, Total: int(total)}, nil
}

// Delete removes an investment by ID. It does not return an error if the document does not exist.
func (r *InvestmentMongo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
