package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"potensidesa/internal/model"
	"potensidesa/internal/repository"
)

func ns(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func investmentDoc(id, title string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "description", Value: "Kebun kopi arabika"},
		{Key: "sector", Value: "pertanian"},
		{Key: "desa_id", Value: "desa-1"},
		{Key: "location", Value: "Dusun II"},
		{Key: "budget", Value: int64(250000000)},
		{Key: "contact_name", Value: "Pak Kades"},
		{Key: "image_urls", Value: bson.A{"https://cdn.example.com/files/locations/1-a.png"}},
		{Key: "status", Value: model.InvestmentPublished},
		{Key: "created_by", Value: "user-1"},
		{Key: "created_at", Value: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
}

func TestInvestmentMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns id and timestamps", func(mt *mtest.T) {
		repo := NewInvestmentMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		out, err := repo.Create(ctx, &model.Investment{Title: "Wisata air"})

		require.NoError(t, err)
		assert.NotEmpty(t, out.ID)
		assert.False(t, out.CreatedAt.IsZero())
		assert.NotNil(t, out.ImageURLs)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := NewInvestmentMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, investmentDoc("inv-1", "Kebun kopi")))

		inv, err := repo.FindByID(ctx, "inv-1")

		require.NoError(t, err)
		assert.Equal(t, "Kebun kopi", inv.Title)
		assert.Equal(t, int64(250000000), inv.Budget)
		assert.Len(t, inv.ImageURLs, 1)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		repo := NewInvestmentMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		inv, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, inv)
	})

	mt.Run("update missing document", func(mt *mtest.T) {
		repo := NewInvestmentMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		_, err := repo.Update(ctx, &model.Investment{ID: "missing"})

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	mt.Run("update existing document", func(mt *mtest.T) {
		repo := NewInvestmentMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		out, err := repo.Update(ctx, &model.Investment{ID: "inv-1", Title: "Baru"})

		require.NoError(t, err)
		assert.Equal(t, "Baru", out.Title)
		assert.False(t, out.UpdatedAt.IsZero())
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewInvestmentMongo(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
				investmentDoc("inv-2", "Dua"),
				investmentDoc("inv-1", "Satu"),
			),
		)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "inv-2", res.Items[0].ID)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewInvestmentMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(t, repo.Delete(ctx, "inv-1"))
	})
}

func TestLocationMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("count by status", func(mt *mtest.T) {
		repo := NewLocationMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: model.StatusPending}, {Key: "count", Value: int32(3)}},
			bson.D{{Key: "_id", Value: model.StatusApproved}, {Key: "count", Value: int32(7)}},
		))

		counts, err := repo.CountByStatus(ctx)

		require.NoError(t, err)
		assert.Equal(t, 3, counts[model.StatusPending])
		assert.Equal(t, 7, counts[model.StatusApproved])
		assert.Equal(t, 0, counts[model.StatusRejected])
	})

	mt.Run("list by status", func(mt *mtest.T) {
		repo := NewLocationMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "loc-1"}, {Key: "name", Value: "Air Terjun"}, {Key: "status", Value: model.StatusPending}},
		))

		locs, err := repo.ListByStatus(ctx, model.StatusPending, repository.PageQuery{Limit: 5})

		require.NoError(t, err)
		require.Len(t, locs, 1)
		assert.Equal(t, "Air Terjun", locs[0].Name)
	})

	mt.Run("list by submitter empty", func(mt *mtest.T) {
		repo := NewLocationMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		locs, err := repo.ListBySubmitter(ctx, "user-1", repository.PageQuery{Limit: 5})

		require.NoError(t, err)
		assert.Empty(t, locs)
		assert.NotNil(t, locs)
	})

	mt.Run("update status not found", func(mt *mtest.T) {
		repo := NewLocationMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.UpdateStatus(ctx, "missing", model.StatusApproved, "admin-1")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	mt.Run("update status", func(mt *mtest.T) {
		repo := NewLocationMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		assert.NoError(t, repo.UpdateStatus(ctx, "loc-1", model.StatusApproved, "admin-1"))

		filter, err := mt.GetStartedEvent().Command.LookupErr("updates", "0", "q")
		require.NoError(t, err)
		assert.Equal(t, "loc-1", filter.Document().Lookup("_id").StringValue())
		assert.Equal(t, model.StatusPending, filter.Document().Lookup("status").StringValue())
	})

	mt.Run("update status already reviewed", func(mt *mtest.T) {
		repo := NewLocationMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.UpdateStatus(ctx, "loc-approved", model.StatusRejected, "admin-1")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	mt.Run("create", func(mt *mtest.T) {
		repo := NewLocationMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		loc, err := repo.Create(ctx, &model.Location{Name: "Sawah", Status: model.StatusPending})

		require.NoError(t, err)
		assert.NotEmpty(t, loc.ID)
	})
}

func TestDesaMongo_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		repo := NewDesaMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "d1"}, {Key: "name", Value: "Sukamaju"}, {Key: "kecamatan", Value: "Cibeber"}},
			bson.D{{Key: "_id", Value: "d2"}, {Key: "name", Value: "Tanjungsari"}, {Key: "kecamatan", Value: "Cibeber"}},
		))

		desa, err := repo.List(context.Background())

		require.NoError(t, err)
		require.Len(t, desa, 2)
		assert.Equal(t, "Sukamaju", desa[0].Name)
	})

	mt.Run("command error", func(mt *mtest.T) {
		repo := NewDesaMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))

		_, err := repo.List(context.Background())

		assert.Error(t, err)
	})
}
