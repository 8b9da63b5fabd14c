package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
)

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		d := newDoc("sub-1", "first")
		id, err := NewMongoRepo(mt.Coll).Create(context.Background(), d)
		require.NoError(mt, err)
		require.NotEmpty(mt, id)
		require.Equal(mt, id, d.ID)
	})

	mt.Run("get decodes document", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "id", Value: "doc-1"},
			{Key: "owner", Value: "sub-1"},
			{Key: "title", Value: "Dogly"},
			{Key: "description", Value: "Original desc"},
			{Key: "content", Value: bson.D{
				{Key: "startup_name", Value: "Dogly"},
				{Key: "tech_stack", Value: bson.D{{Key: "backend", Value: "Go"}}},
			}},
		}))
		got, err := NewMongoRepo(mt.Coll).Get(context.Background(), "doc-1")
		require.NoError(mt, err)
		require.Equal(mt, "Original desc", got.Description)
		require.Equal(mt, "Go", got.Content.TechStack.Backend)
		require.Nil(mt, got.Content.AIIntegration)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err := NewMongoRepo(mt.Coll).Get(context.Background(), "nope")
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		err := NewMongoRepo(mt.Coll).Update(context.Background(), &prd.Document{ID: "nope"})
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update sets only mutable fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		err := NewMongoRepo(mt.Coll).Update(context.Background(), &prd.Document{ID: "doc-1", Title: "t", Description: "rogue"})
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		set := started.Command.Lookup("updates", "0", "u", "$set")
		_, err = set.Document().LookupErr("description")
		require.Error(mt, err)
		require.Equal(mt, "t", set.Document().Lookup("title").StringValue())
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(mt, NewMongoRepo(mt.Coll).Delete(context.Background(), "doc-1"))

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		require.ErrorIs(mt, NewMongoRepo(mt.Coll).Delete(context.Background(), "doc-1"), ErrNotFound)
	})
}
