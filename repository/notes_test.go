package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"notekeeper/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoNotesRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	date := time.Date(2019, 5, 30, 17, 30, 31, 98e6, time.UTC)
	oid := primitive.NewObjectID()
	doc := bson.D{
		{Key: "_id", Value: oid},
		{Key: "content", Value: "HTML is easy"},
		{Key: "date", Value: date},
		{Key: "important", Value: true},
		{Key: "__v", Value: 0},
	}

	mt.Run("Create", func(mt *mtest.T) {
		repo := NewNotesRepo(mt.Coll)
		repo.now = func() time.Time { return date }
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		note, err := repo.Create(context.Background(), model.NoteInput{Content: "HTML is easy", Important: true})
		require.NoError(mt, err)
		assert.Len(mt, note.ID, 24)
		assert.True(mt, note.Date.Equal(date))
		assert.True(mt, note.Important)
	})

	mt.Run("Create failure", func(mt *mtest.T) {
		repo := NewNotesRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), model.NoteInput{Content: "HTML is easy"})
		assert.Error(mt, err)
	})

	mt.Run("FindAll", func(mt *mtest.T) {
		repo := NewNotesRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		second := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "content", Value: "Browser can execute only Javascript"},
			{Key: "date", Value: date.Add(time.Hour)},
			{Key: "important", Value: false},
			{Key: "__v", Value: 0},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, doc, second))

		notes, err := repo.FindAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, notes, 2)
		assert.Equal(mt, oid.Hex(), notes[0].ID)
		assert.Equal(mt, "Browser can execute only Javascript", notes[1].Content)
	})

	mt.Run("FindByID", func(mt *mtest.T) {
		repo := NewNotesRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, doc))

		note, err := repo.FindByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, model.Note{ID: oid.Hex(), Content: "HTML is easy", Date: date, Important: true}, *note)
	})

	mt.Run("Create then FindByID", func(mt *mtest.T) {
		repo := NewNotesRepo(mt.Coll)
		repo.now = func() time.Time { return date }
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.Create(context.Background(), model.NoteInput{Content: "Browser can execute only Javascript"})
		require.NoError(mt, err)

		createdID, err := primitive.ObjectIDFromHex(created.ID)
		require.NoError(mt, err)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: createdID},
			{Key: "content", Value: created.Content},
			{Key: "date", Value: created.Date},
			{Key: "important", Value: created.Important},
			{Key: "__v", Value: 0},
		}))

		found, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(mt, err)
		assert.Equal(mt, *created, *found)
	})

	mt.Run("FindByID not found", func(mt *mtest.T) {
		repo := NewNotesRepo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, model.ErrNoteNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewNotesRepo(mt.Coll)

		_, err := repo.FindByID(context.Background(), "5c41")
		assert.ErrorIs(mt, err, model.ErrMalformedID)
		_, err = repo.UpdateByID(context.Background(), "5c41", model.NotePatch{Important: true})
		assert.ErrorIs(mt, err, model.ErrMalformedID)

		deleted, err := repo.DeleteByID(context.Background(), "5c41")
		assert.NoError(mt, err)
		assert.False(mt, deleted)

		// uppercase hex decodes to the same ObjectID but is not the id we hand out
		upper := strings.ToUpper("5c4e2c2b9a7f8a1b2c3d4e5f")
		_, err = repo.FindByID(context.Background(), upper)
		assert.ErrorIs(mt, err, model.ErrMalformedID)
		deleted, err = repo.DeleteByID(context.Background(), upper)
		assert.NoError(mt, err)
		assert.False(mt, deleted)
	})

	mt.Run("UpdateByID", func(mt *mtest.T) {
		repo := NewNotesRepo(mt.Coll)
		updated := bson.D{
			{Key: "_id", Value: oid},
			{Key: "content", Value: "HTML is easy"},
			{Key: "date", Value: date},
			{Key: "important", Value: false},
			{Key: "__v", Value: 1},
		}
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: updated},
		})

		note, err := repo.UpdateByID(context.Background(), oid.Hex(), model.NotePatch{Important: false})
		require.NoError(mt, err)
		assert.False(mt, note.Important)
		assert.Equal(mt, oid.Hex(), note.ID)
	})

	mt.Run("UpdateByID not found", func(mt *mtest.T) {
		repo := NewNotesRepo(mt.Coll)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		_, err := repo.UpdateByID(context.Background(), oid.Hex(), model.NotePatch{Important: true})
		assert.ErrorIs(mt, err, model.ErrNoteNotFound)
	})

	mt.Run("DeleteByID", func(mt *mtest.T) {
		repo := NewNotesRepo(mt.Coll)
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}},
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}},
		)

		deleted, err := repo.DeleteByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.True(mt, deleted)

		deleted, err = repo.DeleteByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.False(mt, deleted)
	})
}
