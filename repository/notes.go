package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notekeeper/model"
	"notekeeper/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoStore = "mongo"

// noteDocument is the stored shape. _id and __v never leave this package.
type noteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Content   string             `bson:"content"`
	Date      time.Time          `bson:"date"`
	Important bool               `bson:"important"`
	Version   int                `bson:"__v"`
}

// parseObjectID accepts only the lowercase hex form toNote hands out
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil || oid.Hex() != id {
		return primitive.NilObjectID, model.ErrMalformedID
	}
	return oid, nil
}

func (d *noteDocument) toNote() *model.Note {
	return &model.Note{
		ID:        d.ID.Hex(),
		Content:   d.Content,
		Date:      d.Date.UTC(),
		Important: d.Important,
	}
}

type NotesRepo struct {
	MongoCollection *mongo.Collection
	now             func() time.Time
}

func GetNotesRepo(client *mongo.Client, database, collection string) *NotesRepo {
	return NewNotesRepo(client.Database(database).Collection(collection))
}

func NewNotesRepo(coll *mongo.Collection) *NotesRepo {
	return &NotesRepo{MongoCollection: coll, now: model.Now}
}

// Create inserts a new note and returns it with its generated id
func (r *NotesRepo) Create(ctx context.Context, input model.NoteInput) (*model.Note, error) {
	timer := utils.TrackDBOperation("insert", mongoStore)
	defer timer.ObserveDuration()

	doc := noteDocument{
		Content:   input.Content,
		Date:      r.now(),
		Important: input.Important,
	}

	result, err := r.MongoCollection.InsertOne(ctx, doc)
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	doc.ID = oid
	return doc.toNote(), nil
}

// FindAll retrieves every note in natural order
func (r *NotesRepo) FindAll(ctx context.Context) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", mongoStore)
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.D{})
	if err != nil {
		utils.TrackError("database", "note_fetch_failed")
		return nil, fmt.Errorf("failed to find notes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []noteDocument
	if err = cursor.All(ctx, &docs); err != nil {
		utils.TrackError("database", "note_decode_failed")
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}

	notes := make([]*model.Note, 0, len(docs))
	for i := range docs {
		notes = append(notes, docs[i].toNote())
	}
	return notes, nil
}

// FindByID retrieves a specific note
func (r *NotesRepo) FindByID(ctx context.Context, id string) (*model.Note, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	timer := utils.TrackDBOperation("find_one", mongoStore)
	defer timer.ObserveDuration()

	var doc noteDocument
	err = r.MongoCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note %s: %w", id, err)
	}
	return doc.toNote(), nil
}

// UpdateByID sets the importance flag and returns the updated note
func (r *NotesRepo) UpdateByID(ctx context.Context, id string, patch model.NotePatch) (*model.Note, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	timer := utils.TrackDBOperation("update", mongoStore)
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{"important": patch.Important},
		"$inc": bson.M{"__v": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc noteDocument
	err = r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNoteNotFound
		}
		utils.TrackError("database", "note_update_failed")
		return nil, fmt.Errorf("failed to update note %s: %w", id, err)
	}
	return doc.toNote(), nil
}

// DeleteByID deletes a specific note. Ids that cannot exist are reported as
// not deleted rather than as an error.
func (r *NotesRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, nil
	}

	timer := utils.TrackDBOperation("delete", mongoStore)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		utils.TrackError("database", "note_delete_failed")
		return false, fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

func (r *NotesRepo) Ping(ctx context.Context) error {
	return r.MongoCollection.Database().Client().Ping(ctx, readpref.Primary())
}
