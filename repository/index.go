package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the notes collection relies on
func SetupIndexes(ctx context.Context, coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	noteIndexes := []mongo.IndexModel{
		// Creation date, newest first
		{
			Keys: bson.D{{Key: "date", Value: -1}},
			Options: options.Index().
				SetName("notes_date"),
		},
		// Important-only views
		{
			Keys: bson.D{
				{Key: "important", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().
				SetName("notes_important_date"),
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	log.Printf("Indexes ready on %s", coll.Name())
	return nil
}
