package repository

import (
	"context"
	"fmt"
	"log"

	"notekeeper/config"
	"notekeeper/model"
	"notekeeper/utils"
)

// CloseFunc releases whatever connection a store holds.
type CloseFunc func(ctx context.Context) error

// Open builds the store selected by cfg.Store.Backend
func Open(ctx context.Context, cfg config.Config) (NotesRepository, CloseFunc, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		client, err := utils.NewMongoClient(ctx, cfg.Store.Mongo.MongoOptions())
		if err != nil {
			return nil, nil, err
		}
		repo := GetNotesRepo(client, cfg.Store.Mongo.DatabaseName, cfg.Store.Mongo.Collection)
		if err := SetupIndexes(ctx, repo.MongoCollection); err != nil {
			log.Printf("Warning: %v", err)
		}
		return repo, client.Disconnect, nil

	case config.BackendSQLite:
		repo, err := OpenSQLiteNotesRepo(ctx, cfg.Store.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func(context.Context) error { return repo.Close() }, nil

	case config.BackendRedis:
		repo, err := NewRedisNotesRepo(ctx, cfg.Store.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		return repo, func(context.Context) error { return repo.Close() }, nil

	case config.BackendMemory:
		var seed []model.Note
		if cfg.SeedNotes {
			seed = SeedNotes()
		}
		return NewMemoryNotesRepo(seed...), func(context.Context) error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
