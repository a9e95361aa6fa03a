package repository

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"notekeeper/model"
	"notekeeper/utils"

	"github.com/redis/go-redis/v9"
)

const (
	redisStore    = "redis"
	redisIDsKey   = "notes:ids"
	redisSeqKey   = "notes:seq"
	redisNoteKeyF = "note:%d"
)

// updateImportance only touches notes that still exist, so an update racing
// a delete cannot bring a half-written hash back.
var updateImportance = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], 'important', ARGV[1])
redis.call('HINCRBY', KEYS[1], 'version', 1)
return 1
`)

type RedisNotesRepo struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisNotesRepo parses redisURL and checks the server answers
func NewRedisNotesRepo(ctx context.Context, redisURL string) (*RedisNotesRepo, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisNotesRepoFromClient(client), nil
}

func NewRedisNotesRepoFromClient(client *redis.Client) *RedisNotesRepo {
	return &RedisNotesRepo{client: client, now: model.Now}
}

func noteKey(id int64) string {
	return fmt.Sprintf(redisNoteKeyF, id)
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func decodeNote(id int64, fields map[string]string) (*model.Note, error) {
	date, err := time.Parse(time.RFC3339Nano, fields["date"])
	if err != nil {
		return nil, fmt.Errorf("note %d has an invalid date %q: %w", id, fields["date"], err)
	}
	return &model.Note{
		ID:        strconv.FormatInt(id, 10),
		Content:   fields["content"],
		Date:      date.UTC(),
		Important: fields["important"] == "1",
	}, nil
}

func (r *RedisNotesRepo) Create(ctx context.Context, input model.NoteInput) (*model.Note, error) {
	timer := utils.TrackDBOperation("insert", redisStore)
	defer timer.ObserveDuration()

	id, err := r.client.Incr(ctx, redisSeqKey).Result()
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
		return nil, fmt.Errorf("failed to allocate note id: %w", err)
	}

	note := &model.Note{
		ID:        strconv.FormatInt(id, 10),
		Content:   input.Content,
		Date:      r.now(),
		Important: input.Important,
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, noteKey(id),
			"content", note.Content,
			"date", note.Date.Format(time.RFC3339Nano),
			"important", encodeBool(note.Important),
			"version", 0,
		)
		pipe.SAdd(ctx, redisIDsKey, id)
		return nil
	})
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
		return nil, fmt.Errorf("failed to store note %d: %w", id, err)
	}
	return note, nil
}

func (r *RedisNotesRepo) FindAll(ctx context.Context) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", redisStore)
	defer timer.ObserveDuration()

	members, err := r.client.SMembers(ctx, redisIDsKey).Result()
	if err != nil {
		utils.TrackError("database", "note_fetch_failed")
		return nil, fmt.Errorf("failed to list note ids: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid note id %q in %s: %w", m, redisIDsKey, err)
		}
		ids = append(ids, id)
	}
	// ids come from INCR, so ascending order is insertion order
	slices.Sort(ids)

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, noteKey(id))
		}
		return nil
	})
	if err != nil {
		utils.TrackError("database", "note_fetch_failed")
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	notes := make([]*model.Note, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		// deleted between SMEMBERS and HGETALL
		if len(fields) == 0 {
			continue
		}
		note, err := decodeNote(ids[i], fields)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func (r *RedisNotesRepo) FindByID(ctx context.Context, id string) (*model.Note, error) {
	key, err := parseSequentialID(id)
	if err != nil {
		return nil, err
	}

	timer := utils.TrackDBOperation("find_one", redisStore)
	defer timer.ObserveDuration()

	return r.get(ctx, key)
}

func (r *RedisNotesRepo) get(ctx context.Context, key int64) (*model.Note, error) {
	fields, err := r.client.HGetAll(ctx, noteKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load note %d: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, model.ErrNoteNotFound
	}
	return decodeNote(key, fields)
}

func (r *RedisNotesRepo) UpdateByID(ctx context.Context, id string, patch model.NotePatch) (*model.Note, error) {
	key, err := parseSequentialID(id)
	if err != nil {
		return nil, err
	}

	timer := utils.TrackDBOperation("update", redisStore)
	defer timer.ObserveDuration()

	updated, err := updateImportance.Run(ctx, r.client, []string{noteKey(key)}, encodeBool(patch.Important)).Int()
	if err != nil {
		utils.TrackError("database", "note_update_failed")
		return nil, fmt.Errorf("failed to update note %d: %w", key, err)
	}
	if updated == 0 {
		return nil, model.ErrNoteNotFound
	}
	return r.get(ctx, key)
}

func (r *RedisNotesRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	key, err := parseSequentialID(id)
	if err != nil {
		return false, nil
	}

	timer := utils.TrackDBOperation("delete", redisStore)
	defer timer.ObserveDuration()

	var del *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, noteKey(key))
		pipe.SRem(ctx, redisIDsKey, key)
		return nil
	})
	if err != nil {
		utils.TrackError("database", "note_delete_failed")
		return false, fmt.Errorf("failed to delete note %d: %w", key, err)
	}
	return del.Val() > 0, nil
}

func (r *RedisNotesRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisNotesRepo) Close() error {
	return r.client.Close()
}
