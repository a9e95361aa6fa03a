package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"notekeeper/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	Port         string      `yaml:"port"`
	StaticDir    string      `yaml:"static_dir"`
	MaxBodyBytes int64       `yaml:"max_body_bytes"`
	SeedNotes    bool        `yaml:"seed_notes"`
	Store        StoreConfig `yaml:"store"`
}

type StoreConfig struct {
	Backend string         `yaml:"backend"`
	Mongo   DatabaseConfig `yaml:"mongo"`
	SQLite  SQLiteConfig   `yaml:"sqlite"`
	Redis   RedisConfig    `yaml:"redis"`
}

type DatabaseConfig struct {
	URI             string        `yaml:"uri"`
	DatabaseName    string        `yaml:"database"`
	Collection      string        `yaml:"collection"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	RetryWrites     bool          `yaml:"retry_writes"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		Port:         "3001",
		MaxBodyBytes: 1 << 20,
		Store: StoreConfig{
			Backend: BackendMongo,
			Mongo: DatabaseConfig{
				URI:             "mongodb://localhost:27017",
				DatabaseName:    "noteApp",
				Collection:      "notes",
				MaxPoolSize:     100,
				MinPoolSize:     10,
				MaxConnIdleTime: 60 * time.Second,
				RetryWrites:     true,
			},
			SQLite: SQLiteConfig{Path: "notes.db"},
			Redis:  RedisConfig{URL: "redis://localhost:6379/0"},
		},
	}
}

// Load builds the configuration from defaults, then the optional YAML file at
// path, then the environment (including a .env file if one exists).
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = utils.GetEnvAsString("PORT", cfg.Port)
	cfg.StaticDir = utils.GetEnvAsString("STATIC_DIR", cfg.StaticDir)
	cfg.MaxBodyBytes = utils.GetEnvAsInt64("MAX_BODY_BYTES", cfg.MaxBodyBytes)
	cfg.SeedNotes = utils.GetEnvAsBool("SEED_NOTES", cfg.SeedNotes)

	cfg.Store.Backend = utils.GetEnvAsString("STORE_BACKEND", cfg.Store.Backend)

	mongo := &cfg.Store.Mongo
	mongo.URI = utils.GetEnvAsString("MONGO_URI", mongo.URI)
	mongo.DatabaseName = utils.GetEnvAsString("MONGO_DB", mongo.DatabaseName)
	mongo.Collection = utils.GetEnvAsString("NOTES_COLLECTION", mongo.Collection)
	mongo.MaxPoolSize = utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", mongo.MaxPoolSize)
	mongo.MinPoolSize = utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", mongo.MinPoolSize)
	mongo.MaxConnIdleTime = utils.GetEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", mongo.MaxConnIdleTime)
	mongo.RetryWrites = utils.GetEnvAsBool("MONGO_RETRY_WRITES", mongo.RetryWrites)

	cfg.Store.SQLite.Path = utils.GetEnvAsString("SQLITE_PATH", cfg.Store.SQLite.Path)
	cfg.Store.Redis.URL = utils.GetEnvAsString("REDIS_URL", cfg.Store.Redis.URL)
}

// Validate checks the settings that cannot be defaulted away
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must be set")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body size must be positive, got %d", c.MaxBodyBytes)
	}
	switch c.Store.Backend {
	case BackendMongo:
		if c.Store.Mongo.URI == "" || c.Store.Mongo.DatabaseName == "" {
			return fmt.Errorf("mongo backend needs MONGO_URI and MONGO_DB")
		}
	case BackendSQLite:
		if c.Store.SQLite.Path == "" {
			return fmt.Errorf("sqlite backend needs SQLITE_PATH")
		}
	case BackendRedis:
		if c.Store.Redis.URL == "" {
			return fmt.Errorf("redis backend needs REDIS_URL")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// MongoOptions converts the mongo section into client options
func (d DatabaseConfig) MongoOptions() utils.MongoOptions {
	return utils.MongoOptions{
		URI:             d.URI,
		MaxPoolSize:     d.MaxPoolSize,
		MinPoolSize:     d.MinPoolSize,
		MaxConnIdleTime: d.MaxConnIdleTime,
		RetryWrites:     d.RetryWrites,
	}
}
