package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// ======= Spanner =======

type spannerEnv struct {
	Database      string        `env:"SPANNER_DATABASE"`
	Timeout       time.Duration `env:"SPANNER_TIMEOUT" envDefault:"5s"`
	MigrationsDir string        `env:"MIGRATION_DIRECTORY" envDefault:"migrations"`
}

type spannerDB struct {
	raw spannerEnv
}

func NewSpannerConfig() (*spannerDB, error) {
	var raw spannerEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &spannerDB{raw: raw}, nil
}

// Database is the full database path. Empty selects in-memory stores.
func (cfg *spannerDB) Database() string           { return cfg.raw.Database }
func (cfg *spannerDB) Enabled() bool              { return cfg.raw.Database != "" }
func (cfg *spannerDB) Timeout() time.Duration     { return cfg.raw.Timeout }
func (cfg *spannerDB) MigrationDirectory() string { return cfg.raw.MigrationsDir }

// ======= Redis =======

type redisEnv struct {
	URL string        `env:"REDIS_URL"`
	TTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

type redisCache struct {
	raw redisEnv
}

func NewRedisConfig() (*redisCache, error) {
	var raw redisEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &redisCache{raw: raw}, nil
}

// URL is a redis:// connection string. Empty selects the in-memory cache.
func (cfg *redisCache) URL() string        { return cfg.raw.URL }
func (cfg *redisCache) Enabled() bool      { return cfg.raw.URL != "" }
func (cfg *redisCache) TTL() time.Duration { return cfg.raw.TTL }
