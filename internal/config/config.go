package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	PIT      PITConfig      `yaml:"pit"`
	Lock     LockConfig     `yaml:"lock"`
	Queue    QueueConfig    `yaml:"queue"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// SkipMigrations disables applying migrations at server start. The zero
	// value migrates, so an omitted key and an explicit false agree.
	SkipMigrations bool `yaml:"skip_migrations" env:"DATABASE_SKIP_MIGRATIONS"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// PITConfig holds point-in-time recovery settings.
type PITConfig struct {
	// TreeCheckpointWindow is the number of commits after the latest tree
	// checkpoint that triggers a new one.
	TreeCheckpointWindow int `yaml:"tree_checkpoint_window" env:"PIT_TREE_CHECKPOINT_WINDOW" env-default:"100"`
	// CheckpointWindow is the number of commits on a folder after its latest
	// folder checkpoint that triggers a new one.
	CheckpointWindow int `yaml:"checkpoint_window" env:"PIT_CHECKPOINT_WINDOW" env-default:"100"`
	MaxLockRetries   int `yaml:"max_lock_retries"  env:"PIT_MAX_LOCK_RETRIES"  env-default:"10"`
}

// LockConfig holds distributed lock settings.
type LockConfig struct {
	ShortTTL    time.Duration `yaml:"short_ttl"    env:"LOCK_SHORT_TTL"    env-default:"15s"`
	LongTTL     time.Duration `yaml:"long_ttl"     env:"LOCK_LONG_TTL"     env-default:"60s"`
	PollInitial time.Duration `yaml:"poll_initial" env:"LOCK_POLL_INITIAL" env-default:"100ms"`
	PollMax     time.Duration `yaml:"poll_max"     env:"LOCK_POLL_MAX"     env-default:"1s"`
}

// QueueConfig holds background job settings.
type QueueConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" env:"QUEUE_POLL_INTERVAL" env-default:"1s"`
	Concurrency  int           `yaml:"concurrency"   env:"QUEUE_CONCURRENCY"   env-default:"4"`
	BatchSize    int           `yaml:"batch_size"    env:"QUEUE_BATCH_SIZE"    env-default:"4"`
	StaleAfter   time.Duration `yaml:"stale_after"   env:"QUEUE_STALE_AFTER"   env-default:"5m"`
	JobAttempts  int           `yaml:"job_attempts"  env:"QUEUE_JOB_ATTEMPTS"  env-default:"3"`
	JobBackoff   time.Duration `yaml:"job_backoff"   env:"QUEUE_JOB_BACKOFF"   env-default:"5s"`
}
