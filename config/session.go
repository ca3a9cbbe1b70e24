package config

import (
	"fmt"
	"strings"
)

// SessionBackend selects where the admin session record is persisted.
type SessionBackend string

const (
	// SessionBackendFile keeps the session in an atomic JSON file under the
	// user's config directory.
	SessionBackendFile SessionBackend = "file"
	// SessionBackendRedis keeps the session in Redis, for installations
	// sharing client state across hosts.
	SessionBackendRedis SessionBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (s *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis":
		*s = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: file, redis)", v)
	}
}

// FileSessionConfig configures the file session backend.
type FileSessionConfig struct {
	// Path overrides the session file location. Empty means
	// <user config dir>/opsgate-console/admin_session.json.
	Path string `env:"PATH" envDefault:""`
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// SessionConfig groups session store configuration.
type SessionConfig struct {
	Backend SessionBackend `env:"SESSION_BACKEND" envDefault:"file"`

	File  FileSessionConfig `envPrefix:"SESSION_FILE_"`
	Redis RedisConfig       `envPrefix:"REDIS_"`
}
