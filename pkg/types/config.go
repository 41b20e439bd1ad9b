package types

import (
	"errors"
	"time"
)

// Config holds the store connection parameters for Backend.Attach.
type Config struct {
	DatabaseURL     string        `json:"database_url" yaml:"database_url"`
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// Config validation errors.
var (
	ErrDatabaseURLEmpty = errors.New("database_url must not be empty")
	ErrPoolSizeNegative = errors.New("connection pool sizes must not be negative")
	ErrLifetimeNegative = errors.New("conn_max_lifetime must not be negative")
)

// Validate checks that the Config is well-formed. The URL scheme is checked
// by the backend when it selects a dialect.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrDatabaseURLEmpty
	}
	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		return ErrPoolSizeNegative
	}
	if c.ConnMaxLifetime < 0 {
		return ErrLifetimeNegative
	}
	return nil
}
