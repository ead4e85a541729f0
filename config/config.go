package config

import (
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
)

type Config struct {
	Database Database
}

type Database struct {
	URL             string
	MaxConns        int
	MaxConnLifetime string
}

// PGOptions converts the database section into go-pg connection options.
func (c *Config) PGOptions() (*pg.Options, error) {
	opt, err := pg.ParseURL(c.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	opt.MaxRetries = 3
	if c.Database.MaxConns > 0 {
		opt.PoolSize = c.Database.MaxConns
	}

	if c.Database.MaxConnLifetime != "" {
		lifetime, err := time.ParseDuration(c.Database.MaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("parse database max connection lifetime: %w", err)
		}
		opt.MaxConnAge = lifetime
	}

	return opt, nil
}
