package connector

import (
	"fmt"
	"time"
)

// Config describes how to reach a database. Connection retry and backoff are
// deliberately absent: opening happens once and failures surface to the
// caller.
type Config struct {
	Host           string            `json:"host" yaml:"host"`
	Port           int               `json:"port" yaml:"port"`
	Database       string            `json:"database" yaml:"database"`
	Username       string            `json:"username" yaml:"username"`
	Password       string            `json:"password" yaml:"password"`
	SSLMode        string            `json:"ssl_mode" yaml:"ssl_mode"`
	Params         map[string]string `json:"params" yaml:"params"`
	Pool           PoolConfig        `json:"pool" yaml:"pool"`
	ConnectTimeout time.Duration     `json:"connect_timeout" yaml:"connect_timeout"`
}

// PoolConfig defines connection pool settings.
type PoolConfig struct {
	MaxOpen     int           `json:"max_open" yaml:"max_open"`
	MaxIdle     int           `json:"max_idle" yaml:"max_idle"`
	MaxLifetime time.Duration `json:"max_lifetime" yaml:"max_lifetime"`
	MaxIdleTime time.Duration `json:"max_idle_time" yaml:"max_idle_time"`
}

// Validate checks the fields a connection cannot be opened without.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("connector: host is required")
	}
	if c.Database == "" {
		return fmt.Errorf("connector: database is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("connector: invalid port %d", c.Port)
	}
	return nil
}

// withDefaults fills unset fields with workable values.
func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.SSLMode == "" {
		c.SSLMode = "prefer"
	}
	if c.Pool.MaxOpen == 0 {
		c.Pool.MaxOpen = 10
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	return c
}
