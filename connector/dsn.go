package connector

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// DSNBuilder assembles a connection URL piece by piece.
type DSNBuilder struct {
	scheme   string
	username string
	password string
	host     string
	port     int
	database string
	params   map[string]string
}

// NewDSNBuilder creates a new DSN builder for the given scheme.
func NewDSNBuilder(scheme string) *DSNBuilder {
	return &DSNBuilder{
		scheme: scheme,
		params: make(map[string]string),
	}
}

// Auth sets username and password.
func (b *DSNBuilder) Auth(username, password string) *DSNBuilder {
	b.username = username
	b.password = password
	return b
}

// Host sets the host and port.
func (b *DSNBuilder) Host(host string, port int) *DSNBuilder {
	b.host = host
	b.port = port
	return b
}

// Database sets the database name.
func (b *DSNBuilder) Database(name string) *DSNBuilder {
	b.database = name
	return b
}

// Param adds a query parameter.
func (b *DSNBuilder) Param(key, value string) *DSNBuilder {
	b.params[key] = value
	return b
}

// Build renders the DSN. Parameters are emitted in sorted order so the same
// config always yields the same string (and the same cache keys downstream).
func (b *DSNBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString(b.scheme)
	sb.WriteString("://")

	if b.username != "" {
		sb.WriteString(url.UserPassword(b.username, b.password).String())
		sb.WriteByte('@')
	}
	sb.WriteString(b.host)
	if b.port > 0 {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(b.port))
	}
	sb.WriteByte('/')
	sb.WriteString(url.PathEscape(b.database))

	if len(b.params) > 0 {
		keys := make([]string, 0, len(b.params))
		for k := range b.params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteByte('?')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(url.QueryEscape(k))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(b.params[k]))
		}
	}
	return sb.String()
}

// dsnFor renders the postgres DSN for a config.
func dsnFor(cfg Config) string {
	b := NewDSNBuilder("postgres").
		Auth(cfg.Username, cfg.Password).
		Host(cfg.Host, cfg.Port).
		Database(cfg.Database).
		Param("sslmode", cfg.SSLMode)
	for k, v := range cfg.Params {
		b.Param(k, v)
	}
	return b.Build()
}
