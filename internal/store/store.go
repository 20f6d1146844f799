// Package store provides key/value backends for saving partial wizard state.
package store

import (
	"context"
	"fmt"
	"strings"
)

// KeyValueStore is a string key/value store
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Options selects and configures a backend
type Options struct {
	Backend   string
	Path      string // file backend
	RedisAddr string // redis backend
}

// Open creates the backend named in opts
func Open(opts Options) (KeyValueStore, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file store requires a path")
		}
		return NewFileStore(opts.Path), nil
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis store requires an address")
		}
		return NewRedisStore(opts.RedisAddr), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", opts.Backend)
	}
}
