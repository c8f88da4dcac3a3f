// Package cache stores rendered API responses keyed by a hash of the request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Cache is implemented by every backend. A miss is reported with ok false
// and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by New.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	TTL     time.Duration
	// MaxEntries bounds the memory backend; zero means unbounded.
	MaxEntries int
	RedisAddr  string
	RedisDB    int
	Prefix     string
}

// New returns the backend named in opts, or nil when caching is disabled.
func New(opts Options) (Cache, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemory(opts.TTL, opts.MaxEntries), nil
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		return NewRedis(opts.RedisAddr, opts.RedisDB, opts.Prefix, opts.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// Key derives a stable key from an endpoint name and its decoded request.
func Key(endpoint string, request any) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}
	sum := sha256.Sum256(body)
	return endpoint + ":" + hex.EncodeToString(sum[:]), nil
}
