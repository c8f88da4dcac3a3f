package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/rent-or-buy/internal/cache"
	"github.com/iwvelando/rent-or-buy/internal/config"
	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address        string               `yaml:"address"`
	MaxBodySize    string               `yaml:"maxBodySize"`
	CurrencySymbol string               `yaml:"currencySymbol"`
	Logging        config.LoggingConfig `yaml:"logging"`
	Cache          CacheConfig          `yaml:"cache"`
	History        HistoryConfig        `yaml:"history"`
	bodySizeBytes  int64
	cacheTTL       time.Duration
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend    string `yaml:"backend"` // none, memory, redis
	TTL        string `yaml:"ttl"`     // Go duration, e.g. "10m"
	MaxEntries int    `yaml:"maxEntries"`
	Address    string `yaml:"address"`
	DB         int    `yaml:"db"`
	Prefix     string `yaml:"prefix"`
}

// HistoryConfig enables the SQLite run history when Path is set.
type HistoryConfig struct {
	Path  string `yaml:"path"`
	Limit int    `yaml:"limit"`
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:       constants.DefaultServerAddress,
		MaxBodySize:   fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes),
		bodySizeBytes: constants.DefaultMaxBodySizeBytes,
		cacheTTL:      constants.DefaultCacheTTLSeconds * time.Second,
		History:       HistoryConfig{Limit: constants.DefaultHistoryLimit},
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BodySizeBytes returns the configured request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SetBodySizeBytes overrides the configured request body limit.
func (c *Config) SetBodySizeBytes(size int64) {
	if size > 0 {
		c.bodySizeBytes = size
		c.MaxBodySize = fmt.Sprintf("%d", size)
	}
}

// CacheOptions converts the cache section for cache.New.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:    c.Cache.Backend,
		TTL:        c.cacheTTL,
		MaxEntries: c.Cache.MaxEntries,
		RedisAddr:  c.Cache.Address,
		RedisDB:    c.Cache.DB,
		Prefix:     c.Cache.Prefix,
	}
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.History.Limit <= 0 {
		c.History.Limit = constants.DefaultHistoryLimit
	}

	if ttl := strings.TrimSpace(c.Cache.TTL); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid cache ttl %q: %w", c.Cache.TTL, err)
		}
		c.cacheTTL = d
	}

	sizeStr := strings.TrimSpace(c.MaxBodySize)
	if sizeStr == "" {
		c.bodySizeBytes = constants.DefaultMaxBodySizeBytes
		c.MaxBodySize = fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxBodySizeBytes
	}
	c.bodySizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
