// Package config loads depflow settings from a TOML file and the environment.
//
// Settings are layered: [Default] values, then the file (an explicit path or
// [FileName] in the project root, see [Discover]), then environment
// variables. Command-line flags are applied last by the caller.
//
// # File Format
//
//	[layout]
//	node_spacing_x = 240
//	layer_spacing_y = 120
//
//	[scan]
//	gitignore = true
//	ignore = ["coverage", "storybook-static"]
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[[rules]]
//	name = "UI stays out of domain"
//	from = ".*/domain/.*"
//	to = ".*/components/.*"
//
// When [[rules]] is present it replaces the default architecture rules.
//
// # Environment
//
//   - DEPFLOW_CACHE: cache backend (file, memory, redis, none)
//   - DEPFLOW_CACHE_DIR: file cache directory
//   - DEPFLOW_REDIS_URL: redis connection URL
//   - DEPFLOW_ADDR: API listen address
package config

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depflow/pkg/cache"
	"github.com/matzehuels/depflow/pkg/depgraph/transform"
	errs "github.com/matzehuels/depflow/pkg/errors"
	"github.com/matzehuels/depflow/pkg/lint"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// FileName is the per-project config file looked up by [Discover].
	FileName = ".depflow.toml"

	// AppName names the cache directory.
	AppName = "depflow"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Environment variables read by [Load].
const (
	EnvCache    = "DEPFLOW_CACHE"
	EnvCacheDir = "DEPFLOW_CACHE_DIR"
	EnvRedisURL = "DEPFLOW_REDIS_URL"
	EnvAddr     = "DEPFLOW_ADDR"
)

const (
	defaultAddr         = ":8080"
	defaultMemorySize   = 1024
	defaultMaxBodyBytes = 10 << 20
)

// =============================================================================
// Config
// =============================================================================

// Config is the complete set of depflow settings.
type Config struct {
	Layout transform.Config `toml:"layout"`
	Scan   ScanConfig       `toml:"scan"`
	Cache  CacheConfig      `toml:"cache"`
	Server ServerConfig     `toml:"server"`

	// Rules overrides the default architecture rules when non-nil.
	Rules []lint.Rule `toml:"rules"`
}

// ScanConfig controls the project walk.
type ScanConfig struct {
	Gitignore bool     `toml:"gitignore"` // Also skip paths matched by <root>/.gitignore
	Ignore    []string `toml:"ignore"`    // Extra directory or file names to skip
	SkipDeps  bool     `toml:"skip_deps"` // Inventory only, no import edges
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Size     int    `toml:"size"`   // Entry limit of the memory backend
	Prefix   string `toml:"prefix"` // Key namespace, e.g. "staging:" on a shared Redis
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: transform.DefaultConfig(),
		Cache: CacheConfig{
			Backend: BackendFile,
			Size:    defaultMemorySize,
		},
		Server: ServerConfig{
			Addr:         defaultAddr,
			MaxBodyBytes: defaultMaxBodyBytes,
		},
	}
}

// =============================================================================
// Loading
// =============================================================================

// Discover returns the path of the config file in root, or "" if there is none.
func Discover(root string) string {
	path := filepath.Join(root, FileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// Load returns [Default] overlaid with the TOML file at path (skipped when
// path is empty) and the environment. Unknown keys in the file are an error,
// as is any setting that fails [Config.Validate].
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			if os.IsNotExist(err) {
				return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvCache); v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Cache.RedisURL = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks the layout numbers, the cache backend, and that every rule
// compiles.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}

	backends := []string{BackendFile, BackendMemory, BackendRedis, BackendNone}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidConfig, "cache backend %q must be one of: %s", c.Cache.Backend, strings.Join(backends, ", "))
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache backend redis requires redis_url or %s", EnvRedisURL)
	}
	if c.Cache.Size < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache size must not be negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "max_body_bytes must not be negative")
	}

	if c.Rules != nil {
		if _, err := lint.Compile(c.Rules); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Cache Construction
// =============================================================================

// Open constructs the configured cache backend.
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendMemory:
		return cache.NewMemoryCache(c.Size)
	case BackendRedis:
		return cache.NewRedisCache(ctx, c.RedisURL)
	default:
		dir := c.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultCacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	}
}

// Keyer returns the key builder matching Prefix.
func (c CacheConfig) Keyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, c.Prefix)
}

// DefaultCacheDir returns the cache directory following the XDG convention
// (~/.cache/depflow/).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
