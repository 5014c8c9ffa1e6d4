// Package config loads netchart settings from TOML files.
//
// A config file has four sections, all optional:
//
//	[layout]
//	name = "force"
//
//	[layout.force]
//	updates = 50
//	seed = 7
//
//	[cache]
//	backend = "redis"     # file (default), redis or none
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[style]
//	width = 600
//	height = 400
//
//	[style.nodes]
//	colour = "@group"
//	cmap = "viridis"
//
// Style files passed to "netchart draw --style" use the same [style] table.
// Styling values follow the encoding rules: numbers and strings are constants,
// "@name" refers to a column, and false disables a property.
package config

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/netchart/pkg/cache"
	"github.com/matzehuels/netchart/pkg/draw"
	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/layout"
)

// DefaultFile is the config file looked up in the working directory when no
// path is given.
const DefaultFile = "netchart.toml"

// DefaultServerAddr is the listen address of "netchart serve".
const DefaultServerAddr = ":8080"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// =============================================================================
// Config
// =============================================================================

// Config is the root of a config file.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Style  draw.Options `toml:"style"`
}

// LayoutConfig selects the layouter used when a graph has no positions.
type LayoutConfig struct {
	Name  string       `toml:"name"`
	Force layout.Force `toml:"force"` // parameters of the force layout
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string             `toml:"backend"`
	Dir     string             `toml:"dir"` // file backend directory
	Redis   cache.RedisOptions `toml:"redis"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// SetDefaults fills unset fields. Style defaults are left to draw so that
// arrows keep inheriting from edges.
func (c *Config) SetDefaults() {
	if c.Layout.Name == "" {
		c.Layout.Name = layout.NameForce
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendFile
	}
	if c.Cache.Redis.Addr == "" {
		c.Cache.Redis.Addr = "localhost:6379"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}

// Validate checks the layout name and the cache backend.
func (c *Config) Validate() error {
	if _, err := layout.ByName(c.Layout.Name); err != nil {
		return err
	}
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (available: file, redis, none)", c.Cache.Backend)
	}
	return nil
}

// Default returns a config with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the config file at path. An empty path looks for DefaultFile in
// the working directory and falls back to Default when there is none.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return Default(), nil
		}
		path = DefaultFile
	}

	var c Config
	if err := decodeFile(path, &c); err != nil {
		return nil, err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return &c, nil
}

// LoadStyle reads the [style] table of a style file.
func LoadStyle(path string) (draw.Options, error) {
	var f struct {
		Style draw.Options `toml:"style"`
	}
	if err := decodeFile(path, &f); err != nil {
		return draw.Options{}, err
	}
	return f.Style, nil
}

func decodeFile(path string, v any) error {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidFormat, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// =============================================================================
// Components
// =============================================================================

// Layouter returns the configured layouter. The force layout carries the
// [layout.force] parameters.
func (c *Config) Layouter() (layout.Layouter, error) {
	if c.Layout.Name == layout.NameForce || c.Layout.Name == "" {
		f := c.Layout.Force
		return &f, nil
	}
	return layout.ByName(c.Layout.Name)
}

// OpenCache opens the configured cache backend. The file backend uses
// cache.DefaultDir when Dir is empty.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Cache.Redis)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := c.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir(); err != nil {
			return nil, err
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}
