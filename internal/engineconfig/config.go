// Package engineconfig provides optional, YAML-loadable tuning knobs for
// the vector engine's ANN backend and query cache, in the teacher's
// internal/config.VectorStoreConfig/PerformanceConfig style. The engine's
// public constructor (vectorengine.New(dimension)) never requires this:
// it is an additive override path, not a replacement for the spec's bare
// constructor.
package engineconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config overrides the vector engine's ANN and cache defaults.
type Config struct {
	// M is the HNSW max neighbors per layer. Zero uses ann.DefaultM.
	M int `yaml:"m"`

	// EfSearch is the HNSW query-time search width. Zero leaves
	// vectorengine's Search at its per-query width of max(3*k, 30).
	EfSearch int `yaml:"ef_search"`

	// CacheCapacity is the query cache's LRU capacity. Zero uses
	// querycache.DefaultCapacity.
	CacheCapacity int `yaml:"cache_capacity"`
}

// Default returns the zero-value Config, whose fields all mean "use the
// engine's built-in defaults".
func Default() Config {
	return Config{}
}

// Load reads and parses a YAML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read engine config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse engine config: %w", err)
	}
	return cfg, nil
}
