package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Remote is settings for connection to the backend title store
type Remote struct {
	Scheme string
	Host   string
	Port   int
	Path   string
}

// URL assembles the collection endpoint
func (r Remote) URL() string {
	if r.Port == 0 {
		return fmt.Sprintf("%s://%s%s", r.Scheme, r.Host, r.Path)
	}
	return fmt.Sprintf("%s://%s:%d%s", r.Scheme, r.Host, r.Port, r.Path)
}

// Redis is settings for the raw-collection cache; empty Address disables it
type Redis struct {
	Address string

	// CacheTTLMin is the collection cache lifetime in minutes
	CacheTTLMin int `json:"cache-ttl-min"`
}

// Catalog tunes refresh and playback behavior
type Catalog struct {
	// RefreshIntervalMin is the period of catalog re-fetches in minutes
	RefreshIntervalMin int `json:"refresh-interval-min"`

	// QualityPriority orders preferred source qualities, best first.
	// Empty means plain first-source selection.
	QualityPriority []string `json:"quality-priority"`
}

// Configuration represents entire service configuration
type Configuration struct {
	// MongoDB connection string
	Database string

	// Remote is settings to connect to the title store
	Remote Remote

	Redis Redis

	Catalog Catalog
}

var config Configuration

// Load opens and parses configuration file
func Load(configFilePath string) error {
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		return fmt.Errorf("read config failed: %w", err)
	}
	if err = json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parse config failed: %w", err)
	}
	config.applyDefaults()
	return nil
}

func (c *Configuration) applyDefaults() {
	if c.Database == "" {
		c.Database = "mongodb://127.0.0.1:27017"
	}
	if c.Remote.Scheme == "" {
		c.Remote.Scheme = "https"
	}
	if c.Redis.CacheTTLMin <= 0 {
		c.Redis.CacheTTLMin = 24 * 60
	}
	if c.Catalog.RefreshIntervalMin <= 0 {
		c.Catalog.RefreshIntervalMin = 30
	}
}

// Config returns loaded configuration
func Config() Configuration {
	return config
}
