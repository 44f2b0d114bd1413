package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level configuration for drawdeck.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Engine EngineConfig `koanf:"engine"`
	Demos  DemosConfig  `koanf:"demos"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // "debug" or "release"
}

// EngineConfig holds the document engine settings.
type EngineConfig struct {
	// HistoryCap bounds each entity's undo stream; oldest snapshots
	// are dropped past this.
	HistoryCap int `koanf:"history_cap"`
}

// DemosConfig points at the bundled demo sets.
type DemosConfig struct {
	Dir string `koanf:"dir"`
}

// Load loads the configuration from the given file path and environment
// variables. Precedence: defaults < file < environment.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":        8080,
		"server.host":        "0.0.0.0",
		"server.mode":        "release",
		"engine.history_cap": 50,
		"demos.dir":          "./demos",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// DRAWDECK_SERVER__PORT=9090 overrides server.port
	if err := k.Load(env.Provider("DRAWDECK_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "DRAWDECK_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Addr joins host and port for the HTTP listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
