package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all visualizer and server configuration
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Maze       MazeConfig       `yaml:"maze"`
	Server     ServerConfig     `yaml:"server"`
	Visualizer VisualizerConfig `yaml:"visualizer"`
}

// GridConfig holds hex grid settings
type GridConfig struct {
	Radius int `yaml:"radius"`
}

// MazeConfig holds maze generator settings
type MazeConfig struct {
	Density    float64 `yaml:"density"`
	Seed       int64   `yaml:"seed"` // 0 = time-based seed
	MaxRetries int     `yaml:"max_retries"`
	BatchSize  int     `yaml:"batch_size"`
}

// ServerConfig holds remote visualization server settings
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TickRate int    `yaml:"tick_rate"` // Hz, snapshot broadcast cadence
}

// VisualizerConfig holds desktop window settings
type VisualizerConfig struct {
	WindowWidth  int     `yaml:"window_width"`
	WindowHeight int     `yaml:"window_height"`
	HexSize      float64 `yaml:"hex_size"`
	StepsPerTick int     `yaml:"steps_per_tick"` // expansions per frame while animating
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults sets defaults for anything not provided
func (c *Config) applyDefaults() {
	if c.Grid.Radius == 0 {
		c.Grid.Radius = 13
	}
	if c.Maze.Density == 0 {
		c.Maze.Density = 0.45
	}
	if c.Maze.MaxRetries == 0 {
		c.Maze.MaxRetries = 64
	}
	if c.Maze.BatchSize == 0 {
		c.Maze.BatchSize = 8
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8090
	}
	if c.Server.TickRate == 0 {
		c.Server.TickRate = 30
	}
	if c.Visualizer.WindowWidth == 0 {
		c.Visualizer.WindowWidth = 1200
	}
	if c.Visualizer.WindowHeight == 0 {
		c.Visualizer.WindowHeight = 900
	}
	if c.Visualizer.HexSize == 0 {
		c.Visualizer.HexSize = 16.0
	}
	if c.Visualizer.StepsPerTick == 0 {
		c.Visualizer.StepsPerTick = 1
	}
}

func (c *Config) validate() error {
	if c.Grid.Radius < 2 {
		return fmt.Errorf("config: grid radius must be >= 2, got %d", c.Grid.Radius)
	}
	if c.Maze.Density < 0 || c.Maze.Density >= 1 {
		return fmt.Errorf("config: maze density must be in [0, 1), got %g", c.Maze.Density)
	}
	if c.Server.TickRate < 1 {
		return fmt.Errorf("config: tick rate must be >= 1, got %d", c.Server.TickRate)
	}
	return nil
}
