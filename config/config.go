package config

import (
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jsphweid/chordex/constants"
)

type Config struct {
	LogLevel    int    `yaml:"log_level"`
	BarsPerBeat int    `yaml:"bars_per_beat"`
	TicksPerBar uint32 `yaml:"ticks_per_bar"`
	Output      string `yaml:"output"`
	PreviewBars int    `yaml:"preview_bars"`

	Server   ServerConfig   `yaml:"server"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	Watch    WatchConfig    `yaml:"watch"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DynamoDBConfig struct {
	// Endpoint is left empty to use the regular AWS endpoint resolution.
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Table    string `yaml:"table"`
}

type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
	Debounce time.Duration `yaml:"debounce"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	config.setDefaults()
	return config, nil
}

// LoadOrDefault loads path when given, falling back to CHORDEX_CONFIG and
// then to defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = constants.GetConfigPath()
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) setDefaults() {
	if c.BarsPerBeat <= 0 {
		c.BarsPerBeat = constants.BarsPerBeat
	}
	if c.Output == "" {
		c.Output = constants.GetOutputPath()
	}
	if c.PreviewBars == 0 {
		c.PreviewBars = constants.PreviewBars
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.DynamoDB.Region == "" {
		c.DynamoDB.Region = "us-east-1"
	}
	if c.DynamoDB.Table == "" {
		c.DynamoDB.Table = "chordex-progressions"
	}
	if c.Watch.Interval <= 0 {
		c.Watch.Interval = time.Second
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = 250 * time.Millisecond
	}
}

func (c *Config) Level() slog.Level {
	return slog.Level(c.LogLevel)
}
