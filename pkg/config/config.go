package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"key-dance/pkg/acrcloud"
)

type Config struct {
	Server      ServerConfig   `yaml:"server"`
	Provider    ProviderConfig `yaml:"provider"`
	Pipeline    PipelineConfig `yaml:"pipeline"`
	StoragePath string         `yaml:"storage_path"`
	StaticDir   string         `yaml:"static_dir"`
	LogLevel    string         `yaml:"log_level"`
}

type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ProviderConfig holds the fingerprinting provider credentials. Timeout of
// zero means no deadline beyond the caller's.
type ProviderConfig struct {
	Host         string        `yaml:"host"`
	AccessKey    string        `yaml:"access_key"`
	AccessSecret string        `yaml:"access_secret"`
	Timeout      time.Duration `yaml:"timeout"`
}

// PipelineConfig sizes the worker pool behind the websocket endpoint.
type PipelineConfig struct {
	RecognitionWorkers int `yaml:"recognition_workers"`
	QueueSize          int `yaml:"queue_size"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Pipeline: PipelineConfig{
			RecognitionWorkers: 4,
			QueueSize:          64,
		},
		StoragePath: "./data",
		StaticDir:   "./static",
		LogLevel:    "info",
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path, a .env file in the working directory and the process environment,
// later sources winning.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}

	// A missing .env is normal in production.
	_ = godotenv.Load()

	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing provider credentials. It is a startup check.
func (c *Config) Validate() error {
	return c.Credentials().Validate()
}

func (c *Config) Credentials() acrcloud.Credentials {
	return acrcloud.Credentials{
		Host:         c.Provider.Host,
		AccessKey:    c.Provider.AccessKey,
		AccessSecret: c.Provider.AccessSecret,
	}
}
