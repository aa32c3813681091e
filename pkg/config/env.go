package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadFromEnv overlays environment variables onto cfg.
func LoadFromEnv(cfg *Config) error {
	cfg.Provider.Host = GetEnvOrDefault("ACRCLOUD_HOST", cfg.Provider.Host)
	cfg.Provider.AccessKey = GetEnvOrDefault("ACRCLOUD_ACCESS_KEY", cfg.Provider.AccessKey)
	cfg.Provider.AccessSecret = GetEnvOrDefault("ACRCLOUD_ACCESS_SECRET", cfg.Provider.AccessSecret)

	if v := os.Getenv("ACRCLOUD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ACRCLOUD_TIMEOUT %q: %w", v, err)
		}
		cfg.Provider.Timeout = d
	}

	cfg.Server.Address = GetEnvOrDefault("SERVER_ADDRESS", cfg.Server.Address)
	cfg.StoragePath = GetEnvOrDefault("STORAGE_PATH", cfg.StoragePath)
	cfg.StaticDir = GetEnvOrDefault("STATIC_DIR", cfg.StaticDir)
	cfg.LogLevel = GetEnvOrDefault("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("RECOGNITION_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid RECOGNITION_WORKERS %q", v)
		}
		cfg.Pipeline.RecognitionWorkers = n
	}
	return nil
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
