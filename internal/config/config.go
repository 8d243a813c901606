// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	ListenAddr     string
	DBPath         string
	AllowedOrigins []string
	RemoteBaseURL  string
	SyncStatePath  string
	SyncDebounce   time.Duration
	PollInterval   time.Duration
	LogLevel       string
	LogFile        string
}

func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		DBPath:         getEnv("DB_PATH", "/data/devnotes.db"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		RemoteBaseURL:  getEnv("REMOTE_BASE_URL", "http://localhost:8080/api/documents"),
		SyncStatePath:  getEnv("SYNC_STATE_PATH", "/data/devnotes_doc_id"),
		SyncDebounce:   getEnvDuration("SYNC_DEBOUNCE", time.Second),
		PollInterval:   getEnvDuration("POLL_INTERVAL", 15*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
