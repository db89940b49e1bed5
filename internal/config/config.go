package config

import (
	"log"
	"os"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	TelegramToken string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory" o "firestore"
	UseMockLLM     bool   // true = use mock even on GCP
	Timezone       string // IANA name used for date display
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads all env vars and builds the config
func Load() *Config {
	modeStr := getEnv("ANOTA_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		TelegramToken: getEnv("ANOTA_TELEGRAM_TOKEN", ""),

		GCPProjectID: getEnv("ANOTA_GCP_PROJECT", ""),
		GCPLocation:  getEnv("ANOTA_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("ANOTA_MODEL_NAME", "gemini-2.5-flash"),

		StorageBackend: getEnv("ANOTA_STORAGE_BACKEND", "memory"),
		UseMockLLM:     getBoolEnv("ANOTA_USE_MOCK_LLM", mode == ModeLocal),
		Timezone:       getEnv("ANOTA_TIMEZONE", "UTC"),
	}

	// Minimal validation
	if cfg.TelegramToken == "" {
		log.Fatal("ANOTA_TELEGRAM_TOKEN must be set")
	}
	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("ANOTA_GCP_PROJECT must be set in gcp mode")
	}

	return cfg
}
