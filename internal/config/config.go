package config

import (
	"os"
)

type Config struct {
	Port          string
	StaticDir     string
	BackendOrigin string
	// ConfigPath is the URL path the frontend fetches at boot.
	ConfigPath string
	// ConfigFile is where the configuration document lives on disk.
	ConfigFile string
	// RulesFile optionally overrides the built-in proxy rule table.
	RulesFile string
	DevMode   bool
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		StaticDir:     getenv("STATIC_DIR", "dist"),
		BackendOrigin: getenv("BACKEND_ORIGIN", "http://localhost:5000"),
		ConfigPath:    getenv("CONFIG_PATH", "/config/configuration.json"),
		ConfigFile:    getenv("CONFIG_FILE", "dist/config/configuration.json"),
		RulesFile:     getenv("PROXY_RULES_FILE", ""),
		DevMode:       getenvBool("DEV_MODE", false),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvBool(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes":
		return true
	case "0", "false", "FALSE", "False", "no":
		return false
	default:
		return fallback
	}
}
