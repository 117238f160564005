package config

import (
	"os"
	"strconv"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        string
	MaxUploadMB int
}

// StorageConfig holds the filesystem locations used by the application.
type StorageConfig struct {
	UploadDir   string
	StaticDir   string
	TemplateDir string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	Server  ServerConfig
	Storage StorageConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 32),
		},
		Storage: StorageConfig{
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			StaticDir:   getEnv("STATIC_DIR", "static"),
			TemplateDir: getEnv("TEMPLATE_DIR", "templates"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
