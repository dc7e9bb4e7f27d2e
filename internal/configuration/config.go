package configuration

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at process start.
type Config struct {
	// Database
	MongoURI string
	DBName   string

	// Security
	JWTSecret string

	// External APIs
	TMDBAPIKey       string
	OpenRouterAPIKey string

	// Server
	Port        string
	CORSOrigins []string
	UploadDir   string
}

// LoadConfig reads the environment (optionally seeded from a .env file).
// A missing MONGO_URI is a fatal startup condition.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:         os.Getenv("MONGO_URI"),
		DBName:           getEnvOrDefault("DB_NAME", "cineshelf"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TMDBAPIKey:       os.Getenv("TMDB_API_KEY"),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		Port:             getEnvOrDefault("PORT", "8080"),
		UploadDir:        getEnvOrDefault("UPLOAD_DIR", "uploads"),
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	origins := getEnvOrDefault("CORS_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
