package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the service, read from the
// environment (with optional .env file).
type Config struct {
	Addr          string // listen address, e.g. ":8080"
	PasswordHash  string // bcrypt hash gating the tool
	SecretKey     string // JWT signing key
	OutputDir     string // directory generated photos are mirrored to
	MongoURI      string // record store; empty disables it
	MongoDatabase string
	MongoColl     string
	LocationsPath string // JSON catalog override; empty keeps presets
}

// Load reads the configuration from the environment. Absent keys fall
// back to development defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:          getEnv("ADDR", ":8080"),
		PasswordHash:  os.Getenv("PW"),
		SecretKey:     getEnv("SECRET_KEY", "dev-secret"),
		OutputDir:     getEnv("OUTPUT_DIR", "./.generated"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DB", "photo_seo"),
		MongoColl:     getEnv("MONGO_COLLECTION", "generated_photos"),
		LocationsPath: os.Getenv("LOCATIONS_FILE"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
