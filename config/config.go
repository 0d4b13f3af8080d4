package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config is assembled once at startup and injected into the layers that need
// it; nothing else reads the environment after Load returns (AWS SDK
// credential resolution excepted).
type Config struct {
	Port string

	// StoreBackend selects the persistence backend: "sqlite" (default,
	// embedded), "postgres", or "file" (single JSON blob).
	StoreBackend string
	SQLitePath   string
	PostgresDSN  string
	MealsFile    string

	JWTSecret string
	AppKey    string

	VisionAPIURL string
	VisionAPIKey string

	AWSRegion string
	S3Bucket  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		StoreBackend: getenv("STORE_BACKEND", "sqlite"),
		SQLitePath:   getenv("SQLITE_PATH", "meals.db"),
		MealsFile:    getenv("MEALS_FILE", "meals.json"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AppKey:       os.Getenv("APP_KEY"),
		VisionAPIURL: os.Getenv("VISION_API_URL"),
		VisionAPIKey: os.Getenv("VISION_API_KEY"),
		AWSRegion:    os.Getenv("AWS_REGION"),
		S3Bucket:     os.Getenv("S3_BUCKET"),
	}

	if cfg.StoreBackend == "postgres" {
		cfg.PostgresDSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			getenv("DB_PORT", "5432"),
		)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	if cfg.AppKey == "" {
		return nil, fmt.Errorf("APP_KEY not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
