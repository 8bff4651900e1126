package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-driven settings.
type Config struct {
	DatabaseURL string
	Port        string
}

// Load reads .env when present and falls back to system env vars.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        port,
	}
}
