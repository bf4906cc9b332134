package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port             string
	DBPath           string
	MigrationsPath   string
	JWTSecret        string
	AuthPassword     string
	GeohashPrecision int
	Simulate         bool
}

// Load reads configuration from the environment
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/sessions.db"
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	authPassword := os.Getenv("AUTH_PASSWORD")
	if authPassword == "" {
		authPassword = "change-me"
	}

	precision := 7
	if raw := os.Getenv("GEOHASH_PRECISION"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p >= 1 && p <= 12 {
			precision = p
		}
	}

	simulate := os.Getenv("SIMULATE") == "1" || os.Getenv("SIMULATE") == "true"

	return &Config{
		Port:             port,
		DBPath:           dbPath,
		MigrationsPath:   migrationsPath,
		JWTSecret:        jwtSecret,
		AuthPassword:     authPassword,
		GeohashPrecision: precision,
		Simulate:         simulate,
	}
}
