package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	Port          string
	CORSOrigin    string
}

// Load reads configuration from a .env file if present, falling back to the
// process environment.
func Load(log *logrus.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: os.Getenv("MONGO_DATABASE"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Port:          os.Getenv("API_PORT"),
		CORSOrigin:    os.Getenv("CORS_ORIGIN"),
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "salon"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:5173"
	}
	return cfg
}
