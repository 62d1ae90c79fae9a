package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	PORT           string
	LOG_LEVEL      string
	API_BASE       string
	JWT_SECRET     string
	REDIS_URL      string
	KAFKA_ADDRESS  string
	ES_URL         string
	ES_USER        string
	ES_PASSWORD    string
	DB_HOST        string
	DB_PORT        string
	DB_USER        string
	DB_PASSWORD    string
	DB_NAME        string
	TAX_RATE       float64
	RECEIPT_PREFIX string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:           os.Getenv("PORT"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		API_BASE:       os.Getenv("API_BASE"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REDIS_URL:      os.Getenv("REDIS_URL"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		TAX_RATE:       0.11,
		RECEIPT_PREFIX: os.Getenv("RECEIPT_PREFIX"),
	}

	if config.PORT == "" {
		config.PORT = "8080"
	}
	if config.RECEIPT_PREFIX == "" {
		config.RECEIPT_PREFIX = "CS"
	}
	if raw := os.Getenv("TAX_RATE"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TAX_RATE %q: %w", raw, err)
		}
		config.TAX_RATE = rate
	}
	if config.API_BASE == "" {
		return nil, fmt.Errorf("API_BASE is required")
	}

	return config, nil
}

// JournalDSN builds the postgres DSN for the local transaction journal.
func (c *Config) JournalDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
}
