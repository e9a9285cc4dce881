package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/CoffeeBeansLabs/allocate/internal/search"
)

type Config struct {
	DatabaseURL string
	Port        string

	// Scoring weights, overridable per deployment.
	Weights search.Weights
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	weights := search.DefaultWeights()
	weights.Availability = envInt("WEIGHT_AVAILABILITY", weights.Availability)
	weights.Skill = envInt("WEIGHT_SKILL", weights.Skill)
	weights.Proficiency = envInt("WEIGHT_PROFICIENCY", weights.Proficiency)
	weights.Experience = envInt("WEIGHT_EXPERIENCE", weights.Experience)

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        port,
		Weights:     weights,
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("ignoring non-integer env value")
		return fallback
	}
	return v
}
