package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the credentials and settings supplied by the hosting
// environment. Loaded once at process start and passed into constructors;
// nothing in the pipeline reads the environment directly.
type Config struct {
	OratsToken    string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	Port          string
}

// Load reads configuration from the environment, loading a .env file
// first if one exists.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		OratsToken:    os.Getenv("ORATS_TOKEN"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		Port:          os.Getenv("PORT"),
	}

	if cfg.OratsToken == "" {
		return nil, fmt.Errorf("ORATS_TOKEN is required")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg, nil
}
