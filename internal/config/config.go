package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Provider selection
	Provider string

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI-compatible Responses API
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

// MissingEnvError reports a required environment variable that is unset.
type MissingEnvError struct {
	Key string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Key)
}

// Load reads the process environment once. Only the credential of the
// selected provider is required.
func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "5000"),
		Env:           getEnvOrDefault("ENV", "development"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		Provider:      strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderGemini)),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
	}

	var err error
	switch cfg.Provider {
	case ProviderGemini:
		cfg.GeminiAPIKey, err = requireEnv("GEMINI_API_KEY")
	case ProviderOpenAI:
		cfg.OpenAIAPIKey, err = requireEnv("OPENAI_API_KEY")
	default:
		err = fmt.Errorf("unsupported AI_PROVIDER %q (want %q or %q)", cfg.Provider, ProviderGemini, ProviderOpenAI)
	}
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return "", &MissingEnvError{Key: key}
	}
	return val, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}
