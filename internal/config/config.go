package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultDesignModel  = "gemini-2.5-flash"
	defaultDiagramModel = "llama-3.3-70b-versatile"
	defaultOutputDir    = "outputs"
)

// Config carries provider credentials and model identifiers, read from the
// environment (optionally seeded from a local .env file).
type Config struct {
	GeminiAPIKey string
	GroqAPIKey   string
	DesignModel  string
	DiagramModel string
	OutputDir    string
}

// Load reads the environment. A .env file in the working directory is
// loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GroqAPIKey:   strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		DesignModel:  firstNonEmpty(strings.TrimSpace(os.Getenv("DESIGN_MODEL")), defaultDesignModel),
		DiagramModel: firstNonEmpty(strings.TrimSpace(os.Getenv("DIAGRAM_MODEL")), defaultDiagramModel),
		OutputDir:    firstNonEmpty(strings.TrimSpace(os.Getenv("ASCIICANVAS_OUTPUT_DIR")), defaultOutputDir),
	}
}

// Validate fails fast when the design provider credential is absent, before
// any remote call is attempted.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("config: GEMINI_API_KEY not found in environment")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
