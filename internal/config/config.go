package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding option is unset.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxChars    = 30000
	DefaultMaxCharsCLI = 120000
)

// Config carries every recognized option as an explicit value so the
// pipeline never reads the process environment past this point.
type Config struct {
	// Remote LLM endpoint.
	APIKey     string
	BaseURL    string
	Model      string
	Fallback   string
	Candidates string

	// Gemini backend, used when a candidate model id has a "gemini-" prefix.
	GeminiAPIKey string

	// Repository snapshot budget in characters.
	MaxContextChars int

	// Issue tracker side.
	GitHubToken string
	EventPath   string
}

// Getenv abstracts os.Getenv so Load stays testable without mutating
// the process environment.
type Getenv func(key string) string

// Load reads a .env file if present, then materializes the Config from
// the given lookup function. A malformed MAX_CONTEXT_CHARS is an error
// rather than a silent fallback, so a typo'd budget cannot go unnoticed.
func Load(getenv Getenv) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIKey:          strings.TrimSpace(getenv("OPENAI_API_KEY")),
		BaseURL:         strings.TrimSpace(getenv("OPENAI_BASE_URL")),
		Model:           strings.TrimSpace(getenv("OPENAI_MODEL")),
		Fallback:        strings.TrimSpace(getenv("OPENAI_FALLBACK_MODEL")),
		Candidates:      strings.TrimSpace(getenv("OPENAI_MODEL_CANDIDATES")),
		GeminiAPIKey:    strings.TrimSpace(getenv("GEMINI_API_KEY")),
		MaxContextChars: DefaultMaxChars,
		GitHubToken:     strings.TrimSpace(getenv("GITHUB_TOKEN")),
		EventPath:       strings.TrimSpace(getenv("GITHUB_EVENT_PATH")),
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if raw := strings.TrimSpace(getenv("MAX_CONTEXT_CHARS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_CONTEXT_CHARS: invalid value %q, want a positive integer", raw)
		}
		cfg.MaxContextChars = n
	}
	return cfg, nil
}

// ValidateForIssueRun checks the options the CI entrypoint cannot run without.
func (c Config) ValidateForIssueRun() error {
	var missing []string
	if c.EventPath == "" {
		missing = append(missing, "GITHUB_EVENT_PATH")
	}
	if c.GitHubToken == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if c.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateForAsk checks the options the local CLI cannot run without.
func (c Config) ValidateForAsk() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set; add it to your environment or .env file")
	}
	return nil
}
