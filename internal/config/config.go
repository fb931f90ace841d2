// ABOUTME: Centralized configuration for the Leilan retrieval engine
// ABOUTME: Applies defaults, then an optional YAML file, then environment variables
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRemoteBaseURL is the published dataset carrying the corpus artifacts
	DefaultRemoteBaseURL = "https://huggingface.co/datasets/mwatkins1970/leilan3-embeddings/resolve/main"
	// DefaultEmbeddingModel must match the model the artifacts were embedded with
	DefaultEmbeddingModel = "sentence-transformers/all-mpnet-base-v2"
	// DefaultVectorDimension is the output width of all-mpnet-base-v2
	DefaultVectorDimension = 768
)

// Config holds all configuration for the retrieval engine and its clients
type Config struct {
	// Corpus settings
	EmbeddingsDir string
	RemoteBaseURL string

	// Embedding provider settings (any OpenAI-compatible endpoint)
	EmbeddingsBaseURL string
	EmbeddingsAPIKey  string
	EmbeddingModel    string
	VectorDimension   int

	// Chat settings for downstream generation
	ChatBaseURL string
	ChatAPIKey  string
	Aspect      string
	Aspects     map[string]string
	MaxTokens   int
	Temperature float64

	// Request settings
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Retrieval settings
	Aggregation      string
	GPTResults       int
	OpusResults      int
	EssayResults     int
	InterviewResults int
	TemplateFile     string
}

// fileConfig mirrors the YAML config file layout
type fileConfig struct {
	EmbeddingsDir string `yaml:"embeddings_dir"`
	RemoteBaseURL string `yaml:"remote_base_url"`
	Embeddings    struct {
		BaseURL   string `yaml:"base_url"`
		Model     string `yaml:"model"`
		Dimension int    `yaml:"dimension"`
	} `yaml:"embeddings"`
	Chat struct {
		BaseURL     string            `yaml:"base_url"`
		Aspect      string            `yaml:"aspect"`
		Aspects     map[string]string `yaml:"aspects"`
		MaxTokens   int               `yaml:"max_tokens"`
		Temperature *float64          `yaml:"temperature"`
	} `yaml:"chat"`
	Retrieval struct {
		Aggregation      string `yaml:"aggregation"`
		GPTResults       int    `yaml:"gpt_results"`
		OpusResults      int    `yaml:"opus_results"`
		EssayResults     int    `yaml:"essay_results"`
		InterviewResults int    `yaml:"interview_results"`
		TemplateFile     string `yaml:"template_file"`
	} `yaml:"retrieval"`
}

// Load reads configuration from an optional YAML file and the environment.
// An empty path checks ./leilan.yaml and ~/.config/leilan/config.yaml; an
// explicit path must exist. Environment variables win over file values.
func Load(path string) (*Config, error) {
	cfg := &Config{
		EmbeddingsDir:     "embeddings",
		RemoteBaseURL:     DefaultRemoteBaseURL,
		EmbeddingsBaseURL: "http://localhost:8080/v1",
		EmbeddingModel:    DefaultEmbeddingModel,
		VectorDimension:   DefaultVectorDimension,
		ChatBaseURL:       "https://api.anthropic.com/v1",
		Aspect:            "mother",
		Aspects: map[string]string{
			"mother": "claude-3-opus-20240229",
			"crone":  "claude-3-sonnet-20240229",
			"maiden": "claude-3-haiku-20240307",
		},
		MaxTokens:        500,
		Temperature:      0.8,
		Timeout:          30 * time.Second,
		MaxRetries:       3,
		RetryDelay:       2 * time.Second,
		Aggregation:      "max",
		GPTResults:       10,
		OpusResults:      10,
		EssayResults:     5,
		InterviewResults: 5,
	}

	if err := cfg.applyFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	return cfg, cfg.Validate()
}

func (c *Config) applyFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = findDefaultFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return fmt.Errorf("reading config file: %w", err)
		}
		return nil
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	setString(&c.EmbeddingsDir, fc.EmbeddingsDir)
	setString(&c.RemoteBaseURL, fc.RemoteBaseURL)
	setString(&c.EmbeddingsBaseURL, fc.Embeddings.BaseURL)
	setString(&c.EmbeddingModel, fc.Embeddings.Model)
	setInt(&c.VectorDimension, fc.Embeddings.Dimension)
	setString(&c.ChatBaseURL, fc.Chat.BaseURL)
	setString(&c.Aspect, fc.Chat.Aspect)
	setInt(&c.MaxTokens, fc.Chat.MaxTokens)
	if fc.Chat.Temperature != nil {
		c.Temperature = *fc.Chat.Temperature
	}
	for aspect, model := range fc.Chat.Aspects {
		c.Aspects[aspect] = model
	}
	setString(&c.Aggregation, fc.Retrieval.Aggregation)
	setInt(&c.GPTResults, fc.Retrieval.GPTResults)
	setInt(&c.OpusResults, fc.Retrieval.OpusResults)
	setInt(&c.EssayResults, fc.Retrieval.EssayResults)
	setInt(&c.InterviewResults, fc.Retrieval.InterviewResults)
	setString(&c.TemplateFile, fc.Retrieval.TemplateFile)

	return nil
}

func (c *Config) applyEnv() {
	c.EmbeddingsDir = getEnv("LEILAN_EMBEDDINGS_DIR", c.EmbeddingsDir)
	c.RemoteBaseURL = getEnv("LEILAN_REMOTE_BASE_URL", c.RemoteBaseURL)
	c.EmbeddingsBaseURL = getEnv("LEILAN_EMBEDDINGS_BASE_URL", c.EmbeddingsBaseURL)
	c.EmbeddingsAPIKey = os.Getenv("EMBEDDINGS_API_KEY")
	c.EmbeddingModel = getEnv("LEILAN_EMBEDDING_MODEL", c.EmbeddingModel)
	c.VectorDimension = getEnvInt("LEILAN_VECTOR_DIMENSION", c.VectorDimension)
	c.ChatBaseURL = getEnv("LEILAN_CHAT_BASE_URL", c.ChatBaseURL)
	c.ChatAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	c.Aspect = getEnv("LEILAN_ASPECT", c.Aspect)
	c.MaxTokens = getEnvInt("LEILAN_MAX_TOKENS", c.MaxTokens)
	c.Temperature = getEnvFloat("LEILAN_TEMPERATURE", c.Temperature)
	c.Timeout = getEnvDuration("LEILAN_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("LEILAN_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("LEILAN_RETRY_DELAY", c.RetryDelay)
	c.Aggregation = getEnv("LEILAN_AGGREGATION", c.Aggregation)
	c.GPTResults = getEnvInt("LEILAN_GPT_RESULTS", c.GPTResults)
	c.OpusResults = getEnvInt("LEILAN_OPUS_RESULTS", c.OpusResults)
	c.EssayResults = getEnvInt("LEILAN_ESSAY_RESULTS", c.EssayResults)
	c.InterviewResults = getEnvInt("LEILAN_INTERVIEW_RESULTS", c.InterviewResults)
	c.TemplateFile = getEnv("LEILAN_TEMPLATE_FILE", c.TemplateFile)
}

func (c *Config) Validate() error {
	if c.Aggregation != "max" && c.Aggregation != "mean" {
		return fmt.Errorf("LEILAN_AGGREGATION must be max or mean, got %q", c.Aggregation)
	}
	if c.GPTResults <= 0 || c.OpusResults <= 0 || c.EssayResults <= 0 || c.InterviewResults <= 0 {
		return fmt.Errorf("per-category result caps must be positive, got gpt=%d opus=%d essay=%d interview=%d",
			c.GPTResults, c.OpusResults, c.EssayResults, c.InterviewResults)
	}
	if c.VectorDimension < 0 {
		return fmt.Errorf("LEILAN_VECTOR_DIMENSION must be >= 0, got %d", c.VectorDimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("LEILAN_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LEILAN_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("LEILAN_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if _, ok := c.Aspects[c.Aspect]; !ok {
		return fmt.Errorf("LEILAN_ASPECT %q has no model mapping", c.Aspect)
	}
	return nil
}

// ModelForAspect resolves an aspect name to its chat model.
// An empty aspect resolves to the configured default aspect.
func (c *Config) ModelForAspect(aspect string) (string, error) {
	if aspect == "" {
		aspect = c.Aspect
	}
	model, ok := c.Aspects[aspect]
	if !ok {
		return "", fmt.Errorf("unknown aspect %q", aspect)
	}
	return model, nil
}

// findDefaultFile returns the first config file found in the default
// locations, or empty if none exists.
func findDefaultFile() string {
	if _, err := os.Stat("leilan.yaml"); err == nil {
		return "leilan.yaml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".config", "leilan", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// Helper functions
func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
