package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Chat      ChatConfig      `yaml:"chat"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Seed      SeedConfig      `yaml:"seed"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// LLMConfig contains OpenAI-compatible provider settings.
type LLMConfig struct {
	APIKey         string  `yaml:"apiKey"`
	BaseURL        string  `yaml:"baseUrl"`
	Model          string  `yaml:"model"`
	EmbeddingModel string  `yaml:"embeddingModel"`
	Temperature    float32 `yaml:"temperature"`
}

// ChatConfig controls the conversation router.
type ChatConfig struct {
	Tenant          string      `yaml:"tenant"`
	Persona         string      `yaml:"persona"`
	MaxResponseLen  int         `yaml:"maxResponseLen"`
	FAQLimit        int         `yaml:"faqLimit"`
	EstimateLimit   int         `yaml:"estimateLimit"`
	MaxPromptTokens int         `yaml:"maxPromptTokens"`
	Cache           CacheConfig `yaml:"cache"`
}

// CacheConfig drives the optional answer cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr"`
	TTL     time.Duration `yaml:"ttl"`
	Prefix  string        `yaml:"prefix"`
}

// RetrievalConfig selects and configures the retrieval provider. Weaviate is
// used when its base URL is set, otherwise Postgres when a DSN is set,
// otherwise the in-memory store.
type RetrievalConfig struct {
	Weaviate WeaviateConfig `yaml:"weaviate"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// WeaviateConfig contains the vector database connection settings.
type WeaviateConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	APIKey  string        `yaml:"apiKey"`
	Timeout time.Duration `yaml:"timeout"`
}

// PostgresConfig contains DSN and pooling settings for the pgvector store.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SeedConfig locates the seed corpora.
type SeedConfig struct {
	Dir    string           `yaml:"dir"`
	Bucket SeedBucketConfig `yaml:"bucket"`
}

// SeedBucketConfig points at an S3-compatible bucket holding the corpora.
// Used when Endpoint is set; otherwise the local directory is read.
type SeedBucketConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		cfg.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("CHAT_TENANT"); v != "" {
		cfg.Chat.Tenant = v
	}
	if v := os.Getenv("CHAT_PERSONA"); v != "" {
		cfg.Chat.Persona = v
	}
	if v := os.Getenv("CHAT_MAX_RESPONSE_LEN"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Chat.MaxResponseLen = parsed
		}
	}
	if v := os.Getenv("CHAT_FAQ_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Chat.FAQLimit = parsed
		}
	}
	if v := os.Getenv("CHAT_ESTIMATE_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Chat.EstimateLimit = parsed
		}
	}
	if v := os.Getenv("CHAT_MAX_PROMPT_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Chat.MaxPromptTokens = parsed
		}
	}
	if v := os.Getenv("CHAT_CACHE_ENABLED"); v != "" {
		cfg.Chat.Cache.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CHAT_CACHE_ADDR"); v != "" {
		cfg.Chat.Cache.Addr = v
	}
	if v := os.Getenv("CHAT_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Chat.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("WEAVIATE_BASE_URL"); v != "" {
		cfg.Retrieval.Weaviate.BaseURL = v
	}
	if v := os.Getenv("WEAVIATE_API_KEY"); v != "" {
		cfg.Retrieval.Weaviate.APIKey = v
	}
	if v := os.Getenv("WEAVIATE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Retrieval.Weaviate.Timeout = parsed
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Retrieval.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Retrieval.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Retrieval.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("SEED_DIR"); v != "" {
		cfg.Seed.Dir = v
	}
	if v := os.Getenv("SEED_BUCKET_ENDPOINT"); v != "" {
		cfg.Seed.Bucket.Endpoint = v
	}
	if v := os.Getenv("SEED_BUCKET_ACCESS_KEY"); v != "" {
		cfg.Seed.Bucket.AccessKey = v
	}
	if v := os.Getenv("SEED_BUCKET_SECRET_KEY"); v != "" {
		cfg.Seed.Bucket.SecretKey = v
	}
	if v := os.Getenv("SEED_BUCKET_NAME"); v != "" {
		cfg.Seed.Bucket.Bucket = v
	}
	if v := os.Getenv("SEED_BUCKET_PREFIX"); v != "" {
		cfg.Seed.Bucket.Prefix = v
	}
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		LLM: LLMConfig{
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			Temperature:    0.2,
		},
		Chat: ChatConfig{
			Tenant: "peachstate",
			Persona: "You are a helpful customer service representative for Peach State Electric, " +
				"a trusted electrical contractor in Atlanta.",
			MaxResponseLen:  800,
			FAQLimit:        3,
			EstimateLimit:   3,
			MaxPromptTokens: 3000,
			Cache: CacheConfig{
				Enabled: false,
				TTL:     6 * time.Hour,
				Prefix:  "chat",
			},
		},
		Retrieval: RetrievalConfig{
			Weaviate: WeaviateConfig{
				BaseURL: "http://localhost:8081",
				Timeout: 15 * time.Second,
			},
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Seed: SeedConfig{
			Dir: "configs/seed",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if strings.TrimSpace(c.LLM.EmbeddingModel) == "" {
		return errors.New("llm.embeddingModel cannot be empty")
	}
	if strings.TrimSpace(c.Chat.Tenant) == "" {
		return errors.New("chat.tenant cannot be empty")
	}
	if strings.TrimSpace(c.Chat.Persona) == "" {
		return errors.New("chat.persona cannot be empty")
	}
	if c.Chat.MaxResponseLen <= 0 {
		return errors.New("chat.maxResponseLen must be positive")
	}
	if c.Chat.FAQLimit <= 0 {
		return errors.New("chat.faqLimit must be positive")
	}
	if c.Chat.EstimateLimit <= 0 {
		return errors.New("chat.estimateLimit must be positive")
	}
	if c.Chat.MaxPromptTokens < 0 {
		return errors.New("chat.maxPromptTokens cannot be negative")
	}
	if c.Chat.Cache.Enabled && strings.TrimSpace(c.Chat.Cache.Addr) == "" {
		return errors.New("chat.cache.addr cannot be empty when the cache is enabled")
	}
	if c.Chat.Cache.TTL < 0 {
		return errors.New("chat.cache.ttl cannot be negative")
	}
	return nil
}
