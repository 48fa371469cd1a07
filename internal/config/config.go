package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"resume-extractor/internal/extractor"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderLocal  = "local"

	defaultPort           = "8080"
	defaultMaxUploadBytes = 10 << 20
)

type S3 struct {
	EndpointURL string
	Region      string
	AccessKey   string
	SecretKey   string
	Bucket      string
}

type Embedding struct {
	Provider string
	APIKey   string
	Model    string
	Dim      int

	// Serialize runs embedding calls one at a time, for rate-limited keys.
	Serialize bool
}

type Extraction struct {
	ResultCount int
	Oversample  int
	Timeout     time.Duration
}

type Config struct {
	Port           string
	MaxUploadBytes int64

	DatabaseURL    string
	ValkeyURL      string
	ValkeyPassword string
	RabbitMQURL    string

	S3         S3
	Embedding  Embedding
	Extraction Extraction
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// a missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	var errs []error

	intVar := func(key string, def int) int {
		raw := getenv(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive integer, got %q", key, raw))
			return def
		}
		return v
	}

	boolVar := func(key string) bool {
		raw := getenv(key)
		if raw == "" {
			return false
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be a boolean, got %q", key, raw))
			return false
		}
		return v
	}

	timeout := extractor.DefaultTimeout
	if raw := getenv("EXTRACT_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("EXTRACT_TIMEOUT must be a positive duration, got %q", raw))
		} else {
			timeout = d
		}
	}

	cfg := &Config{
		Port:           withDefault(getenv("PORT"), defaultPort),
		MaxUploadBytes: int64(intVar("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
		DatabaseURL:    getenv("DATABASE_URL"),
		ValkeyURL:      getenv("VALKEY_URL"),
		ValkeyPassword: getenv("VALKEY_PASSWORD"),
		RabbitMQURL:    getenv("RABBITMQ_URL"),
		S3: S3{
			EndpointURL: getenv("S3_ENDPOINT_URL"),
			Region:      withDefault(getenv("S3_REGION"), "us-east-1"),
			AccessKey:   getenv("S3_ACCESS_KEY"),
			SecretKey:   getenv("S3_SECRET_KEY"),
			Bucket:      getenv("S3_BUCKET_NAME"),
		},
		Embedding: Embedding{
			Provider:  strings.ToLower(withDefault(getenv("EMBEDDING_PROVIDER"), ProviderGemini)),
			APIKey:    getenv("GEMINI_API_KEY"),
			Model:     getenv("EMBEDDING_MODEL"),
			Dim:       intVar("EMBEDDING_DIM", 256),
			Serialize: boolVar("EMBEDDING_SERIALIZE"),
		},
		Extraction: Extraction{
			ResultCount: intVar("RESULT_COUNT", extractor.DefaultResultCount),
			Oversample:  intVar("OVERSAMPLE_FACTOR", extractor.DefaultOversample),
			Timeout:     timeout,
		},
	}

	switch cfg.Embedding.Provider {
	case ProviderGemini, ProviderLocal:
	default:
		errs = append(errs, fmt.Errorf("EMBEDDING_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderLocal, cfg.Embedding.Provider))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateEmbedding checks the settings every binary that extracts needs.
func (c *Config) ValidateEmbedding() error {
	if c.Embedding.Provider == ProviderGemini && c.Embedding.APIKey == "" {
		return errors.New("GEMINI_API_KEY is not set")
	}
	return nil
}

// ValidateServices checks the settings the API and worker need.
func (c *Config) ValidateServices() error {
	var missing []string
	for key, val := range map[string]string{
		"DATABASE_URL":   c.DatabaseURL,
		"VALKEY_URL":     c.ValkeyURL,
		"S3_BUCKET_NAME": c.S3.Bucket,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return c.ValidateEmbedding()
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
