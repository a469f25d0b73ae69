package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/lang"
	"github.com/cognicore/kcx/pkg/kcx/parser"
	"github.com/cognicore/kcx/pkg/kcx/stream"
)

// Config is the kcx configuration file
type Config struct {
	Classifier Classifier         `yaml:"classifier"`
	Stream     Stream             `yaml:"stream"`
	Streams    parser.StreamNames `yaml:"streams"`
	Store      Store              `yaml:"store"`
	Output     Output             `yaml:"output"`
}

// Classifier configures language resolution
type Classifier struct {
	// Command is an executable taking the snippet as its only argument.
	Command   string        `yaml:"command"`
	Timeout   time.Duration `yaml:"timeout"`
	Threshold int           `yaml:"threshold"`
	CacheSize int           `yaml:"cache_size"`
	LLM       LLM           `yaml:"llm"`
}

// LLM configures the chat-completion model, used when no command is set
type LLM struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// Stream configures the consumer loop
type Stream struct {
	Pause  time.Duration `yaml:"pause"`
	Buffer int           `yaml:"buffer"`
}

// Store configures run persistence
type Store struct {
	Path string `yaml:"path"`
}

// Output configures JSON export
type Output struct {
	Dir string `yaml:"dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Classifier: Classifier{
			Timeout:   30 * time.Second,
			Threshold: stream.DefaultThreshold,
			CacheSize: lang.DefaultCacheSize,
			LLM:       LLM{APIKeyEnv: "OPENAI_API_KEY"},
		},
		Stream:  Stream{Pause: stream.DefaultPause, Buffer: 64},
		Streams: parser.DefaultStreamNames(),
		Store:   Store{Path: "kcx.db"},
		Output:  Output{Dir: "knowledge_components"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the components cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Classifier.Threshold <= 0:
		return fmt.Errorf("classifier.threshold must be positive: %w", internalerr.ErrInvalidConfig)
	case c.Classifier.CacheSize < 0:
		return fmt.Errorf("classifier.cache_size must not be negative: %w", internalerr.ErrInvalidConfig)
	case c.Classifier.Timeout < 0:
		return fmt.Errorf("classifier.timeout must not be negative: %w", internalerr.ErrInvalidConfig)
	case c.Stream.Pause < 0:
		return fmt.Errorf("stream.pause must not be negative: %w", internalerr.ErrInvalidConfig)
	case c.Stream.Buffer < 0:
		return fmt.Errorf("stream.buffer must not be negative: %w", internalerr.ErrInvalidConfig)
	}
	return nil
}

// Environment overrides, applied after the file.
const (
	EnvModelCommand = "KCX_MODEL_COMMAND"
	EnvLLMBaseURL   = "KCX_LLM_BASE_URL"
	EnvLLMModel     = "KCX_LLM_MODEL"
	EnvThreshold    = "KCX_THRESHOLD"
	EnvPause        = "KCX_PAUSE"
	EnvDB           = "KCX_DB"
	EnvOutputDir    = "KCX_OUTPUT_DIR"
)

// ApplyEnv loads envFile (if it exists) into the process environment and
// applies KCX_* overrides. Variables already set win over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if v := os.Getenv(EnvModelCommand); v != "" {
		c.Classifier.Command = v
	}
	if v := os.Getenv(EnvLLMBaseURL); v != "" {
		c.Classifier.LLM.BaseURL = v
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		c.Classifier.LLM.Model = v
	}
	if v := os.Getenv(EnvThreshold); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvThreshold, v, internalerr.ErrInvalidConfig)
		}
		c.Classifier.Threshold = n
	}
	if v := os.Getenv(EnvPause); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvPause, v, internalerr.ErrInvalidConfig)
		}
		c.Stream.Pause = d
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Output.Dir = v
	}
	return c.Validate()
}
