package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cognicore/kcx/internal/llm"
	"github.com/cognicore/kcx/pkg/kcx/lang"
	"github.com/cognicore/kcx/pkg/kcx/stream"
)

// Loader loads the configuration and constructs components
type Loader struct {
	ConfigPath string
	EnvFile    string
	Logger     *slog.Logger
}

// Components holds the configuration and what was built from it
type Components struct {
	Config      *Config
	Model       lang.Model
	Classifier  *lang.Classifier
	Coordinator stream.Options
}

// Load reads the file and environment and returns initialized components
func (l *Loader) Load() (*Components, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := Load(l.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(l.EnvFile); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	model := cfg.Model()
	if model == nil {
		logger.Warn("no language model configured; only title and URL hints can resolve the language")
	}
	classifier := lang.NewClassifier(model, cfg.Classifier.CacheSize, logger)

	return &Components{
		Config:     cfg,
		Model:      model,
		Classifier: classifier,
		Coordinator: stream.Options{
			Classifier: classifier,
			Streams:    cfg.Streams,
			Threshold:  cfg.Classifier.Threshold,
			Pause:      cfg.Stream.Pause,
			Logger:     logger,
		},
	}, nil
}

// Model builds the configured language model: the external command when
// set, otherwise the chat endpoint, otherwise nil.
func (c *Config) Model() lang.Model {
	switch {
	case c.Classifier.Command != "":
		return lang.ProcessModel{Path: c.Classifier.Command, Timeout: c.Classifier.Timeout}
	case c.Classifier.LLM.BaseURL != "" && c.Classifier.LLM.Model != "":
		client := &llm.Client{
			BaseURL: c.Classifier.LLM.BaseURL,
			Model:   c.Classifier.LLM.Model,
		}
		if c.Classifier.LLM.APIKeyEnv != "" {
			client.APIKey = os.Getenv(c.Classifier.LLM.APIKeyEnv)
		}
		return client
	}
	return nil
}
