package lang

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of memoized model answers.
const DefaultCacheSize = 256

// Model is the black-box language classifier. It receives one code-like
// snippet and answers with a label (see LabelCCpp, LabelJava, LabelPython).
type Model interface {
	Label(ctx context.Context, snippet string) (string, error)
}

// ProcessModel runs an external executable with the snippet as its only
// argument and returns its stdout.
type ProcessModel struct {
	Path    string
	Timeout time.Duration
}

// Label implements Model.
func (m ProcessModel) Label(ctx context.Context, snippet string) (string, error) {
	if m.Path == "" {
		return "", fmt.Errorf("process model: executable path required")
	}
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, m.Path, snippet)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run %s: %w (stderr: %s)", m.Path, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.String(), nil
}

// Classifier combines hint matching with a model fallback. Model answers are
// memoized per snippet so a batch of analyses does not pay twice for the
// same OCR text.
type Classifier struct {
	model  Model
	cache  *lru.Cache[string, Language]
	logger *slog.Logger
}

// NewClassifier creates a classifier around model. A nil model makes every
// model classification unresolved. cacheSize <= 0 uses DefaultCacheSize.
func NewClassifier(model Model, cacheSize int, logger *slog.Logger) *Classifier {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.New[string, Language](cacheSize)
	if err != nil {
		// only fails for non-positive sizes
		panic(err)
	}
	return &Classifier{model: model, cache: cache, logger: logger}
}

// ClassifyByHint implements the hint half of the classifier.
func (c *Classifier) ClassifyByHint(hint string) (Language, bool) {
	return ClassifyByHint(hint)
}

// ClassifyByModel asks the model for a label. Failures and unknown labels
// are reported as unresolved; the caller decides whether to ask again.
func (c *Classifier) ClassifyByModel(ctx context.Context, snippet string) (Language, bool) {
	if cached, ok := c.cache.Get(snippet); ok {
		c.logger.Debug("model classification cache hit",
			slog.String("language", cached.String()))
		return cached, cached != Unknown
	}
	if c.model == nil {
		c.logger.Warn("model classification skipped",
			slog.String("reason", ErrNoModel.Error()))
		return Unknown, false
	}

	label, err := c.model.Label(ctx, snippet)
	if err != nil {
		c.logger.Warn("model classification failed", slog.String("error", err.Error()))
		return Unknown, false
	}

	language, ok := LanguageFromLabel(label)
	if !ok {
		c.logger.Info("model returned unrecognized label", slog.String("label", label))
	}
	c.cache.Add(snippet, language)
	return language, ok
}
