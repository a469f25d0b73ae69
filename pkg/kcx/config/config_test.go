package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/kcx/internal/llm"
	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/lang"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Classifier.Threshold != 8 {
		t.Errorf("Expected threshold 8, got %d", cfg.Classifier.Threshold)
	}
	if cfg.Stream.Pause != 500*time.Millisecond {
		t.Errorf("Expected pause 500ms, got %s", cfg.Stream.Pause)
	}
	if len(cfg.Streams.Output) != 3 || cfg.Streams.Input[0] != "cin" {
		t.Errorf("Unexpected default streams: %+v", cfg.Streams)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeFile(t, "kcx.yaml", `classifier:
  command: /usr/local/bin/guesslang
  timeout: 5s
  threshold: 12
stream:
  pause: 0s
streams:
  output: [cout, log]
store:
  path: /tmp/runs.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Classifier.Command != "/usr/local/bin/guesslang" {
		t.Errorf("Unexpected command %q", cfg.Classifier.Command)
	}
	if cfg.Classifier.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %s", cfg.Classifier.Timeout)
	}
	if cfg.Classifier.Threshold != 12 {
		t.Errorf("Expected threshold 12, got %d", cfg.Classifier.Threshold)
	}
	if cfg.Classifier.CacheSize != lang.DefaultCacheSize {
		t.Errorf("Cache size should keep its default, got %d", cfg.Classifier.CacheSize)
	}
	if cfg.Stream.Pause != 0 {
		t.Errorf("Expected pause disabled, got %s", cfg.Stream.Pause)
	}
	if len(cfg.Streams.Output) != 2 || cfg.Streams.Output[1] != "log" {
		t.Errorf("Unexpected output streams %v", cfg.Streams.Output)
	}
	if len(cfg.Streams.Input) != 1 {
		t.Errorf("Input streams should keep defaults, got %v", cfg.Streams.Input)
	}
	if cfg.Output.Dir != "knowledge_components" {
		t.Errorf("Output dir should keep default, got %q", cfg.Output.Dir)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Empty path should return defaults: %v", err)
	}
	if cfg.Store.Path != "kcx.db" {
		t.Errorf("Unexpected store path %q", cfg.Store.Path)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "classifier:\n  threshold: 0\n")
	if _, err := Load(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}

	path = writeFile(t, "broken.yaml", "classifier: [\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Should error on malformed YAML")
	}

	if _, err := Load("/nonexistent/kcx.yaml"); err == nil {
		t.Fatal("Should error on missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvThreshold, "20")
	t.Setenv(EnvPause, "1s")
	t.Setenv(EnvDB, "/data/kcx.db")

	cfg := Default()
	if err := cfg.ApplyEnv(""); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Classifier.Threshold != 20 {
		t.Errorf("Expected threshold 20, got %d", cfg.Classifier.Threshold)
	}
	if cfg.Stream.Pause != time.Second {
		t.Errorf("Expected 1s pause, got %s", cfg.Stream.Pause)
	}
	if cfg.Store.Path != "/data/kcx.db" {
		t.Errorf("Unexpected store path %q", cfg.Store.Path)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv(EnvThreshold, "many")
	if err := Default().ApplyEnv(""); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestApplyEnvDotEnvFile(t *testing.T) {
	os.Unsetenv(EnvLLMModel)
	t.Cleanup(func() { os.Unsetenv(EnvLLMModel) })
	path := writeFile(t, ".env", EnvLLMModel+"=gpt-test\n")

	cfg := Default()
	if err := cfg.ApplyEnv(path); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Classifier.LLM.Model != "gpt-test" {
		t.Errorf("Expected model from .env, got %q", cfg.Classifier.LLM.Model)
	}
}

func TestApplyEnvMissingDotEnv(t *testing.T) {
	if err := Default().ApplyEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("Missing .env should be ignored: %v", err)
	}
}

func TestModelSelection(t *testing.T) {
	cfg := Default()
	if cfg.Model() != nil {
		t.Error("No model should be configured by default")
	}

	cfg.Classifier.LLM = LLM{BaseURL: "https://api.test/v1/chat/completions", Model: "gpt-test"}
	if _, ok := cfg.Model().(*llm.Client); !ok {
		t.Errorf("Expected llm client, got %T", cfg.Model())
	}

	cfg.Classifier.Command = "/bin/guess"
	pm, ok := cfg.Model().(lang.ProcessModel)
	if !ok {
		t.Fatalf("Command should take precedence, got %T", cfg.Model())
	}
	if pm.Path != "/bin/guess" || pm.Timeout != 30*time.Second {
		t.Errorf("Unexpected process model %+v", pm)
	}
}

func TestLoader(t *testing.T) {
	path := writeFile(t, "kcx.yaml", "classifier:\n  threshold: 4\nstream:\n  pause: 0s\n")

	comp, err := (&Loader{ConfigPath: path}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Classifier == nil {
		t.Fatal("Should build a classifier")
	}
	if comp.Coordinator.Threshold != 4 {
		t.Errorf("Expected coordinator threshold 4, got %d", comp.Coordinator.Threshold)
	}
	if comp.Coordinator.Classifier == nil {
		t.Error("Coordinator should share the classifier")
	}
}

func TestLoaderNonExistentConfig(t *testing.T) {
	if _, err := (&Loader{ConfigPath: "/nonexistent/kcx.yaml"}).Load(); err == nil {
		t.Error("Should error on nonexistent config")
	}
}
