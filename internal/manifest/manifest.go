package manifest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Job is one video of a batch: where it lives and where its recorded
// fragments are. Title may be empty; the CLI can fetch it.
type Job struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Fragments string `json:"fragments"`
}

// LoadFromJSONL loads jobs from a JSONL manifest. Relative fragment paths are
// resolved against the manifest's directory. Malformed lines and jobs
// without a URL or fragment file are skipped with a warning.
func LoadFromJSONL(path string, logger *slog.Logger) ([]Job, error) {
	if logger == nil {
		logger = slog.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	base := filepath.Dir(path)
	var jobs []Job
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(line), &job); err != nil {
			logger.Warn("skipping malformed job",
				slog.String("manifest", path),
				slog.Int("line", i+1),
				slog.String("error", err.Error()))
			continue
		}
		if job.URL == "" || job.Fragments == "" {
			logger.Warn("skipping incomplete job",
				slog.String("manifest", path),
				slog.Int("line", i+1))
			continue
		}
		if !filepath.IsAbs(job.Fragments) {
			job.Fragments = filepath.Join(base, job.Fragments)
		}
		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("no valid jobs found in %s", path)
	}

	return jobs, nil
}
