// Package maintenance keeps the run database tidy when the same videos are
// analyzed repeatedly.
package maintenance

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/cognicore/kcx/pkg/kcx/store"
)

// Pruner deletes superseded runs: for every video URL only the newest Keep
// runs survive.
type Pruner struct {
	Store  store.Store
	Keep   int
	DryRun bool
	Logger *slog.Logger
}

// Result summarizes a prune.
type Result struct {
	Processed int
	Removed   int
	Errors    int
	// Removable lists the runs selected for deletion, oldest first per URL.
	Removable []string
}

// Prune walks every stored run and removes the superseded ones. Individual
// delete failures are counted, not fatal.
func (p *Pruner) Prune(ctx context.Context) (Result, error) {
	var res Result
	if p.Store == nil || p.Keep < 1 {
		return res, errors.New("pruner: invalid configuration")
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runs, err := p.Store.AllRuns(ctx)
	if err != nil {
		return res, err
	}
	res.Processed = len(runs)

	byURL := make(map[string][]store.Run)
	var urls []string
	for _, r := range runs {
		if _, ok := byURL[r.URL]; !ok {
			urls = append(urls, r.URL)
		}
		byURL[r.URL] = append(byURL[r.URL], r)
	}
	sort.Strings(urls)

	for _, url := range urls {
		group := byURL[url]
		if len(group) <= p.Keep {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if !group[i].CreatedAt.Equal(group[j].CreatedAt) {
				return group[i].CreatedAt.Before(group[j].CreatedAt)
			}
			return group[i].ID < group[j].ID
		})
		for _, r := range group[:len(group)-p.Keep] {
			res.Removable = append(res.Removable, r.ID)
			if p.DryRun {
				continue
			}
			if err := p.Store.DeleteRun(ctx, r.ID); err != nil {
				logger.Warn("delete run failed",
					slog.String("run", r.ID),
					slog.String("error", err.Error()))
				res.Errors++
				continue
			}
			res.Removed++
		}
	}
	return res, nil
}
