// Package cli implements the kcx CLI commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/kcx/pkg/kcx"
	"github.com/cognicore/kcx/pkg/kcx/config"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/store"
	"github.com/cognicore/kcx/pkg/kcx/store/sqlite"
	"github.com/cognicore/kcx/pkg/kcx/stream"
)

var (
	configPath string
	envFile    string
	dbPath     string
	logLevel   string
	formatFlag string

	logger = slog.Default()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "kcx",
	Short: "Extract knowledge components from programming tutorial videos",
	Long: "kcx reads the text recognized in a tutorial's frames, works out the language being taught, " +
		"and records the first time each language concept appears on screen.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(logLevel)
		slog.SetDefault(logger)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before KCX_* overrides")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $KCX_DB or store.path from config)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func loadComponents() *config.Components {
	comp, err := (&config.Loader{ConfigPath: configPath, EnvFile: envFile, Logger: logger}).Load()
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		comp.Config.Store.Path = dbPath
	}
	return comp
}

func openStore(ctx context.Context, cfg *config.Config) store.Store {
	st, err := sqlite.OpenSQLite(ctx, cfg.Store.Path)
	if err != nil {
		exitErr("open store", err)
	}
	return st
}

type engineOptions struct {
	persist    bool
	outputDir  string
	fetchTitle bool
}

func openEngine(ctx context.Context, comp *config.Components, opts engineOptions) *kcx.Engine {
	var st store.Store
	if opts.persist {
		st = openStore(ctx, comp.Config)
	}
	var titles kcx.TitleFetcher
	if opts.fetchTitle {
		titles = &metadata.TitleFetcher{}
	}
	return kcx.New(kcx.Options{
		Store:       st,
		Coordinator: stream.NewCoordinator(comp.Coordinator),
		Titles:      titles,
		OutputDir:   opts.outputDir,
		Buffer:      comp.Config.Stream.Buffer,
		Logger:      logger,
	})
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
