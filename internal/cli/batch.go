package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cognicore/kcx/internal/manifest"
	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.jsonl>",
	Short: "Analyze every video listed in a manifest",
	Long: "Each manifest line is {\"url\": \"...\", \"title\": \"...\", \"fragments\": \"path.jsonl\"}. " +
		"Videos are analyzed one after another and share the language classifier cache.",
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

func init() {
	batchCmd.Flags().Bool("fetch-title", false, "Look up missing titles from the video pages")
	batchCmd.Flags().String("out", "", "Directory for exported documents (default: output.dir from config)")
	batchCmd.Flags().Bool("keep-going", true, "Continue with the next video when one fails")
	RootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) {
	fetchTitle, _ := cmd.Flags().GetBool("fetch-title")
	outDir, _ := cmd.Flags().GetString("out")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	jobs, err := manifest.LoadFromJSONL(args[0], logger)
	if err != nil {
		exitErr("load manifest", err)
	}

	comp := loadComponents()
	engine := openEngine(ctx, comp, engineOptions{
		persist:    true,
		outputDir:  outputDir(comp.Config, outDir),
		fetchTitle: fetchTitle,
	})
	defer engine.Close()

	var done, partial, failed int
jobs:
	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		logger.Info("analyzing", slog.Int("job", i+1), slog.Int("of", len(jobs)), slog.String("url", job.URL))

		f, err := os.Open(job.Fragments)
		if err != nil {
			failed++
			logger.Error("open fragments", slog.String("path", job.Fragments), slog.String("error", err.Error()))
			if !keepGoing {
				break jobs
			}
			continue
		}
		rep, err := engine.AnalyzeReader(ctx, metadata.Video{URL: job.URL, Title: job.Title}, f)
		f.Close()

		switch {
		case err == nil:
			done++
		case errors.Is(err, internalerr.ErrStreamClosed):
			partial++
		default:
			failed++
			logger.Error("analyze", slog.String("url", job.URL), slog.String("error", err.Error()))
			if !keepGoing {
				break jobs
			}
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", rep.RunID, rep.Result.Language.Tag(), job.URL, rep.Result.Registry.Len())
	}

	logger.Info("batch complete",
		slog.Int("jobs", len(jobs)),
		slog.Int("done", done),
		slog.Int("partial", partial),
		slog.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}
