package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cognicore/kcx/pkg/kcx"
	"github.com/cognicore/kcx/pkg/kcx/config"
	"github.com/cognicore/kcx/pkg/kcx/export"
	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/source"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <fragments.jsonl|->",
	Short: "Extract knowledge components from one video's recognized text",
	Long: "Reads one JSON record per line ({\"offset\": 12, \"text\": \"...\"}, or {\"end\": true}) " +
		"and prints the knowledge components found. With --text, every input line is a fragment " +
		"and its line number is the offset.",
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("url", "", "Video URL (required)")
	analyzeCmd.Flags().String("title", "", "Video title")
	analyzeCmd.Flags().Bool("text", false, "Input is plain text, one fragment per line")
	analyzeCmd.Flags().Bool("fetch-title", false, "Look up the title from the video page when --title is empty")
	analyzeCmd.Flags().String("out", "", "Directory for the exported document (default: output.dir from config)")
	analyzeCmd.Flags().Bool("no-store", false, "Do not record the run in the database")
	analyzeCmd.MarkFlagRequired("url")
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	url, _ := cmd.Flags().GetString("url")
	title, _ := cmd.Flags().GetString("title")
	plain, _ := cmd.Flags().GetBool("text")
	fetchTitle, _ := cmd.Flags().GetBool("fetch-title")
	outDir, _ := cmd.Flags().GetString("out")
	noStore, _ := cmd.Flags().GetBool("no-store")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	comp := loadComponents()
	engine := openEngine(ctx, comp, engineOptions{
		persist:    !noStore,
		outputDir:  outputDir(comp.Config, outDir),
		fetchTitle: fetchTitle,
	})
	defer engine.Close()

	in, closeInput, err := openInput(ctx, args[0], plain)
	if err != nil {
		exitErr("open input", err)
	}
	defer closeInput()

	rep, err := engine.AnalyzeReader(ctx, metadata.Video{URL: url, Title: title}, in)
	if err != nil && !errors.Is(err, internalerr.ErrStreamClosed) {
		exitErr("analyze", err)
	}
	if err != nil {
		logger.Warn("fragment stream ended without an end record; result is partial")
	}

	if err := printReport(cmd.OutOrStdout(), rep, formatFlag); err != nil {
		exitErr("write output", err)
	}
}

// openInput opens path, or stdin for "-". With plain set, lines are turned
// into fragment records.
func openInput(ctx context.Context, path string, plain bool) (io.Reader, func(), error) {
	var r io.Reader = os.Stdin
	closeFn := func() {}
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		r = f
		closeFn = func() { f.Close() }
	}
	if plain {
		texts := source.Texts(ctx, r)
		closeFile := closeFn
		closeFn = func() {
			texts.Close()
			closeFile()
		}
		r = texts
	}
	return r, closeFn, nil
}

func outputDir(cfg *config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.Output.Dir
}

func printReport(w io.Writer, rep kcx.Report, format string) error {
	doc := export.FromResult(rep.Result)
	if format != "text" {
		return export.Encode(w, doc)
	}
	fmt.Fprintf(w, "run:       %s\n", rep.RunID)
	fmt.Fprintf(w, "video:     %s\n", doc.Video.URL)
	if doc.Video.Title != "" {
		fmt.Fprintf(w, "title:     %s\n", doc.Video.Title)
	}
	language := "unresolved"
	if doc.Language != nil {
		language = *doc.Language
	}
	fmt.Fprintf(w, "language:  %s\n", language)
	fmt.Fprintf(w, "fragments: %d (%d before language was known)\n", rep.Result.Fragments, rep.Result.Dropped)
	if rep.Path != "" {
		fmt.Fprintf(w, "exported:  %s\n", rep.Path)
	}
	fmt.Fprintln(w)
	return printComponents(w, doc.KnowledgeComponents)
}
