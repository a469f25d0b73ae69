package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded analyses, newest first",
	Run:   runRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded analysis with its knowledge components",
	Args:  cobra.ExactArgs(1),
	Run:   runRunsShow,
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete superseded analyses, keeping the newest per video",
	Run:   runRunsPrune,
}

func init() {
	runsCmd.Flags().IntP("limit", "n", 20, "Maximum runs to list")
	runsPruneCmd.Flags().Int("keep", 1, "Runs to keep per video")
	runsPruneCmd.Flags().Bool("dry-run", false, "Only list the runs that would be deleted")
	runsCmd.AddCommand(runsShowCmd, runsPruneCmd)
	RootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	ctx := cmd.Context()
	comp := loadComponents()
	engine := openEngine(ctx, comp, engineOptions{persist: true})
	defer engine.Close()

	runs, err := engine.Runs(ctx, limit)
	if err != nil {
		exitErr("list runs", err)
	}
	if err := printRuns(cmd.OutOrStdout(), runs, formatFlag); err != nil {
		exitErr("write output", err)
	}
}

func runRunsShow(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	comp := loadComponents()
	engine := openEngine(ctx, comp, engineOptions{persist: true})
	defer engine.Close()

	run, err := engine.Run(ctx, args[0])
	if err != nil {
		exitErr("get run", err)
	}
	if err := printRun(cmd.OutOrStdout(), run, formatFlag); err != nil {
		exitErr("write output", err)
	}
}

func runRunsPrune(cmd *cobra.Command, args []string) {
	keep, _ := cmd.Flags().GetInt("keep")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ctx := cmd.Context()
	comp := loadComponents()
	engine := openEngine(ctx, comp, engineOptions{persist: true})
	defer engine.Close()

	res, err := engine.Prune(ctx, keep, dryRun)
	if err != nil {
		exitErr("prune runs", err)
	}

	w := cmd.OutOrStdout()
	if formatFlag != "text" {
		if err := printJSON(w, res); err != nil {
			exitErr("write output", err)
		}
		return
	}
	for _, id := range res.Removable {
		fmt.Fprintln(w, id)
	}
	if dryRun {
		fmt.Fprintf(w, "%d of %d runs would be deleted\n", len(res.Removable), res.Processed)
		return
	}
	fmt.Fprintf(w, "deleted %d of %d runs (%d errors)\n", res.Removed, res.Processed, res.Errors)
}
