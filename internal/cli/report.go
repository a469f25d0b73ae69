package cli

import (
	"github.com/spf13/cobra"

	"github.com/cognicore/kcx/pkg/kcx/analytics"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize knowledge components across recorded analyses",
	Long: "Without --concept, prints per-concept coverage, the root category histogram and the " +
		"concept transitions tutorials most often make. With --concept, lists where that concept " +
		"was first shown in each video.",
	Run: runReport,
}

func init() {
	reportCmd.Flags().String("concept", "", "List first sightings of this token, e.g. For or Preprocessor(\"#include\")")
	reportCmd.Flags().Int("min-runs", 1, "Only report concepts seen in at least this many runs")
	reportCmd.Flags().Bool("curriculum", false, "Order concepts by how early tutorials show them")
	reportCmd.Flags().Int("pairs", 20, "Number of concept transitions to show")
	reportCmd.Flags().Float64("min-pmi", 0, "Minimum PMI for concept transitions")
	reportCmd.Flags().IntP("limit", "n", 50, "Maximum sightings to list with --concept")
	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) {
	concept, _ := cmd.Flags().GetString("concept")
	minRuns, _ := cmd.Flags().GetInt("min-runs")
	curriculum, _ := cmd.Flags().GetBool("curriculum")
	pairs, _ := cmd.Flags().GetInt("pairs")
	minPMI, _ := cmd.Flags().GetFloat64("min-pmi")
	limit, _ := cmd.Flags().GetInt("limit")

	ctx := cmd.Context()
	comp := loadComponents()
	engine := openEngine(ctx, comp, engineOptions{persist: true})
	defer engine.Close()

	w := cmd.OutOrStdout()
	if concept != "" {
		sightings, err := engine.Sightings(ctx, concept, limit)
		if err != nil {
			exitErr("first sightings", err)
		}
		if err := printSightings(w, concept, sightings, formatFlag); err != nil {
			exitErr("write output", err)
		}
		return
	}

	stats, err := engine.Stats(ctx)
	if err != nil {
		exitErr("aggregate runs", err)
	}
	if err := printStats(w, buildStats(stats, int64(minRuns), curriculum, pairs, minPMI), formatFlag); err != nil {
		exitErr("write output", err)
	}
}

func buildStats(stats analytics.Stats, minRuns int64, curriculum bool, pairs int, minPMI float64) statsReport {
	rep := statsReport{
		Runs:  stats.TotalRuns,
		Roots: stats.Roots(),
		Pairs: stats.TopPairs(pairs, minPMI),
	}
	if curriculum {
		rep.Concepts = stats.Curriculum(minRuns)
		return rep
	}
	for _, c := range stats.Concepts() {
		if c.Runs >= minRuns {
			rep.Concepts = append(rep.Concepts, c)
		}
	}
	return rep
}
