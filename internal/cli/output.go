package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cognicore/kcx/pkg/kcx/analytics"
	"github.com/cognicore/kcx/pkg/kcx/store"
	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

const timeFormat = "2006-01-02 15:04"

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printComponents(w io.Writer, components []taxonomy.Component) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TOKEN\tVALUE\tAT\tCLASSIFICATION")
	for _, c := range components {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Token, c.Value, c.TimeStamp, c.Classification)
	}
	return tw.Flush()
}

func printRuns(w io.Writer, runs []store.RunSummary, format string) error {
	if format != "text" {
		return printJSON(w, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tLANGUAGE\tCOMPONENTS\tTITLE")
	for _, r := range runs {
		language := r.Language
		if language == "" {
			language = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.CreatedAt.Format(timeFormat), language, r.Components, r.Title)
	}
	return tw.Flush()
}

func printRun(w io.Writer, run store.Run, format string) error {
	if format != "text" {
		return printJSON(w, run)
	}
	fmt.Fprintf(w, "run:       %s\n", run.ID)
	fmt.Fprintf(w, "video:     %s\n", run.URL)
	fmt.Fprintf(w, "title:     %s\n", run.Title)
	fmt.Fprintf(w, "language:  %s\n", run.Language)
	fmt.Fprintf(w, "fragments: %d (%d dropped)\n", run.Fragments, run.Dropped)
	fmt.Fprintf(w, "created:   %s\n\n", run.CreatedAt.Format(timeFormat))
	return printComponents(w, run.Components)
}

type statsReport struct {
	Runs     int64                   `json:"runs"`
	Concepts []analytics.ConceptStat `json:"concepts"`
	Roots    []analytics.RootStat    `json:"roots"`
	Pairs    []analytics.PairStat    `json:"pairs"`
}

func printStats(w io.Writer, rep statsReport, format string) error {
	if format != "text" {
		return printJSON(w, rep)
	}
	fmt.Fprintf(w, "%d runs\n\n", rep.Runs)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONCEPT\tROOT\tRUNS\tRUN%\tMEAN OFFSET\tLANG ENTROPY")
	for _, c := range rep.Concepts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%.1f\t%.2f\n", c.Token, c.Root, c.Runs, c.RunPercent, c.MeanOffset, c.LangEntropy)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.Roots) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ROOT\tCOMPONENTS")
		for _, r := range rep.Roots {
			fmt.Fprintf(tw, "%s\t%d\n", r.Root, r.Count)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(rep.Pairs) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FIRST\tTHEN\tPMI\tSUPPORT\tSEQUENCE")
		for _, p := range rep.Pairs {
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%d\t%.2f\n", p.A, p.B, p.PMI, p.Support, p.SequenceScore)
		}
		return tw.Flush()
	}
	return nil
}

func printSightings(w io.Writer, token string, sightings []store.Sighting, format string) error {
	if format != "text" {
		return printJSON(w, sightings)
	}
	if len(sightings) == 0 {
		fmt.Fprintf(w, "%s has not been seen\n", token)
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tTITLE\tLINK")
	for _, s := range sightings {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Offset, s.Title, s.TimeStamp)
	}
	return tw.Flush()
}
