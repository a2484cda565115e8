package cli

import (
	"fmt"
	"io"

	"github.com/rdawebb/fixture-fetcher/internal/usecase"
)

func printBuildResult(w io.Writer, result usecase.BuildResult, summarise bool) {
	for _, build := range result.Successful {
		fmt.Fprintf(w, "✓ %s %s: %d fixtures -> %s\n", build.Team, build.CompetitionCode, build.Written, build.OutputPath)
		if summarise {
			printSummary(w, build)
		}
	}
	for _, failure := range result.Failed {
		fmt.Fprintf(w, "✗ %s\n", failure.Error())
	}
	fmt.Fprintf(w, "\n%d calendars built, %d failed (%d teams)\n", len(result.Successful), len(result.Failed), result.Total)
}

func printSummary(w io.Writer, build usecase.CompetitionBuild) {
	e := build.Enrichment
	fmt.Fprintf(w, "    fixtures: %d scheduled, %d in calendar\n", build.Fixtures, build.Written)
	fmt.Fprintf(w, "    tv: %d -> %d (%d overrides applied, %d replaced)\n", e.TVBefore, e.TVAfter, e.TVOverridesApplied, e.TVReplaced)
	if build.Changes.IsZero() {
		fmt.Fprintln(w, "    changes: none")
		return
	}
	c := build.Changes
	fmt.Fprintf(w, "    changes: %d time, %d venue, %d tv, %d status\n", c.Time, c.Venue, c.TV, c.Status)
}
