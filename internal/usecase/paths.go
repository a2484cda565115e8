package usecase

import (
	"path/filepath"

	"github.com/rdawebb/fixture-fetcher/internal/domain/team"
	"github.com/rdawebb/fixture-fetcher/internal/platform/slug"
)

// CalendarPath is {output}/{league}/{team}/{team}.{code}.ics.
func CalendarPath(outputDir string, t team.Team, competitionCode string) string {
	teamSlug := t.Slug()
	return filepath.Join(outputDir, t.LeagueSlug(), teamSlug, teamSlug+"."+slug.Make(competitionCode)+".ics")
}

// SnapshotPath mirrors CalendarPath under {cache}/snapshots.
func SnapshotPath(cacheDir string, t team.Team, competitionCode string) string {
	teamSlug := t.Slug()
	return filepath.Join(cacheDir, "snapshots", t.LeagueSlug(), teamSlug, teamSlug+"."+slug.Make(competitionCode)+".json")
}
