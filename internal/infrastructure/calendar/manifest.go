package calendar

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
)

type Manifest struct {
	Calendars []ManifestLeague `json:"calendars"`
}

type ManifestLeague struct {
	League string         `json:"league"`
	Slug   string         `json:"slug"`
	Teams  []ManifestTeam `json:"teams"`
}

type ManifestTeam struct {
	Name         string                `json:"name"`
	Slug         string                `json:"slug"`
	Competitions []ManifestCompetition `json:"competitions"`
}

type ManifestCompetition struct {
	Code string `json:"code"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// BuildManifest indexes calendarsDir laid out as
// {league}/{team}/{team}.{code}.ics. URLs are relative to the parent of
// calendarsDir.
func BuildManifest(calendarsDir string) (Manifest, error) {
	manifest := Manifest{Calendars: []ManifestLeague{}}
	root := filepath.Dir(filepath.Clean(calendarsDir))

	leagueDirs, err := subdirs(calendarsDir)
	if err != nil {
		return manifest, err
	}
	for _, leagueSlug := range leagueDirs {
		league := ManifestLeague{League: unslug(leagueSlug), Slug: leagueSlug, Teams: []ManifestTeam{}}

		teamDirs, err := subdirs(filepath.Join(calendarsDir, leagueSlug))
		if err != nil {
			return manifest, err
		}
		for _, teamSlug := range teamDirs {
			teamDir := filepath.Join(calendarsDir, leagueSlug, teamSlug)
			files, err := filepath.Glob(filepath.Join(teamDir, teamSlug+".*.ics"))
			if err != nil {
				return manifest, crerr.Wrapf(err, "list calendars in %s", teamDir)
			}
			sort.Strings(files)

			entry := ManifestTeam{Name: unslug(teamSlug), Slug: teamSlug, Competitions: []ManifestCompetition{}}
			for _, file := range files {
				code := strings.ToUpper(strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), teamSlug+"."), ".ics"))
				rel, err := filepath.Rel(root, file)
				if err != nil {
					return manifest, crerr.Wrapf(err, "relative path for %s", file)
				}
				entry.Competitions = append(entry.Competitions, ManifestCompetition{
					Code: code,
					Name: fixture.CompetitionName(code),
					URL:  filepath.ToSlash(rel),
				})
			}
			if len(entry.Competitions) > 0 {
				league.Teams = append(league.Teams, entry)
			}
		}
		if len(league.Teams) > 0 {
			manifest.Calendars = append(manifest.Calendars, league)
		}
	}
	return manifest, nil
}

// GenerateManifest writes the manifest of calendarsDir to outputFile. A
// missing calendars directory is logged and leaves outputFile untouched.
func GenerateManifest(ctx context.Context, logger *logging.Logger, calendarsDir, outputFile string) error {
	if logger == nil {
		logger = logging.Default()
	}
	if _, err := os.Stat(calendarsDir); errors.Is(err, fs.ErrNotExist) {
		logger.WarnContext(ctx, "calendars directory not found, manifest not written", "dir", calendarsDir)
		return nil
	}

	manifest, err := BuildManifest(calendarsDir)
	if err != nil {
		return err
	}
	data, err := sonic.ConfigStd.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode manifest")
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return crerr.Wrapf(err, "create dir for %s", outputFile)
	}
	if err := os.WriteFile(outputFile, append(data, '\n'), 0o644); err != nil {
		return crerr.Wrapf(err, "write manifest %s", outputFile)
	}

	logger.InfoContext(ctx, "manifest written", "path", outputFile, "leagues", len(manifest.Calendars))
	return nil
}

func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, crerr.Wrapf(err, "read %s", dir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// unslug turns "man-united" into "Man United".
func unslug(value string) string {
	words := strings.FieldsFunc(value, func(r rune) bool { return r == '-' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
