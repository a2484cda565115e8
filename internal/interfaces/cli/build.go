package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rdawebb/fixture-fetcher/internal/infrastructure/calendar"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
	"github.com/rdawebb/fixture-fetcher/internal/usecase"
)

type buildOptions struct {
	teams         []string
	league        string
	competitions  []string
	season        int
	homeOnly      bool
	awayOnly      bool
	televisedOnly bool
	output        string
	overrides     string
	cacheDir      string
	refreshCache  bool
	summarise     bool
	manifest      string
}

func newBuildCommand(rt *runtime) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build [team...]",
		Short: "Build ICS calendars for teams",
		Long: `Build fetches each team's fixtures, applies TV overrides and writes
one calendar per competition to {output}/{league}/{team}/{team}.{code}.ics.

The command fails only when no calendar at all could be built.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runBuild(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.teams, "team", "t", nil, "team name, repeatable")
	flags.StringVarP(&opts.league, "league", "l", "", "build every cached team of this league")
	flags.StringSliceVarP(&opts.competitions, "competitions", "c", nil, "competition codes, e.g. PL,CL (default: all supported)")
	flags.IntVar(&opts.season, "season", 0, "season start year (default: current)")
	flags.BoolVar(&opts.homeOnly, "home-only", false, "only home fixtures")
	flags.BoolVar(&opts.awayOnly, "away-only", false, "only away fixtures")
	flags.BoolVar(&opts.televisedOnly, "televised-only", false, "only fixtures with a known broadcaster")
	flags.StringVarP(&opts.output, "output", "o", "", "calendar output directory (default: OUTPUT_DIR)")
	flags.StringVar(&opts.overrides, "overrides", "", "TV overrides file (default: TV_OVERRIDES_PATH)")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "snapshot cache directory (default: CACHE_DIR)")
	flags.BoolVar(&opts.refreshCache, "refresh-cache", false, "refresh the team cache before building")
	flags.BoolVar(&opts.summarise, "summarise", false, "print enrichment and change summary per calendar")
	flags.StringVar(&opts.manifest, "manifest", "", "write a calendar manifest to this file after building")
	cmd.MarkFlagsMutuallyExclusive("home-only", "away-only")

	return cmd
}

func (rt *runtime) runBuild(cmd *cobra.Command, opts *buildOptions, args []string) error {
	svc, err := rt.app.BuildService()
	if err != nil {
		return err
	}

	cfg := rt.app.Config
	req := usecase.BuildRequest{
		Teams:         append(append([]string(nil), args...), opts.teams...),
		League:        opts.league,
		Competitions:  opts.competitions,
		Season:        opts.season,
		HomeOnly:      opts.homeOnly,
		AwayOnly:      opts.awayOnly,
		TelevisedOnly: opts.televisedOnly,
		OutputDir:     firstNonEmpty(opts.output, cfg.OutputDir),
		OverridesPath: firstNonEmpty(opts.overrides, cfg.OverridesPath),
		CacheDir:      firstNonEmpty(opts.cacheDir, cfg.CacheDir),
		RefreshCache:  opts.refreshCache,
	}

	result, err := svc.Build(cmd.Context(), req)
	if err != nil {
		return err
	}

	printBuildResult(cmd.OutOrStdout(), result, opts.summarise)

	if !result.Succeeded() {
		return fmt.Errorf("no calendars built (%d failures)", len(result.Failed))
	}

	if opts.manifest != "" {
		writeManifest(cmd.Context(), rt.logger(), cmd.ErrOrStderr(), req.OutputDir, opts.manifest)
	}
	return nil
}

// writeManifest reports a manifest failure without failing a build that
// already produced calendars.
func writeManifest(ctx context.Context, logger *logging.Logger, stderr io.Writer, calendarsDir, outputFile string) bool {
	if err := calendar.GenerateManifest(ctx, logger, calendarsDir, outputFile); err != nil {
		logger.WarnContext(ctx, "manifest generation failed", "path", outputFile, "error", err)
		fmt.Fprintf(stderr, "warning: manifest not written: %v\n", err)
		return false
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
