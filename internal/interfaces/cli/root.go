package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rdawebb/fixture-fetcher/internal/app"
	"github.com/rdawebb/fixture-fetcher/internal/config"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
)

const defaultEnvFile = ".env"

// runtime is the state shared by every subcommand once the root
// pre-run has loaded configuration.
type runtime struct {
	envFile string
	now     func() time.Time
	app     *app.App
}

func NewRootCommand() *cobra.Command {
	rt := &runtime{now: time.Now}

	root := &cobra.Command{
		Use:   "fixture-fetcher",
		Short: "Build subscribable football fixture calendars",
		Long: `fixture-fetcher pulls fixtures from football-data.org, applies TV
broadcaster overrides, and writes one ICS calendar per team and competition
along with a JSON snapshot used to report changes between runs.

Examples:
  # Build every competition calendar for two teams
  fixture-fetcher build Arsenal Chelsea --summarise

  # Build televised home fixtures for a whole league
  fixture-fetcher build --league "Premier League" --home-only --televised-only

  # Refresh the local team cache
  fixture-fetcher cache-teams --competitions PL,CL`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd.Flags().Changed("env-file"))
		},
	}

	root.PersistentFlags().StringVar(&rt.envFile, "env-file", defaultEnvFile, "dotenv file loaded before reading the environment")

	root.AddCommand(
		newBuildCommand(rt),
		newCacheTeamsCommand(rt),
		newCompareCommand(rt),
		newManifestCommand(rt),
		newOverridesTemplateCommand(rt),
	)
	return root
}

// Execute runs the CLI with args. It returns an error for the caller to
// turn into a non-zero exit status.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (rt *runtime) init(envFileRequired bool) error {
	if rt.envFile != "" {
		if err := godotenv.Load(rt.envFile); err != nil {
			if envFileRequired || !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load env file %s: %w", rt.envFile, err)
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.Configure(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
	rt.app = app.New(cfg, logger)
	return nil
}

func (rt *runtime) logger() *logging.Logger {
	if rt.app == nil {
		return logging.Default()
	}
	return rt.app.Logger
}
