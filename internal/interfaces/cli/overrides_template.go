package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rdawebb/fixture-fetcher/internal/infrastructure/overrides"
	"github.com/rdawebb/fixture-fetcher/internal/usecase"
)

func newOverridesTemplateCommand(rt *runtime) *cobra.Command {
	var (
		teamName     string
		competitions []string
		season       int
		output       string
	)

	cmd := &cobra.Command{
		Use:   "overrides-template",
		Short: "Write a TV overrides template listing a team's upcoming fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := rt.app.Client()
			if err != nil {
				return err
			}

			fixtures, err := client.FetchFixtures(cmd.Context(), teamName, competitions, season)
			if err != nil {
				return err
			}
			upcoming := usecase.OnlyScheduled(fixtures)

			path := output
			if path == "" {
				path = filepath.Join(filepath.Dir(rt.app.Config.OverridesPath), "tv_overrides.template.yaml")
			}
			if err := overrides.WriteTemplate(path, upcoming); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d fixtures to %s\n", len(upcoming), path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&teamName, "team", "t", "", "team name")
	flags.StringSliceVarP(&competitions, "competitions", "c", nil, "competition codes (default: all supported)")
	flags.IntVar(&season, "season", 0, "season start year (default: current)")
	flags.StringVarP(&output, "output", "o", "", "template path (default: next to TV_OVERRIDES_PATH)")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}
