package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
)

func newCacheTeamsCommand(rt *runtime) *cobra.Command {
	var competitions []string

	cmd := &cobra.Command{
		Use:   "cache-teams",
		Short: "Refresh the local team cache from football-data.org",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := rt.app.Client()
			if err != nil {
				return err
			}
			count, err := client.RefreshTeams(cmd.Context(), competitions)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cached %d teams to %s\n", count, rt.app.Teams.Path())
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&competitions, "competitions", "c", fixture.DefaultCompetitionCodes, "competition codes to cache")
	return cmd
}
