package cli

import (
	"github.com/spf13/cobra"

	"github.com/rdawebb/fixture-fetcher/internal/infrastructure/calendar"
)

func newManifestCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest CALENDARS_DIR OUTPUT_FILE",
		Short: "Write a JSON index of the calendars in a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return calendar.GenerateManifest(cmd.Context(), rt.logger(), args[0], args[1])
		},
	}
}
