package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rdawebb/fixture-fetcher/internal/infrastructure/calendar"
)

const githubOutputEnv = "GITHUB_OUTPUT"

func newCompareCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "compare OLD_DIR NEW_DIR",
		Short: "Report whether upcoming calendar events differ between two directories",
		Long: `Compare prints has_changes=true|false. When GITHUB_OUTPUT is set the
same line is appended to that file for use by later workflow steps.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := calendar.CompareDirs(cmd.Context(), rt.logger(), args[0], args[1], rt.now())
			if err != nil {
				return err
			}

			line := fmt.Sprintf("has_changes=%t", changed)
			fmt.Fprintln(cmd.OutOrStdout(), line)

			if path := strings.TrimSpace(os.Getenv(githubOutputEnv)); path != "" {
				if err := appendLine(path, line); err != nil {
					return fmt.Errorf("write %s: %w", githubOutputEnv, err)
				}
			}
			return nil
		},
	}
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
