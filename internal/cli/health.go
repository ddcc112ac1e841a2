package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/waqarniyazi/aiportalx/internal/version"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.client().Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health: %w", err)
			}
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, h)
			}
			if h.Status == "ok" {
				ok(out, "%s is healthy", a.server)
			} else {
				warn(out, "%s is %s", a.server, h.Status)
			}
			for _, name := range slices.Sorted(maps.Keys(h.Checks)) {
				status := h.Checks[name]
				mark := color.GreenString(status)
				if status != "ok" {
					mark = color.RedString(status)
				}
				fmt.Fprintf(out, "  %-12s %s\n", name, mark)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the aiportalxctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aiportalxctl %s (%s, %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
