package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search model names, or every facet with --global",
		Long: `Search model names for a case-insensitive substring. With --global the
query is also matched against tasks, organizations, domains and countries.

Examples:
  aiportalxctl search llama
  aiportalxctl search --global vision`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := a.client()

			if !global {
				models, err := c.Search(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("search: %w", err)
				}
				if a.jsonOut {
					return printJSON(out, models)
				}
				if len(models) == 0 {
					warn(out, "No models match %q", args[0])
					return nil
				}
				return printModels(out, models)
			}

			g, err := c.GlobalSearch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("global search: %w", err)
			}
			if a.jsonOut {
				return printJSON(out, g)
			}
			if len(g.Models)+len(g.Tasks)+len(g.Organizations)+len(g.Domains)+len(g.Countries) == 0 {
				warn(out, "Nothing matches %q", args[0])
				return nil
			}
			if len(g.Models) > 0 {
				header(out, "── Models  (%d)", len(g.Models))
				if err := printModels(out, g.Models); err != nil {
					return err
				}
			}
			printValues(out, "Tasks", g.Tasks)
			printValues(out, "Organizations", g.Organizations)
			printValues(out, "Domains", g.Domains)
			printValues(out, "Countries", g.Countries)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Search every facet, not just names")
	return cmd
}

func newFiltersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the distinct values of every facet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.client().Filters(cmd.Context())
			if err != nil {
				return fmt.Errorf("list filters: %w", err)
			}
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, f)
			}
			printValues(out, "Tasks", f.Tasks)
			printValues(out, "Domains", f.Domains)
			printValues(out, "Organizations", f.Organizations)
			printValues(out, "Countries", f.Countries)
			return nil
		},
	}
}
