package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waqarniyazi/aiportalx/pkg/client"
)

func newModelsCmd(a *app) *cobra.Command {
	var (
		filters []string
		opts    client.ListOptions
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models matching facet filters",
		Long: `List catalogue models. Each --filter takes Facet=Value; repeat it to
select several values. Values of one facet are ORed, facets are ANDed.

Examples:
  aiportalxctl models --filter Task=Chat --filter Organization=OpenAI
  aiportalxctl models --filter "Domain=Language, Vision" --sort publication_date --order desc
  aiportalxctl models --slugs "GPT-4o,Llama 3"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := parseFilters(filters)
			if err != nil {
				return err
			}
			opts.Filters = parsed

			page, err := a.client().Models(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("list models: %w", err)
			}
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, page)
			}
			if len(page.Models) == 0 {
				warn(out, "No models match")
				return nil
			}
			if err := printModels(out, page.Models); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d of %d models\n", len(page.Models), page.Total)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Facet filter as Facet=Value (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Slugs, "slugs", nil, "Look up these model names instead of filtering")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort field: name, publication_date or training_compute")
	cmd.Flags().StringVar(&opts.Order, "order", "", "Sort order: asc or desc")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Page size (0 = server default)")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Number of models to skip")
	return cmd
}

func newModelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "model <organization> <model>",
		Short: "Show one model",
		Long: `Show one model by organization and model slug. Hyphens in a slug
stand for spaces.

Example:
  aiportalxctl model meta-ai llama-3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.client().Model(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("get model: %w", err)
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), m)
			}
			printModel(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <model> <model> [model]",
		Short: "Show up to three models side by side",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.client().Compare(cmd.Context(), args...)
			if err != nil {
				return fmt.Errorf("compare: %w", err)
			}
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, models)
			}
			for i, m := range models {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printModel(out, m)
			}
			return nil
		},
	}
}

// parseFilters turns Facet=Value flags into a filter map, keeping the
// order values were given in.
func parseFilters(flags []string) (map[string][]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	out := make(map[string][]string)
	for _, f := range flags {
		key, value, found := strings.Cut(f, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid filter %q: want Facet=Value", f)
		}
		out[key] = append(out[key], value)
	}
	return out, nil
}
