// Package cli implements the aiportalxctl command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/waqarniyazi/aiportalx/pkg/client"
)

const defaultServer = "http://localhost:8080"

// app holds the flags shared by every sub-command.
type app struct {
	server  string
	apiKey  string
	noColor bool
	jsonOut bool
}

func (a *app) client() *client.Client {
	return client.New(a.server, client.WithAPIKey(a.apiKey))
}

// NewRootCmd builds the aiportalxctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "aiportalxctl",
		Short: "Query and seed an aiportalx model catalogue",
		Long: `aiportalxctl talks to a running aiportalx API server.

Catalogue queries (models, compare, search, filters) go through the HTTP API.
The seed command writes a dataset straight into the configured store, or
uploads it to the server with --remote.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if a.noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVar(&a.server, "server", envOr("AIPORTALX_SERVER", defaultServer), "API server base URL")
	root.PersistentFlags().StringVar(&a.apiKey, "api-key", os.Getenv("AIPORTALX_API_KEY"), "Bearer token for admin routes")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print raw JSON")

	root.AddCommand(
		newModelsCmd(a),
		newModelCmd(a),
		newCompareCmd(a),
		newSearchCmd(a),
		newFiltersCmd(a),
		newSeedCmd(a),
		newHealthCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ok prints a green success line.
func ok(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.CyanString(fmt.Sprintf(format, a...)))
}
