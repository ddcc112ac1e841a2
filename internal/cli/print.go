package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/waqarniyazi/aiportalx/pkg/client"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func printModels(w io.Writer, models []*client.Model) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tORGANIZATION\tTASK\tPUBLISHED")
	for _, m := range models {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			m.Name,
			strings.Join(m.Organization, ", "),
			strings.Join(m.Task, ", "),
			m.PublicationDate,
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

func printModel(w io.Writer, m *client.Model) {
	header(w, "%s", m.Name)
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-18s %s\n", color.YellowString(label+":"), value)
		}
	}
	field("Organization", strings.Join(m.Organization, ", "))
	field("Country", strings.Join(m.Country, ", "))
	field("Task", strings.Join(m.Task, ", "))
	field("Domain", strings.Join(m.Domain, ", "))
	field("Published", m.PublicationDate)
	field("Parameters", m.Parameters)
	field("Training compute", m.TrainingCompute)
	field("Accessibility", m.Accessibility)
	field("Link", m.Link)
}

func printValues(w io.Writer, title string, values []client.FacetValue) {
	if len(values) == 0 {
		return
	}
	header(w, "── %s  (%d)", title, len(values))
	for _, v := range values {
		fmt.Fprintf(w, "  %s\n", v.Value)
	}
}
