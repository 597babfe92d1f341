package cli

import (
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pgEdge/siga-starschema/internal/config"
	"github.com/pgEdge/siga-starschema/internal/schema"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the generated tables and their columns",
	Long: `List the tables written by a conversion, with the file each one is
written to under the current configuration and its header.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTables(cmd.OutOrStdout(), cfg)
	},
}

type tableInfo struct {
	name string
	file string
	row  any
}

func tableCatalog(c *config.Config) []tableInfo {
	return []tableInfo{
		{schema.DimGeneration, c.Output.Generation, schema.GenerationRow{}},
		{schema.DimStatus, c.Output.Status, schema.StatusRow{}},
		{schema.DimLocation, c.Output.Location, schema.LocationRow{}},
		{schema.DimFacility, c.Output.Facility, schema.FacilityRow{}},
		{schema.DimCalendar, c.Output.Calendar, schema.CalendarRow{}},
		{schema.FactTable, c.Output.Fact, schema.FactRow{}},
	}
}

func printTables(w io.Writer, c *config.Config) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetRowLine(true)
	table.SetHeader([]string{"Table", "File", "Columns"})

	for _, t := range tableCatalog(c) {
		header, err := csvutil.Header(t.row, "csv")
		if err != nil {
			return err
		}
		table.Append([]string{t.name, t.file, strings.Join(header, "\n")})
	}
	table.Render()
	return nil
}
