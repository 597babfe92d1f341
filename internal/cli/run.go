package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pgEdge/siga-starschema/internal/config"
	"github.com/pgEdge/siga-starschema/internal/etl"
	"github.com/pgEdge/siga-starschema/internal/logging"
	"github.com/pgEdge/siga-starschema/internal/schema"
	"github.com/pgEdge/siga-starschema/internal/values"
)

var (
	runSource    string
	runEncoding  string
	runOutputDir string
	runRejects   string
)

func init() {
	rootCmd.Flags().StringVar(&runSource, "source", "",
		"extract to convert (default: dados/siga-empreendimentos-geracao.csv)")
	rootCmd.Flags().StringVar(&runEncoding, "encoding", "",
		"charset of the extract and of every table (default: ISO-8859-1)")
	rootCmd.Flags().StringVar(&runOutputDir, "output-dir", "",
		"directory receiving the tables (default: current directory)")
	rootCmd.Flags().StringVar(&runRejects, "rejects", "",
		"write malformed source rows to this table")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runSource != "" {
		cfg.Source.Path = runSource
	}
	if runEncoding != "" {
		cfg.Source.Encoding = runEncoding
	}
	if runOutputDir != "" {
		cfg.Output.Dir = runOutputDir
	}
	if runRejects != "" {
		cfg.Output.Rejects = runRejects
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	res, err := etl.New(pipelineOptions(cfg)).Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logging.Info().Msg("Conversion interrupted; tables are incomplete")
		}
		return err
	}

	logging.Info().
		Int("records", res.Records).
		Int("skipped", res.Skipped).
		Int("unresolved_keys", res.Unresolved).
		Dur("elapsed", res.Elapsed).
		Msg("Star schema complete")
	printSummary(cmd.OutOrStdout(), res)
	return nil
}

// pipelineOptions maps the configuration onto a pipeline run.
func pipelineOptions(c *config.Config) etl.Options {
	return etl.Options{
		Source:    c.Source.Path,
		Charset:   c.Source.Encoding,
		OutputDir: c.Output.Dir,
		Files: etl.Files{
			Generation: c.Output.Generation,
			Status:     c.Output.Status,
			Location:   c.Output.Location,
			Facility:   c.Output.Facility,
			Calendar:   c.Output.Calendar,
			Fact:       c.Output.Fact,
		},
		Rejects:          c.Output.Rejects,
		Locale:           schema.BrazilianPortuguese,
		ProgressInterval: c.ProgressInterval,
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

// printSummary renders one line per written table.
func printSummary(w io.Writer, res *etl.Result) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Table", "File", "Rows"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
	})
	for _, t := range res.Tables {
		table.Append([]string{t.Name, t.Path, strconv.Itoa(t.Rows)})
	}
	table.SetFooter([]string{"", "elapsed", res.Elapsed.Round(time.Millisecond).String()})
	table.Render()

	if res.HasDates {
		fmt.Fprintf(w, "Commissioning dates: %s to %s (%d days)\n",
			res.Dates.From.Format(values.ISODateLayout), res.Dates.To.Format(values.ISODateLayout), res.Dates.Days())
	}
	if res.Skipped > 0 || res.Unresolved > 0 {
		fmt.Fprintf(w, "Skipped rows: %d, unresolved keys: %d\n", res.Skipped, res.Unresolved)
	}
}
