//-------------------------------------------------------------------------
//
// SIGA Star Schema Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for siga-starschema.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/siga-starschema/internal/config"
	"github.com/pgEdge/siga-starschema/internal/logging"
	"github.com/pgEdge/siga-starschema/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "siga-starschema",
		Short: "Build a star schema from the ANEEL SIGA generation extract",
		Long: `siga-starschema reads the SIGA generation-facility extract published by
ANEEL and writes a star schema for it: generation, status, location and
facility dimensions, a calendar dimension covering the commissioning dates,
and a fact table carrying the capacity metrics of each facility.

Run without a subcommand to convert the configured extract. The source is
read twice; the dimension pass assigns surrogate keys, the fact pass
resolves them.

Example:
  siga-starschema
  siga-starschema --source dados/siga.csv --output-dir dw
  siga-starschema sample --rows 5000 --seed 42`,
		Version: version.Short(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE:          runPipeline,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./siga-starschema.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(sampleCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
