//-------------------------------------------------------------------------
//
// SIGA Star Schema Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for siga-starschema.
// Configuration is loaded from an optional config file (no environment
// variables). Without a file, the built-in defaults reproduce the standard
// layout: the extract under ./dados and every table in the working
// directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for siga-starschema.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// ProgressInterval is how often, in rows, scan progress is logged.
	ProgressInterval int64 `mapstructure:"progress_interval"`

	// Source describes the input extract.
	Source SourceConfig `mapstructure:"source"`

	// Output describes the generated tables.
	Output OutputConfig `mapstructure:"output"`

	// Sample holds configuration for the sample subcommand.
	Sample SampleConfig `mapstructure:"sample"`
}

// SourceConfig locates the extract.
type SourceConfig struct {
	// Path is the extract file.
	Path string `mapstructure:"path"`

	// Encoding is the IANA charset of the extract and of every output.
	Encoding string `mapstructure:"encoding"`
}

// OutputConfig names the generated tables.
type OutputConfig struct {
	// Dir receives every table.
	Dir string `mapstructure:"dir"`

	Generation string `mapstructure:"generation"`
	Status     string `mapstructure:"status"`
	Location   string `mapstructure:"location"`
	Facility   string `mapstructure:"facility"`
	Calendar   string `mapstructure:"calendar"`
	Fact       string `mapstructure:"fact"`

	// Rejects names an optional table of malformed source rows.
	// Empty disables it.
	Rejects string `mapstructure:"rejects"`
}

// SampleConfig holds configuration for synthetic extract generation.
type SampleConfig struct {
	// Rows is the number of facilities to generate.
	Rows int `mapstructure:"rows"`

	// Seed makes generation reproducible; 0 picks a random seed.
	Seed uint64 `mapstructure:"seed"`

	// Output is the file to write; defaults to Source.Path.
	Output string `mapstructure:"output"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		ProgressInterval: 10000,
		Source: SourceConfig{
			Path:     filepath.Join("dados", "siga-empreendimentos-geracao.csv"),
			Encoding: "ISO-8859-1",
		},
		Output: OutputConfig{
			Dir:        ".",
			Generation: "dim_geracao.csv",
			Status:     "dim_status.csv",
			Location:   "dim_localizacao.csv",
			Facility:   "dim_empreendimento.csv",
			Calendar:   "dim_tempo.csv",
			Fact:       "fato_geracao.csv",
		},
		Sample: SampleConfig{
			Rows: 1000,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./siga-starschema.yaml
// 3. ~/.config/siga-starschema/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("siga-starschema")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "siga-starschema"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration required to run the pipeline.
func (c *Config) Validate() error {
	if c.Source.Path == "" {
		return fmt.Errorf("source path is required")
	}
	if c.Source.Encoding == "" {
		return fmt.Errorf("source encoding is required")
	}

	names := map[string]string{
		"generation": c.Output.Generation,
		"status":     c.Output.Status,
		"location":   c.Output.Location,
		"facility":   c.Output.Facility,
		"calendar":   c.Output.Calendar,
		"fact":       c.Output.Fact,
	}
	seen := make(map[string]string, len(names)+1)
	for _, table := range []string{"generation", "status", "location", "facility", "calendar", "fact"} {
		file := names[table]
		if file == "" {
			return fmt.Errorf("output file for %s table is required", table)
		}
		if other, ok := seen[file]; ok {
			return fmt.Errorf("%s and %s tables share output file %s", other, table, file)
		}
		seen[file] = table
	}
	if c.Output.Rejects != "" {
		if other, ok := seen[c.Output.Rejects]; ok {
			return fmt.Errorf("rejects table shares output file %s with %s table", c.Output.Rejects, other)
		}
	}
	if c.ProgressInterval < 0 {
		return fmt.Errorf("progress_interval must be non-negative")
	}
	return nil
}

// ValidateSample checks configuration required by the sample command.
func (c *Config) ValidateSample() error {
	if c.Sample.Rows < 1 {
		return fmt.Errorf("sample rows must be at least 1")
	}
	if c.SampleOutput() == "" {
		return fmt.Errorf("sample output path is required")
	}
	return nil
}

// SampleOutput returns the file the sample command writes.
func (c *Config) SampleOutput() string {
	if c.Sample.Output != "" {
		return c.Sample.Output
	}
	return c.Source.Path
}
