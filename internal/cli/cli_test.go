package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pgEdge/siga-starschema/internal/config"
	"github.com/pgEdge/siga-starschema/internal/etl"
	"github.com/pgEdge/siga-starschema/internal/schema"
)

func TestPipelineOptions(t *testing.T) {
	c := config.DefaultConfig()
	c.Output.Dir = "dw"
	c.Output.Rejects = "rejeitados.csv"

	opts := pipelineOptions(c)

	if opts.Source != c.Source.Path {
		t.Errorf("Expected source %s, got %s", c.Source.Path, opts.Source)
	}
	if opts.Charset != "ISO-8859-1" {
		t.Errorf("Expected charset ISO-8859-1, got %s", opts.Charset)
	}
	if opts.OutputDir != "dw" {
		t.Errorf("Expected output dir dw, got %s", opts.OutputDir)
	}
	if opts.Files.Fact != "fato_geracao.csv" || opts.Files.Calendar != "dim_tempo.csv" {
		t.Errorf("Unexpected files: %+v", opts.Files)
	}
	if opts.Rejects != "rejeitados.csv" {
		t.Errorf("Expected rejects table, got %q", opts.Rejects)
	}
	if opts.Locale.Months[0] != schema.BrazilianPortuguese.Months[0] {
		t.Errorf("Expected Brazilian Portuguese locale, got %v", opts.Locale.Tag)
	}
}

func TestPrintTables(t *testing.T) {
	var buf bytes.Buffer
	if err := printTables(&buf, config.DefaultConfig()); err != nil {
		t.Fatalf("printTables failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"dim_geracao.csv", "dim_empreendimento.csv", "fato_geracao.csv",
		"ID_Geracao", "MdaPotenciaOutorgadaKw", schema.DimCalendar,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	res := &etl.Result{
		Tables: []etl.TableResult{
			{Name: schema.DimGeneration, Path: filepath.Join("dw", "dim_geracao.csv"), Rows: 4},
			{Name: schema.FactTable, Path: filepath.Join("dw", "fato_geracao.csv"), Rows: 12},
		},
		Skipped:  1,
		HasDates: true,
		Dates: etl.DateRange{
			From: time.Date(2010, 3, 12, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2010, 3, 18, 0, 0, 0, 0, time.UTC),
		},
		Elapsed: 1500 * time.Millisecond,
	}

	var buf bytes.Buffer
	printSummary(&buf, res)

	out := buf.String()
	for _, want := range []string{
		"dim_geracao.csv", "12", "1.5s",
		"2010-03-12 to 2010-03-18 (7 days)",
		"Skipped rows: 1, unresolved keys: 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}
