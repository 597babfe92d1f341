//-------------------------------------------------------------------------
//
// SIGA Star Schema Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides fixtures for tests that read SIGA extracts or
// inspect generated tables.
package testutil

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// SourceHeader is the header of a SIGA extract, in published order.
var SourceHeader = []string{
	"DatGeracaoConjuntoDados",
	"NomEmpreendimento",
	"IdeNucleoCEG",
	"CodCEG",
	"SigUFPrincipal",
	"SigTipoGeracao",
	"DscFaseUsina",
	"DscOrigemCombustivel",
	"DscFonteCombustivel",
	"DscTipoOutorga",
	"NomFonteCombustivel",
	"DatEntradaOperacao",
	"MdaPotenciaOutorgadaKw",
	"MdaPotenciaFiscalizadaKw",
	"MdaGarantiaFisicaKw",
	"IdcGeracaoQualificada",
	"NumCoordNEmpreendimento",
	"NumCoordEEmpreendimento",
	"DscPropriRegimePariticipacao",
	"DscSubBacia",
	"DscMuninicpios",
}

// Row holds source values by column name. Columns not present are empty.
type Row map[string]string

// Facility returns a complete, valid row for a hydro plant. Callers
// override individual columns as needed.
func Facility(code string) Row {
	return Row{
		"DatGeracaoConjuntoDados":      "2024-05-01",
		"NomEmpreendimento":            "Usina " + code,
		"IdeNucleoCEG":                 "12345",
		"CodCEG":                       code,
		"SigUFPrincipal":               "MG",
		"SigTipoGeracao":               "UHE",
		"DscFaseUsina":                 "Operação",
		"DscOrigemCombustivel":         "Hídrica",
		"DscFonteCombustivel":          "Potencial hidráulico",
		"DscTipoOutorga":               "Concessão",
		"NomFonteCombustivel":          "Hidráulica",
		"DatEntradaOperacao":           "2010-03-15T00:00:00",
		"MdaPotenciaOutorgadaKw":       "1.234,56",
		"MdaPotenciaFiscalizadaKw":     "1.200,00",
		"MdaGarantiaFisicaKw":          "800,5",
		"IdcGeracaoQualificada":        "Não",
		"NumCoordNEmpreendimento":      "-19,9",
		"NumCoordEEmpreendimento":      "-43,9",
		"DscPropriRegimePariticipacao": "Produtor Independente de Energia",
		"DscSubBacia":                  "Rio Grande",
		"DscMuninicpios":               "Belo Horizonte",
	}
}

// With returns a copy of r with the given column set to value.
func (r Row) With(column, value string) Row {
	out := make(Row, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out[column] = value
	return out
}

// SourceCSV renders rows as a semicolon-delimited UTF-8 extract with the
// standard header.
func SourceCSV(t *testing.T, rows ...Row) string {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(SourceHeader); err != nil {
		t.Fatalf("Failed to write header: %v", err)
	}
	for _, row := range rows {
		record := make([]string, len(SourceHeader))
		for i, col := range SourceHeader {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			t.Fatalf("Failed to write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("Failed to flush rows: %v", err)
	}
	return buf.String()
}

// Latin1 encodes s as ISO-8859-1.
func Latin1(t *testing.T, s string) []byte {
	t.Helper()

	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("Failed to encode %q as ISO-8859-1: %v", s, err)
	}
	return b
}

// WriteSource writes content to path as ISO-8859-1, creating parent
// directories.
func WriteSource(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, Latin1(t, content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadTable reads an ISO-8859-1, semicolon-delimited table, header included.
func ReadTable(t *testing.T, path string) [][]string {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		t.Fatalf("Failed to decode %s: %v", path, err)
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.Comma = ';'
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
	return records
}
