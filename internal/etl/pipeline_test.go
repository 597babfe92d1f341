package etl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pgEdge/siga-starschema/internal/schema"
	"github.com/pgEdge/siga-starschema/internal/testutil"
)

func testOptions(dir string) Options {
	return Options{
		Source:    filepath.Join(dir, "dados", "siga-empreendimentos-geracao.csv"),
		Charset:   "ISO-8859-1",
		OutputDir: filepath.Join(dir, "out"),
		Files: Files{
			Generation: "dim_geracao.csv",
			Status:     "dim_status.csv",
			Location:   "dim_localizacao.csv",
			Facility:   "dim_empreendimento.csv",
			Calendar:   "dim_tempo.csv",
			Fact:       "fato_geracao.csv",
		},
		Locale:           schema.BrazilianPortuguese,
		ProgressInterval: 1000,
	}
}

func sampleExtract(t *testing.T) string {
	t.Helper()

	rows := []testutil.Row{
		testutil.Facility("UHE.PH.MG.000001-1.01"),
		testutil.Facility("EOL.CV.RN.000002-2.01").
			With("SigTipoGeracao", "EOL").
			With("DscOrigemCombustivel", "Eólica").
			With("DscFonteCombustivel", "Cinética do vento").
			With("SigUFPrincipal", "RN").
			With("DscMuninicpios", "São Miguel do Gostoso").
			With("IdcGeracaoQualificada", "").
			With("DatEntradaOperacao", "2010-03-18"),
		testutil.Facility("UHE.PH.MG.000003-3.01").
			With("IdcGeracaoQualificada", "N/A").
			With("DatEntradaOperacao", "2010-03-12T00:00:00").
			With("MdaPotenciaOutorgadaKw", "não informado"),
		testutil.Facility("UHE.PH.MG.000001-1.01").
			With("DatEntradaOperacao", ""),
	}

	// A row with too few fields between the second and third facilities.
	content := testutil.SourceCSV(t, rows...)
	lines := strings.SplitAfter(content, "\n")
	lines = append(lines[:3], append([]string{"UFV;faltando;campos\n"}, lines[3:]...)...)
	return strings.Join(lines, "")
}

func TestPipelineRun(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)
	opts.Rejects = "rejeitados.csv"
	testutil.WriteSource(t, opts.Source, sampleExtract(t))

	res, err := New(opts).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Records != 4 || res.Skipped != 1 || res.FactSkipped != 1 {
		t.Errorf("Unexpected counts: records=%d skipped=%d factSkipped=%d", res.Records, res.Skipped, res.FactSkipped)
	}
	if res.Unresolved != 0 {
		t.Errorf("Expected no unresolved keys, got %d", res.Unresolved)
	}

	out := func(name string) [][]string {
		return testutil.ReadTable(t, filepath.Join(opts.OutputDir, name))
	}

	wantGen := [][]string{
		{"ID_Geracao", "SigTipoGeracao", "DscOrigemCombustivel", "DscFonteCombustivel"},
		{"1", "UHE", "Hídrica", "Potencial hidráulico"},
		{"2", "EOL", "Eólica", "Cinética do vento"},
	}
	if diff := cmp.Diff(wantGen, out("dim_geracao.csv")); diff != "" {
		t.Errorf("dim_geracao mismatch (-want +got):\n%s", diff)
	}

	wantStatus := [][]string{
		{"ID_Status", "DscFaseUsina", "DscTipoOutorga", "IdcGeracaoQualificada"},
		{"1", "Operação", "Concessão", "Não"},
		{"2", "Operação", "Concessão", "N/A"},
	}
	if diff := cmp.Diff(wantStatus, out("dim_status.csv")); diff != "" {
		t.Errorf("dim_status mismatch (-want +got):\n%s", diff)
	}

	wantLoc := [][]string{
		{"ID_Localizacao", "SigUFPrincipal", "DscMuninicpios"},
		{"1", "MG", "Belo Horizonte"},
		{"2", "RN", "São Miguel do Gostoso"},
	}
	if diff := cmp.Diff(wantLoc, out("dim_localizacao.csv")); diff != "" {
		t.Errorf("dim_localizacao mismatch (-want +got):\n%s", diff)
	}

	fac := out("dim_empreendimento.csv")
	if len(fac) != 4 {
		t.Errorf("Expected 3 facilities plus header, got %d rows", len(fac))
	}

	cal := out("dim_tempo.csv")
	if len(cal) != 8 {
		t.Fatalf("Expected 7 calendar days plus header, got %d rows", len(cal))
	}
	if diff := cmp.Diff([]string{"20100312", "2010-03-12", "2010", "3", "março", "12", "sexta-feira", "T1"}, cal[1]); diff != "" {
		t.Errorf("First calendar row mismatch (-want +got):\n%s", diff)
	}
	if cal[7][0] != "20100318" {
		t.Errorf("Expected last calendar key 20100318, got %s", cal[7][0])
	}

	wantFacts := [][]string{
		{"ID_Geracao", "ID_Status", "ID_Localizacao", "CodCEG", "FK_DataOperacao",
			"MdaPotenciaOutorgadaKw", "MdaPotenciaFiscalizadaKw", "MdaGarantiaFisicaKw", "QtdEmpreendimentos"},
		{"1", "1", "1", "UHE.PH.MG.000001-1.01", "20100315", "1234,56", "1200,00", "800,50", "1"},
		{"2", "2", "2", "EOL.CV.RN.000002-2.01", "20100318", "1234,56", "1200,00", "800,50", "1"},
		{"1", "2", "1", "UHE.PH.MG.000003-3.01", "20100312", "0,00", "1200,00", "800,50", "1"},
		{"1", "1", "1", "UHE.PH.MG.000001-1.01", "0", "1234,56", "1200,00", "800,50", "1"},
	}
	if diff := cmp.Diff(wantFacts, out("fato_geracao.csv")); diff != "" {
		t.Errorf("fato_geracao mismatch (-want +got):\n%s", diff)
	}

	rejects := out("rejeitados.csv")
	if len(rejects) != 2 || rejects[1][0] != "4" || rejects[1][2] != "UFV;faltando;campos" {
		t.Errorf("Unexpected rejects table: %v", rejects)
	}

	var names []string
	for _, tr := range res.Tables {
		names = append(names, tr.Name)
	}
	wantNames := []string{"generation", "status", "location", "facility", "calendar", "fact"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("Table results mismatch (-want +got):\n%s", diff)
	}
}

func TestPipelineKeepsLiteralQuotes(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)

	content := testutil.SourceCSV(t,
		testutil.Facility("UHE.PH.MG.000001-1.01"),
		testutil.Facility("PCH.PH.MG.000002-2.01").
			With("SigTipoGeracao", "PCH").
			With("NomEmpreendimento", "NAME"),
	)
	content = strings.Replace(content, "NAME", `PCH "Boa Vista"`, 1)
	testutil.WriteSource(t, opts.Source, content)

	res, err := New(opts).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Records != 2 || res.Skipped != 0 || res.FactSkipped != 0 {
		t.Errorf("Unexpected counts: records=%d skipped=%d factSkipped=%d", res.Records, res.Skipped, res.FactSkipped)
	}

	fac := testutil.ReadTable(t, filepath.Join(opts.OutputDir, "dim_empreendimento.csv"))
	if len(fac) != 3 {
		t.Fatalf("Expected 2 facilities plus header, got %d rows", len(fac))
	}
	if diff := cmp.Diff([]string{"PCH.PH.MG.000002-2.01", `PCH "Boa Vista"`, "Produtor Independente de Energia"}, fac[2]); diff != "" {
		t.Errorf("Facility row mismatch (-want +got):\n%s", diff)
	}

	facts := testutil.ReadTable(t, filepath.Join(opts.OutputDir, "fato_geracao.csv"))
	if len(facts) != 3 {
		t.Fatalf("Expected 2 facts plus header, got %d rows", len(facts))
	}
	if facts[2][3] != "PCH.PH.MG.000002-2.01" || facts[2][0] != "2" {
		t.Errorf("Unexpected fact row: %v", facts[2])
	}
}

func TestPipelineIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)
	testutil.WriteSource(t, opts.Source, sampleExtract(t))

	files := []string{
		opts.Files.Generation, opts.Files.Status, opts.Files.Location,
		opts.Files.Facility, opts.Files.Calendar, opts.Files.Fact,
	}

	snapshot := func() map[string][]byte {
		if _, err := New(opts).Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		out := make(map[string][]byte, len(files))
		for _, f := range files {
			b, err := os.ReadFile(filepath.Join(opts.OutputDir, f))
			if err != nil {
				t.Fatalf("Failed to read %s: %v", f, err)
			}
			out[f] = b
		}
		return out
	}

	first := snapshot()
	second := snapshot()
	for _, f := range files {
		if !bytes.Equal(first[f], second[f]) {
			t.Errorf("%s differs between runs", f)
		}
	}
}

func TestPipelineWritesLatin1WithCRLF(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)
	testutil.WriteSource(t, opts.Source, sampleExtract(t))

	if _, err := New(opts).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(opts.OutputDir, opts.Files.Location))
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.Contains(raw, []byte("S\xe3o Miguel do Gostoso\r\n")) {
		t.Errorf("Expected ISO-8859-1 text with CRLF, got %q", raw)
	}
}

func TestPipelineSkipsCalendarWithoutDates(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)
	testutil.WriteSource(t, opts.Source, testutil.SourceCSV(t,
		testutil.Facility("A").With("DatEntradaOperacao", ""),
		testutil.Facility("B").With("DatEntradaOperacao", "2020"),
	))

	stale := filepath.Join(opts.OutputDir, opts.Files.Calendar)
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	res, err := New(opts).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.HasDates {
		t.Error("Expected no date range")
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("Expected stale calendar to be removed, stat err = %v", err)
	}

	facts := testutil.ReadTable(t, filepath.Join(opts.OutputDir, opts.Files.Fact))
	for _, row := range facts[1:] {
		if row[4] != "0" {
			t.Errorf("Expected date key 0, got %s", row[4])
		}
	}
}

func TestPipelineMissingSource(t *testing.T) {
	opts := testOptions(t.TempDir())
	if _, err := New(opts).Run(context.Background()); err == nil {
		t.Fatal("Expected error for missing source")
	}
}

func TestPipelineMissingColumns(t *testing.T) {
	opts := testOptions(t.TempDir())
	testutil.WriteSource(t, opts.Source, "CodCEG;NomEmpreendimento\nA;Usina A\n")

	if _, err := New(opts).Run(context.Background()); err == nil {
		t.Fatal("Expected error for missing columns")
	}
}

func TestPipelineUnknownCharset(t *testing.T) {
	opts := testOptions(t.TempDir())
	opts.Charset = "klingon"
	testutil.WriteSource(t, opts.Source, sampleExtract(t))

	if _, err := New(opts).Run(context.Background()); err == nil {
		t.Fatal("Expected error for unknown charset")
	}
}

func TestPipelineCancelled(t *testing.T) {
	opts := testOptions(t.TempDir())
	testutil.WriteSource(t, opts.Source, sampleExtract(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(opts).Run(ctx); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}
