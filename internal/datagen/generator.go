package datagen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"

	"github.com/pgEdge/siga-starschema/internal/logging"
	"github.com/pgEdge/siga-starschema/internal/output"
	"github.com/pgEdge/siga-starschema/internal/values"
)

// ExtractRow is one facility of a synthetic extract. Fields follow the
// column order of the published dataset.
type ExtractRow struct {
	SnapshotDate        string `csv:"DatGeracaoConjuntoDados"`
	FacilityName        string `csv:"NomEmpreendimento"`
	CEGCore             string `csv:"IdeNucleoCEG"`
	FacilityCode        string `csv:"CodCEG"`
	State               string `csv:"SigUFPrincipal"`
	GenerationType      string `csv:"SigTipoGeracao"`
	PlantPhase          string `csv:"DscFaseUsina"`
	FuelOrigin          string `csv:"DscOrigemCombustivel"`
	FuelSource          string `csv:"DscFonteCombustivel"`
	GrantType           string `csv:"DscTipoOutorga"`
	FuelName            string `csv:"NomFonteCombustivel"`
	OperationDate       string `csv:"DatEntradaOperacao"`
	GrantedPower        string `csv:"MdaPotenciaOutorgadaKw"`
	InspectedPower      string `csv:"MdaPotenciaFiscalizadaKw"`
	PhysicalGuarantee   string `csv:"MdaGarantiaFisicaKw"`
	Qualified           string `csv:"IdcGeracaoQualificada"`
	Latitude            string `csv:"NumCoordNEmpreendimento"`
	Longitude           string `csv:"NumCoordEEmpreendimento"`
	ParticipationRegime string `csv:"DscPropriRegimePariticipacao"`
	SubBasin            string `csv:"DscSubBacia"`
	Municipality        string `csv:"DscMuninicpios"`
}

// Options configures synthetic extract generation.
type Options struct {
	// Rows is the number of facilities to generate.
	Rows int

	// Seed makes the output reproducible; 0 picks a random seed.
	Seed uint64

	// Snapshot is the publication date of the extract and the latest
	// commissioning date generated. Zero means today.
	Snapshot time.Time

	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int64
}

// earliestOperation bounds the commissioning dates of operating plants.
var earliestOperation = time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generator produces synthetic extract rows.
type Generator struct {
	faker    *Faker
	opts     Options
	snapshot time.Time
}

// NewGenerator creates a generator.
func NewGenerator(opts Options) *Generator {
	faker := NewFaker()
	if opts.Seed != 0 {
		faker = NewFakerWithSeed(opts.Seed)
	}

	snapshot := opts.Snapshot
	if snapshot.IsZero() {
		snapshot = time.Now()
	}
	snapshot = time.Date(snapshot.Year(), snapshot.Month(), snapshot.Day(), 0, 0, 0, 0, time.UTC)

	return &Generator{faker: faker, opts: opts, snapshot: snapshot}
}

// Generate writes opts.Rows facilities to w.
func (g *Generator) Generate(ctx context.Context, w output.RowWriter[ExtractRow]) error {
	progress := logging.NewProgress("sample", int64(g.opts.Rows), g.opts.ProgressInterval)

	for seq := 1; seq <= g.opts.Rows; seq++ {
		if seq%100 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := w.Write(g.Row(seq)); err != nil {
			return err
		}
		progress.Add(1)
	}

	progress.Done()
	return nil
}

// Row generates facility number seq. Facility codes are unique per seq.
func (g *Generator) Row(seq int) ExtractRow {
	f := g.faker
	kind := ChooseWeighted(f, plantKinds, plantKindWeights)
	reg := Choose(f, regions)
	phase := ChooseWeighted(f, phases, phaseWeights)

	granted := f.Power(kind.minKW, kind.maxKW)
	inspected := decimal.Zero
	var operation string
	if phase == phaseOperating {
		inspected = granted.Mul(decimal.NewFromFloat(f.Float64(0.9, 1))).Round(2)
		operation = f.DateRange(earliestOperation, g.snapshot).Format(values.ISODateLayout)
	} else {
		planned := f.DateRange(g.snapshot, g.snapshot.AddDate(5, 0, 0)).Format(values.ISODateLayout)
		operation = f.Nullable(planned, 0.5)
	}
	guarantee := granted.Mul(decimal.NewFromFloat(f.Float64(0.3, 0.7)))

	qualified := "Não"
	if f.Int(1, 10) == 1 {
		qualified = "Sim"
	}

	return ExtractRow{
		SnapshotDate:        g.snapshot.Format(values.ISODateLayout),
		FacilityName:        kind.code + " " + f.LastName() + Choose(f, nameSuffixes),
		CEGCore:             fmt.Sprintf("%06d", seq),
		FacilityCode:        fmt.Sprintf("%s.%s.%s.%06d-%d.01", kind.code, kind.fuelCode, reg.state, seq, seq%10),
		State:               reg.state,
		GenerationType:      kind.code,
		PlantPhase:          phase,
		FuelOrigin:          kind.origin,
		FuelSource:          kind.source,
		GrantType:           ChooseWeighted(f, grantTypes, grantWeights),
		FuelName:            kind.fuel,
		OperationDate:       operation,
		GrantedPower:        values.FormatDecimal(granted),
		InspectedPower:      values.FormatDecimal(inspected),
		PhysicalGuarantee:   f.Nullable(values.FormatDecimal(guarantee), 0.3),
		Qualified:           qualified,
		Latitude:            coordinate(reg.lat + f.Float64(-1.5, 1.5)),
		Longitude:           coordinate(reg.lon + f.Float64(-1.5, 1.5)),
		ParticipationRegime: ChooseWeighted(f, regimes, regimeWeights),
		SubBasin:            reg.basin,
		Municipality:        Choose(f, reg.municipalities) + " - " + reg.state,
	}
}

func coordinate(v float64) string {
	return strings.Replace(decimal.NewFromFloat(v).StringFixed(6), ".", values.DecimalSeparator, 1)
}

// Summary describes a written extract.
type Summary struct {
	Path  string
	Rows  int
	Bytes int64
}

// WriteFile writes a complete extract to path, creating its directory.
func WriteFile(ctx context.Context, path string, charset encoding.Encoding, opts Options) (*Summary, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	table, err := output.Create[ExtractRow](path, charset)
	if err != nil {
		return nil, err
	}

	genErr := NewGenerator(opts).Generate(ctx, table)
	if err := table.Close(); err != nil && genErr == nil {
		genErr = err
	}
	if genErr != nil {
		return nil, genErr
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	logging.Info().
		Str("path", path).
		Int("rows", table.Rows()).
		Str("size", FormatSize(info.Size())).
		Msg("Sample extract written")

	return &Summary{Path: path, Rows: table.Rows(), Bytes: info.Size()}, nil
}

// FormatSize formats a byte count as a human-readable string.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
