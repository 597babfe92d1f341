package etl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding"

	"github.com/pgEdge/siga-starschema/internal/logging"
	"github.com/pgEdge/siga-starschema/internal/output"
	"github.com/pgEdge/siga-starschema/internal/schema"
	"github.com/pgEdge/siga-starschema/internal/source"
)

// Files names the output tables, relative to Options.OutputDir.
type Files struct {
	Generation string
	Status     string
	Location   string
	Facility   string
	Calendar   string
	Fact       string
}

// Options configures a pipeline run.
type Options struct {
	// Source is the path of the extract.
	Source string

	// Charset is the IANA name of the charset of the extract and of
	// every output table.
	Charset string

	// OutputDir receives the tables; it is created if missing.
	OutputDir string

	Files Files

	// Rejects, when set, names a table receiving the malformed rows found
	// by the dimension pass.
	Rejects string

	// Locale renders calendar names.
	Locale schema.Locale

	// ProgressInterval is how often, in rows, progress is logged.
	ProgressInterval int64
}

// RejectRow is a row of the rejects table.
type RejectRow struct {
	Line   int    `csv:"Linha"`
	Reason string `csv:"Motivo"`
	Raw    string `csv:"Registro"`
}

// TableResult describes one written table.
type TableResult struct {
	Name string
	Path string
	Rows int
}

// Result summarizes a run.
type Result struct {
	Tables []TableResult

	// Records is the number of records read by the dimension pass.
	Records int

	// Skipped counts malformed rows skipped by the dimension pass.
	Skipped int

	// FactSkipped counts malformed rows skipped by the fact pass.
	FactSkipped int

	// Unresolved counts fact foreign keys written as schema.Unresolved.
	Unresolved int

	// Dates is the commissioning date range; valid only if HasDates.
	Dates    DateRange
	HasDates bool

	// Registries are the frozen registries of the run.
	Registries *schema.Registries

	Elapsed time.Duration
}

// Pipeline converts one extract into the star schema.
type Pipeline struct {
	opts Options
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// Run executes both passes. Each run starts from empty registries and
// rewrites every output table. Any I/O failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	charset, err := source.LookupCharset(p.opts.Charset)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.outputDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	res := &Result{Registries: schema.NewRegistries()}

	logging.Info().
		Str("source", p.opts.Source).
		Str("output_dir", p.outputDir()).
		Msg("Discovering dimensions")
	if err := p.discoverDimensions(ctx, charset, res); err != nil {
		return nil, fmt.Errorf("dimension pass failed: %w", err)
	}

	if res.HasDates {
		logging.Info().
			Str("from", res.Dates.From.Format(time.DateOnly)).
			Str("to", res.Dates.To.Format(time.DateOnly)).
			Msg("Generating calendar")
		if err := p.generateCalendar(charset, res); err != nil {
			return nil, fmt.Errorf("calendar generation failed: %w", err)
		}
	} else {
		logging.Warn().Msg("No valid commissioning date found; calendar skipped")
		if err := p.removeStale(p.opts.Files.Calendar); err != nil {
			return nil, err
		}
	}

	logging.Info().Msg("Emitting facts")
	if err := p.emitFacts(ctx, charset, res); err != nil {
		return nil, fmt.Errorf("fact pass failed: %w", err)
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

func (p *Pipeline) discoverDimensions(ctx context.Context, charset encoding.Encoding, res *Result) (err error) {
	src, err := source.Open(p.opts.Source, charset)
	if err != nil {
		return err
	}
	defer src.Close()

	gen, err := output.Create[schema.GenerationRow](p.path(p.opts.Files.Generation), charset)
	if err != nil {
		return err
	}
	defer closeTable(gen, &err)

	status, err := output.Create[schema.StatusRow](p.path(p.opts.Files.Status), charset)
	if err != nil {
		return err
	}
	defer closeTable(status, &err)

	loc, err := output.Create[schema.LocationRow](p.path(p.opts.Files.Location), charset)
	if err != nil {
		return err
	}
	defer closeTable(loc, &err)

	fac, err := output.Create[schema.FacilityRow](p.path(p.opts.Files.Facility), charset)
	if err != nil {
		return err
	}
	defer closeTable(fac, &err)

	scan := scanner{name: "dimensions", progressInterval: p.opts.ProgressInterval}
	if p.opts.Rejects != "" {
		var rejects *output.Table[RejectRow]
		rejects, err = output.Create[RejectRow](p.path(p.opts.Rejects), charset)
		if err != nil {
			return err
		}
		defer closeTable(rejects, &err)

		scan.onMalformed = func(m *source.MalformedRecordError) error {
			return rejects.Write(RejectRow{
				Line:   m.Line,
				Reason: m.Err.Error(),
				Raw:    strings.Join(m.Raw, string(source.Delimiter)),
			})
		}
	}

	emitter := NewDimensionEmitter(res.Registries, DimensionWriters{
		Generation: gen,
		Status:     status,
		Location:   loc,
		Facility:   fac,
	})

	stats, err := scan.run(ctx, src, emitter.Emit)
	if err != nil {
		return err
	}
	res.Dates, res.HasDates = emitter.Finish()
	res.Records = stats.Records
	res.Skipped = stats.Skipped

	res.Tables = append(res.Tables,
		TableResult{Name: schema.DimGeneration, Path: gen.Path(), Rows: gen.Rows()},
		TableResult{Name: schema.DimStatus, Path: status.Path(), Rows: status.Rows()},
		TableResult{Name: schema.DimLocation, Path: loc.Path(), Rows: loc.Rows()},
		TableResult{Name: schema.DimFacility, Path: fac.Path(), Rows: fac.Rows()},
	)
	return nil
}

func (p *Pipeline) generateCalendar(charset encoding.Encoding, res *Result) (err error) {
	cal, err := output.Create[schema.CalendarRow](p.path(p.opts.Files.Calendar), charset)
	if err != nil {
		return err
	}
	defer closeTable(cal, &err)

	n, err := GenerateCalendar(res.Dates, p.opts.Locale, cal)
	if err != nil {
		return err
	}
	res.Tables = append(res.Tables, TableResult{Name: schema.DimCalendar, Path: cal.Path(), Rows: n})
	return nil
}

func (p *Pipeline) emitFacts(ctx context.Context, charset encoding.Encoding, res *Result) (err error) {
	src, err := source.Open(p.opts.Source, charset)
	if err != nil {
		return err
	}
	defer src.Close()

	fact, err := output.Create[schema.FactRow](p.path(p.opts.Files.Fact), charset)
	if err != nil {
		return err
	}
	defer closeTable(fact, &err)

	emitter, err := NewFactEmitter(res.Registries, fact)
	if err != nil {
		return err
	}

	scan := scanner{name: "facts", progressInterval: p.opts.ProgressInterval, quiet: true}
	stats, err := scan.run(ctx, src, emitter.Emit)
	if err != nil {
		return err
	}
	res.FactSkipped = stats.Skipped
	res.Unresolved = emitter.Unresolved()

	res.Tables = append(res.Tables, TableResult{Name: schema.FactTable, Path: fact.Path(), Rows: fact.Rows()})
	return nil
}

// removeStale deletes an output left by an earlier run.
func (p *Pipeline) removeStale(file string) error {
	err := os.Remove(p.path(file))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale %s: %w", file, err)
	}
	return nil
}

func (p *Pipeline) outputDir() string {
	if p.opts.OutputDir == "" {
		return "."
	}
	return p.opts.OutputDir
}

func (p *Pipeline) path(file string) string {
	return filepath.Join(p.outputDir(), file)
}

func closeTable(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
