//-------------------------------------------------------------------------
//
// SIGA Star Schema Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package etl builds the star schema from a SIGA extract in two passes:
// dimension discovery, which also yields the calendar range, followed by
// fact emission against the frozen dimension registries.
package etl

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pgEdge/siga-starschema/internal/logging"
	"github.com/pgEdge/siga-starschema/internal/source"
)

// ContextCheckInterval is how often, in rows, a scan checks for
// cancellation.
var ContextCheckInterval = 100

// RecordSource yields source records; *source.Reader implements it.
type RecordSource interface {
	Next() (source.Record, error)
}

// ScanStats counts what a scan saw.
type ScanStats struct {
	Records int
	Skipped int
}

type scanner struct {
	name string

	// progressInterval is passed to logging.NewProgress.
	progressInterval int64

	// onMalformed is called for each skipped row; it may be nil.
	onMalformed func(*source.MalformedRecordError) error

	// quiet logs skipped rows at debug level instead of warn.
	quiet bool
}

// run reads src to the end, calling handle for every well-formed record.
// Malformed rows are skipped; any other error aborts the scan.
func (s scanner) run(ctx context.Context, src RecordSource, handle func(source.Record) error) (ScanStats, error) {
	var stats ScanStats
	progress := logging.NewProgress(s.name, 0, s.progressInterval)

	for row := 0; ; row++ {
		if row%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, fmt.Errorf("scan cancelled: %w", err)
			}
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var merr *source.MalformedRecordError
		if errors.As(err, &merr) {
			stats.Skipped++
			event := logging.Warn()
			if s.quiet {
				event = logging.Debug()
			}
			event.Str("pass", s.name).
				Int("line", merr.Line).
				Err(merr.Err).
				Msg("Skipping malformed record")

			if s.onMalformed != nil {
				if err := s.onMalformed(merr); err != nil {
					return stats, err
				}
			}
			continue
		}
		if err != nil {
			return stats, err
		}

		if err := handle(rec); err != nil {
			return stats, fmt.Errorf("line %d: %w", rec.Line, err)
		}
		stats.Records++
		progress.Add(1)
	}

	progress.Done()
	return stats, nil
}
