//-------------------------------------------------------------------------
//
// SIGA Star Schema Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package output writes star-schema tables as delimited text files.
package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"

	"github.com/pgEdge/siga-starschema/internal/source"
	"github.com/pgEdge/siga-starschema/internal/values"
)

// RowWriter accepts rows of one table.
type RowWriter[T any] interface {
	Write(row T) error
}

// Table writes rows of the tagged struct T, one per line, under a header
// derived from the struct's csv tags. Records end in CRLF and use the
// source delimiter.
type Table[T any] struct {
	path    string
	file    *os.File
	charset io.Closer
	csv     *csv.Writer
	enc     *csvutil.Encoder
	rows    int
}

// Create creates (or truncates) the file at path and writes the header.
// charset converts UTF-8 text to the output charset; nil writes UTF-8.
func Create[T any](path string, charset encoding.Encoding) (*Table[T], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	t, err := NewTable[T](f, charset)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.path = path
	t.file = f
	return t, nil
}

// NewTable writes a table to w. Close flushes the table but does not close
// w.
func NewTable[T any](w io.Writer, charset encoding.Encoding) (*Table[T], error) {
	t := &Table[T]{}

	if charset != nil {
		cw := encoding.ReplaceUnsupported(charset.NewEncoder()).Writer(w)
		if c, ok := cw.(io.Closer); ok {
			t.charset = c
		}
		w = cw
	}

	t.csv = csv.NewWriter(w)
	t.csv.Comma = source.Delimiter
	t.csv.UseCRLF = true

	t.enc = csvutil.NewEncoder(t.csv)
	t.enc.Register(func(d decimal.Decimal) ([]byte, error) {
		return []byte(values.FormatDecimal(d)), nil
	})

	var zero T
	if err := t.enc.EncodeHeader(zero); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return t, nil
}

// Write appends one row.
func (t *Table[T]) Write(row T) error {
	if err := t.enc.Encode(row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", t.rows+1, err)
	}
	t.rows++
	return nil
}

// Rows returns the number of rows written, header excluded.
func (t *Table[T]) Rows() int {
	return t.rows
}

// Path returns the file path, or "" for tables created with NewTable.
func (t *Table[T]) Path() string {
	return t.path
}

// Close flushes buffered rows and releases the file.
func (t *Table[T]) Close() error {
	t.csv.Flush()
	errs := []error{t.csv.Error()}
	if t.charset != nil {
		errs = append(errs, t.charset.Close())
	}
	if t.file != nil {
		errs = append(errs, t.file.Close())
	}

	if err := errors.Join(errs...); err != nil {
		if t.path != "" {
			return fmt.Errorf("failed to close %s: %w", t.path, err)
		}
		return fmt.Errorf("failed to close table: %w", err)
	}
	return nil
}
