package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"golang.org/x/text/encoding"
)

// Delimiter separates fields in the extract and in every output table.
const Delimiter = ';'

var (
	// ErrMalformedRecord is matched by every row-level read error.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrEmptySource is returned when the source has no header row.
	ErrEmptySource = errors.New("source has no header row")
)

// MalformedRecordError describes a row that could not be read, typically
// because its field count differs from the header's. Reading may continue
// with the next row.
type MalformedRecordError struct {
	Line int
	Raw  []string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %v", e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

// MissingColumnsError is returned when the header lacks required columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "source header is missing columns: " + strings.Join(e.Columns, ", ")
}

// trimReader trims every field and remembers the last raw row so that
// malformed rows can be reported.
type trimReader struct {
	r    *csv.Reader
	last []string
}

func (t *trimReader) Read() ([]string, error) {
	record, err := t.r.Read()
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	t.last = record
	return record, err
}

// Reader decodes records from a SIGA extract.
type Reader struct {
	csv    *csv.Reader
	in     *trimReader
	dec    *csvutil.Decoder
	closer io.Closer
}

// NewReader reads and validates the header of r. enc converts the source
// charset to UTF-8; nil means the input is already UTF-8.
func NewReader(r io.Reader, enc encoding.Encoding) (*Reader, error) {
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}

	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	// Quotes inside unquoted fields are literal text (PCH "Boa Vista").
	cr.LazyQuotes = true
	in := &trimReader{r: cr}

	dec, err := csvutil.NewDecoder(in)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySource
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if missing := missingColumns(dec.Header()); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	return &Reader{csv: cr, in: in, dec: dec}, nil
}

// Open opens the extract at path. The returned Reader owns the file.
func Open(path string, enc encoding.Encoding) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}

	r, err := NewReader(f, enc)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f
	return r, nil
}

// Header returns the trimmed header row.
func (r *Reader) Header() []string {
	return r.dec.Header()
}

// Next returns the next record. It returns io.EOF after the last record and
// a *MalformedRecordError for rows that cannot be decoded; any other error
// is an I/O failure.
func (r *Reader) Next() (Record, error) {
	var rec Record
	err := r.dec.Decode(&rec)
	if err == nil {
		rec.Line, _ = r.csv.FieldPos(0)
		return rec, nil
	}
	if errors.Is(err, io.EOF) {
		return Record{}, io.EOF
	}

	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return Record{}, &MalformedRecordError{
			Line: perr.StartLine,
			Raw:  r.in.last,
			Err:  perr.Err,
		}
	}
	return Record{}, fmt.Errorf("failed to read source: %w", err)
}

// Close releases the underlying file, if the Reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
