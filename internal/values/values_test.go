//-------------------------------------------------------------------------
//
// SIGA Star Schema Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package values

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"thousands and fraction", "1.234,56", "1234.56"},
		{"fraction only", "0,5", "0.5"},
		{"integer", "10", "10"},
		{"millions", "1.000.000,01", "1000000.01"},
		{"negative", "-2,345", "-2.345"},
		{"empty", "", "0"},
		{"garbage", "abc", "0"},
		{"two commas", "1,2,3", "0"},
		{"dot is never decimal", "3.5", "35"},
		{"trailing comma", "12,", "12"},
		{"leading comma", ",75", "0.75"},
		{"exponent", "1e900000000", "0"},
		{"exponent after comma", "1,5E3", "0"},
		{"infinity", "Infinity", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecimal(tt.input)
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParseDecimal(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseDecimalNumericValue(t *testing.T) {
	got := ParseDecimal("1.234,56").InexactFloat64()
	if got != 1234.56 {
		t.Errorf("Expected 1234.56, got %v", got)
	}
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1234.56", "1234,56"},
		{"0", "0,00"},
		{"10", "10,00"},
		{"0.125", "0,13"},
		{"1.005", "1,01"},
		{"-2.345", "-2,35"},
		{"1000000.1", "1000000,10"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FormatDecimal(decimal.RequireFromString(tt.input))
			if got != tt.want {
				t.Errorf("FormatDecimal(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	if got := FormatDecimal(ParseDecimal("1.234,56")); got != "1234,56" {
		t.Errorf("Expected '1234,56', got '%s'", got)
	}
	if got := FormatDecimal(ParseDecimal("1e900000000")); got != "0,00" {
		t.Errorf("Expected '0,00' for exponent input, got '%s'", got)
	}
	if got := FormatDecimal(ParseDecimal("not a number")); got != "0,00" {
		t.Errorf("Expected '0,00', got '%s'", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"timestamp suffix", "2020-06-15T00:00:00", time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"plain date", "1999-12-31", time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"space suffix", "2001-01-02 10:00", time.Date(2001, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"too short", "2020-06-1", time.Time{}, false},
		{"invalid month", "2020-13-01", time.Time{}, false},
		{"invalid day", "2021-02-29", time.Time{}, false},
		{"not a date", "15/06/2020", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateKeyOf(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2020-06-15T00:00:00", 20200615},
		{"1970-01-01", 19700101},
		{"2024-12-09", 20241209},
		{"", NoDateKey},
		{"2020", NoDateKey},
		{"2020-02-30", NoDateKey},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DateKeyOf(tt.input); got != tt.want {
				t.Errorf("DateKeyOf(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSentinelsOutsideParseableRange(t *testing.T) {
	lo, _ := ParseDate("0000-01-01")
	hi, _ := ParseDate("9999-12-31")

	if !MinDate.Before(lo) {
		t.Errorf("MinDate %v should precede %v", MinDate, lo)
	}
	if !MaxDate.After(hi) {
		t.Errorf("MaxDate %v should follow %v", MaxDate, hi)
	}
}
