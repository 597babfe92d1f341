//-------------------------------------------------------------------------
//
// SIGA Star Schema Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package values parses and renders the scalar values found in SIGA
// extracts: Brazilian-formatted decimals and ISO commissioning dates.
package values

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// ThousandsSeparator is stripped from source decimals before parsing.
	ThousandsSeparator = "."

	// DecimalSeparator separates the fraction in both source and output.
	DecimalSeparator = ","

	// MetricPlaces is the number of fraction digits rendered for metrics.
	MetricPlaces = 2
)

// plainDecimal matches a normalized decimal without exponent.
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// ParseDecimal parses a decimal written with a comma as decimal separator
// and dots as thousands separators ("1.234,56"). Empty or malformed input
// yields zero; the function never fails. Exponent notation is malformed.
func ParseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	normalized := strings.ReplaceAll(s, ThousandsSeparator, "")
	normalized = strings.ReplaceAll(normalized, DecimalSeparator, ".")
	if !plainDecimal.MatchString(normalized) {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatDecimal renders d with MetricPlaces fraction digits, rounding half
// away from zero, using a comma as decimal separator and no grouping.
func FormatDecimal(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(MetricPlaces), ".", DecimalSeparator, 1)
}
