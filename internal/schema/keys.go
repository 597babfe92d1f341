//-------------------------------------------------------------------------
//
// SIGA Star Schema Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package schema defines the star schema built from SIGA extracts: the
// dimension and fact rows, the composite keys used to deduplicate
// dimensions, and the registries that assign surrogate ids.
package schema

import (
	"strings"

	"github.com/pgEdge/siga-starschema/internal/source"
)

const (
	// KeySeparator joins the fields of a composite key. Values containing
	// it may collide; the extract does not use it inside key fields.
	KeySeparator = ";"

	// QualificationPlaceholder replaces a blank qualified-generation
	// indicator.
	QualificationPlaceholder = "N/A"
)

// Qualification returns the record's qualified-generation indicator, or
// QualificationPlaceholder when it is blank.
func Qualification(rec source.Record) string {
	if strings.TrimSpace(rec.Qualified) == "" {
		return QualificationPlaceholder
	}
	return rec.Qualified
}

// GenerationKey identifies a Generation dimension row.
func GenerationKey(rec source.Record) string {
	return joinKey(rec.GenerationType, rec.FuelOrigin, rec.FuelSource)
}

// StatusKey identifies a Status dimension row.
func StatusKey(rec source.Record) string {
	return joinKey(rec.PlantPhase, rec.GrantType, Qualification(rec))
}

// LocationKey identifies a Location dimension row.
func LocationKey(rec source.Record) string {
	return joinKey(rec.State, rec.Municipality)
}

// FacilityKey is the natural key of the Facility dimension.
func FacilityKey(rec source.Record) string {
	return rec.FacilityCode
}

func joinKey(fields ...string) string {
	return strings.Join(fields, KeySeparator)
}
