package etl

import (
	"errors"

	"github.com/pgEdge/siga-starschema/internal/logging"
	"github.com/pgEdge/siga-starschema/internal/output"
	"github.com/pgEdge/siga-starschema/internal/schema"
	"github.com/pgEdge/siga-starschema/internal/source"
	"github.com/pgEdge/siga-starschema/internal/values"
)

// ErrRegistriesNotFrozen is returned when the fact pass is started before
// the dimension pass has finished.
var ErrRegistriesNotFrozen = errors.New("dimension registries are not frozen")

// FactEmitter performs the second pass: one fact row per record, with
// dimension keys replaced by the ids assigned in the first pass.
type FactEmitter struct {
	reg        *schema.Registries
	out        output.RowWriter[schema.FactRow]
	unresolved int
}

// NewFactEmitter creates a fact emitter. reg must have been frozen by
// DimensionEmitter.Finish.
func NewFactEmitter(reg *schema.Registries, out output.RowWriter[schema.FactRow]) (*FactEmitter, error) {
	for _, r := range reg.All() {
		if !r.Frozen() {
			return nil, ErrRegistriesNotFrozen
		}
	}
	return &FactEmitter{reg: reg, out: out}, nil
}

// Project maps a record to its fact row. Keys missing from a registry
// resolve to schema.Unresolved.
func (e *FactEmitter) Project(rec source.Record) schema.FactRow {
	return schema.FactRow{
		GenerationID:      e.resolve(e.reg.Generation, schema.GenerationKey(rec), rec),
		StatusID:          e.resolve(e.reg.Status, schema.StatusKey(rec), rec),
		LocationID:        e.resolve(e.reg.Location, schema.LocationKey(rec), rec),
		FacilityCode:      rec.FacilityCode,
		DateKey:           values.DateKeyOf(rec.OperationDate),
		GrantedPower:      values.ParseDecimal(rec.GrantedPower),
		InspectedPower:    values.ParseDecimal(rec.InspectedPower),
		PhysicalGuarantee: values.ParseDecimal(rec.PhysicalGuarantee),
		Count:             1,
	}
}

// Emit writes the fact row of rec.
func (e *FactEmitter) Emit(rec source.Record) error {
	return e.out.Write(e.Project(rec))
}

// Unresolved returns how many foreign keys could not be resolved.
func (e *FactEmitter) Unresolved() int {
	return e.unresolved
}

func (e *FactEmitter) resolve(reg *schema.Registry, key string, rec source.Record) int {
	id := reg.Resolve(key)
	if id == schema.Unresolved {
		e.unresolved++
		logging.Warn().
			Str("dimension", reg.Name()).
			Str("key", key).
			Int("line", rec.Line).
			Msg("Unresolved dimension key")
	}
	return id
}
