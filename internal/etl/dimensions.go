package etl

import (
	"errors"
	"fmt"
	"time"

	"github.com/pgEdge/siga-starschema/internal/output"
	"github.com/pgEdge/siga-starschema/internal/schema"
	"github.com/pgEdge/siga-starschema/internal/source"
	"github.com/pgEdge/siga-starschema/internal/values"
)

// EmitterState is the lifecycle state of a DimensionEmitter.
type EmitterState int

const (
	StateInit EmitterState = iota
	StateScanning
	StateDone
)

func (s EmitterState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateScanning:
		return "scanning"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("EmitterState(%d)", int(s))
	}
}

// ErrEmitterDone is returned by Emit after Finish.
var ErrEmitterDone = errors.New("dimension emitter is done")

// DimensionWriters receives newly discovered dimension rows.
type DimensionWriters struct {
	Generation output.RowWriter[schema.GenerationRow]
	Status     output.RowWriter[schema.StatusRow]
	Location   output.RowWriter[schema.LocationRow]
	Facility   output.RowWriter[schema.FacilityRow]
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Days returns the number of days in the range.
func (r DateRange) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// DimensionEmitter performs the first pass. Each record registers its
// dimension keys; a key seen for the first time gets the next id and its
// row is written immediately, so every dimension file is in id order.
type DimensionEmitter struct {
	reg   *schema.Registries
	out   DimensionWriters
	state EmitterState

	minDate time.Time
	maxDate time.Time
}

// NewDimensionEmitter creates an emitter that fills reg and writes to out.
func NewDimensionEmitter(reg *schema.Registries, out DimensionWriters) *DimensionEmitter {
	return &DimensionEmitter{
		reg:     reg,
		out:     out,
		state:   StateInit,
		minDate: values.MaxDate,
		maxDate: values.MinDate,
	}
}

// State returns the current lifecycle state.
func (e *DimensionEmitter) State() EmitterState {
	return e.state
}

// Emit processes one record.
func (e *DimensionEmitter) Emit(rec source.Record) error {
	if e.state == StateDone {
		return ErrEmitterDone
	}
	e.state = StateScanning

	err := emitRow(e.reg.Generation, schema.GenerationKey(rec), e.out.Generation,
		func(id int) schema.GenerationRow {
			return schema.GenerationRow{
				ID:         id,
				Type:       rec.GenerationType,
				FuelOrigin: rec.FuelOrigin,
				FuelSource: rec.FuelSource,
			}
		})
	if err != nil {
		return err
	}

	err = emitRow(e.reg.Status, schema.StatusKey(rec), e.out.Status,
		func(id int) schema.StatusRow {
			return schema.StatusRow{
				ID:            id,
				PlantPhase:    rec.PlantPhase,
				GrantType:     rec.GrantType,
				Qualification: schema.Qualification(rec),
			}
		})
	if err != nil {
		return err
	}

	err = emitRow(e.reg.Location, schema.LocationKey(rec), e.out.Location,
		func(id int) schema.LocationRow {
			return schema.LocationRow{
				ID:           id,
				State:        rec.State,
				Municipality: rec.Municipality,
			}
		})
	if err != nil {
		return err
	}

	err = emitRow(e.reg.Facility, schema.FacilityKey(rec), e.out.Facility,
		func(int) schema.FacilityRow {
			return schema.FacilityRow{
				Code:                rec.FacilityCode,
				Name:                rec.FacilityName,
				ParticipationRegime: rec.ParticipationRegime,
			}
		})
	if err != nil {
		return err
	}

	if d, ok := values.ParseDate(rec.OperationDate); ok {
		if d.Before(e.minDate) {
			e.minDate = d
		}
		if d.After(e.maxDate) {
			e.maxDate = d
		}
	}
	return nil
}

// Finish ends the pass and freezes the registries. It returns the range of
// commissioning dates seen, or false if no record had a usable date.
func (e *DimensionEmitter) Finish() (DateRange, bool) {
	e.state = StateDone
	e.reg.Freeze()

	if e.minDate.Equal(values.MaxDate) {
		return DateRange{}, false
	}
	return DateRange{From: e.minDate, To: e.maxDate}, true
}

func emitRow[T any](reg *schema.Registry, key string, w output.RowWriter[T], build func(id int) T) error {
	id, added, err := reg.Register(key)
	if err != nil || !added {
		return err
	}
	if err := w.Write(build(id)); err != nil {
		return fmt.Errorf("%s dimension: %w", reg.Name(), err)
	}
	return nil
}
