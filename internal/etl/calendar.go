package etl

import (
	"time"

	"github.com/pgEdge/siga-starschema/internal/output"
	"github.com/pgEdge/siga-starschema/internal/schema"
	"github.com/pgEdge/siga-starschema/internal/values"
)

// NewCalendarRow derives the calendar row of day d.
func NewCalendarRow(d time.Time, loc schema.Locale) schema.CalendarRow {
	return schema.CalendarRow{
		DateKey:   values.DateKey(d),
		Date:      d.Format(values.ISODateLayout),
		Year:      d.Year(),
		Month:     int(d.Month()),
		MonthName: loc.MonthName(d.Month()),
		Day:       d.Day(),
		Weekday:   loc.WeekdayName(d.Weekday()),
		Quarter:   loc.QuarterLabel(d.Month()),
	}
}

// GenerateCalendar writes one row per day of r, in date order, and returns
// the number of rows written.
func GenerateCalendar(r DateRange, loc schema.Locale, w output.RowWriter[schema.CalendarRow]) (int, error) {
	n := 0
	for d := r.From; !d.After(r.To); d = d.AddDate(0, 0, 1) {
		if err := w.Write(NewCalendarRow(d, loc)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
