package schema

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
)

// Locale holds the names used to render calendar rows. Rendering never
// depends on the host locale.
type Locale struct {
	Tag           language.Tag
	Months        [12]string
	Weekdays      [7]string // indexed by time.Weekday, Sunday first
	QuarterPrefix string
}

// BrazilianPortuguese renders calendar names in pt-BR.
var BrazilianPortuguese = Locale{
	Tag: language.BrazilianPortuguese,
	Months: [12]string{
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	},
	Weekdays: [7]string{
		"domingo", "segunda-feira", "terça-feira", "quarta-feira",
		"quinta-feira", "sexta-feira", "sábado",
	},
	QuarterPrefix: "T",
}

// MonthName returns the full name of m.
func (l Locale) MonthName(m time.Month) string {
	return l.Months[m-1]
}

// WeekdayName returns the full name of d.
func (l Locale) WeekdayName(d time.Weekday) string {
	return l.Weekdays[d]
}

// QuarterLabel returns the label of the quarter containing m, e.g. "T3".
func (l Locale) QuarterLabel(m time.Month) string {
	return l.QuarterPrefix + strconv.Itoa(1+(int(m)-1)/3)
}
