package schema

import (
	"github.com/shopspring/decimal"
)

// Table names, used in logs and summaries.
const (
	DimGeneration = "generation"
	DimStatus     = "status"
	DimLocation   = "location"
	DimFacility   = "facility"
	DimCalendar   = "calendar"
	FactTable     = "fact"
)

// GenerationRow is a row of the Generation dimension.
type GenerationRow struct {
	ID         int    `csv:"ID_Geracao"`
	Type       string `csv:"SigTipoGeracao"`
	FuelOrigin string `csv:"DscOrigemCombustivel"`
	FuelSource string `csv:"DscFonteCombustivel"`
}

// StatusRow is a row of the Status dimension.
type StatusRow struct {
	ID            int    `csv:"ID_Status"`
	PlantPhase    string `csv:"DscFaseUsina"`
	GrantType     string `csv:"DscTipoOutorga"`
	Qualification string `csv:"IdcGeracaoQualificada"`
}

// LocationRow is a row of the Location dimension.
type LocationRow struct {
	ID           int    `csv:"ID_Localizacao"`
	State        string `csv:"SigUFPrincipal"`
	Municipality string `csv:"DscMuninicpios"`
}

// FacilityRow is a row of the Facility dimension, keyed by its natural key.
type FacilityRow struct {
	Code                string `csv:"CodCEG"`
	Name                string `csv:"NomEmpreendimento"`
	ParticipationRegime string `csv:"DscPropriRegimePariticipacao"`
}

// CalendarRow is a row of the generated date dimension.
type CalendarRow struct {
	DateKey   int    `csv:"ChaveData"`
	Date      string `csv:"DataCompleta"`
	Year      int    `csv:"Ano"`
	Month     int    `csv:"MesNumero"`
	MonthName string `csv:"NomeMes"`
	Day       int    `csv:"Dia"`
	Weekday   string `csv:"DiaDaSemana"`
	Quarter   string `csv:"Trimestre"`
}

// FactRow is one row of the fact table; one per source record.
type FactRow struct {
	GenerationID      int             `csv:"ID_Geracao"`
	StatusID          int             `csv:"ID_Status"`
	LocationID        int             `csv:"ID_Localizacao"`
	FacilityCode      string          `csv:"CodCEG"`
	DateKey           int             `csv:"FK_DataOperacao"`
	GrantedPower      decimal.Decimal `csv:"MdaPotenciaOutorgadaKw"`
	InspectedPower    decimal.Decimal `csv:"MdaPotenciaFiscalizadaKw"`
	PhysicalGuarantee decimal.Decimal `csv:"MdaGarantiaFisicaKw"`
	Count             int             `csv:"QtdEmpreendimentos"`
}
