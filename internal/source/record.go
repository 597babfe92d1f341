//-------------------------------------------------------------------------
//
// SIGA Star Schema Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package source reads SIGA generation-facility extracts.
package source

// Column names of the SIGA extract. Some are misspelled in the published
// dataset and must be matched as-is.
const (
	ColGenerationType      = "SigTipoGeracao"
	ColFuelOrigin          = "DscOrigemCombustivel"
	ColFuelSource          = "DscFonteCombustivel"
	ColPlantPhase          = "DscFaseUsina"
	ColGrantType           = "DscTipoOutorga"
	ColQualified           = "IdcGeracaoQualificada"
	ColState               = "SigUFPrincipal"
	ColMunicipality        = "DscMuninicpios"
	ColFacilityCode        = "CodCEG"
	ColFacilityName        = "NomEmpreendimento"
	ColParticipationRegime = "DscPropriRegimePariticipacao"
	ColOperationDate       = "DatEntradaOperacao"
	ColGrantedPower        = "MdaPotenciaOutorgadaKw"
	ColInspectedPower      = "MdaPotenciaFiscalizadaKw"
	ColPhysicalGuarantee   = "MdaGarantiaFisicaKw"
)

// RequiredColumns lists every column the pipeline reads.
var RequiredColumns = []string{
	ColGenerationType,
	ColFuelOrigin,
	ColFuelSource,
	ColPlantPhase,
	ColGrantType,
	ColQualified,
	ColState,
	ColMunicipality,
	ColFacilityCode,
	ColFacilityName,
	ColParticipationRegime,
	ColOperationDate,
	ColGrantedPower,
	ColInspectedPower,
	ColPhysicalGuarantee,
}

// Record is one trimmed row of the extract. Values are kept as text; the
// values package interprets dates and decimals.
type Record struct {
	GenerationType      string `csv:"SigTipoGeracao"`
	FuelOrigin          string `csv:"DscOrigemCombustivel"`
	FuelSource          string `csv:"DscFonteCombustivel"`
	PlantPhase          string `csv:"DscFaseUsina"`
	GrantType           string `csv:"DscTipoOutorga"`
	Qualified           string `csv:"IdcGeracaoQualificada"`
	State               string `csv:"SigUFPrincipal"`
	Municipality        string `csv:"DscMuninicpios"`
	FacilityCode        string `csv:"CodCEG"`
	FacilityName        string `csv:"NomEmpreendimento"`
	ParticipationRegime string `csv:"DscPropriRegimePariticipacao"`
	OperationDate       string `csv:"DatEntradaOperacao"`
	GrantedPower        string `csv:"MdaPotenciaOutorgadaKw"`
	InspectedPower      string `csv:"MdaPotenciaFiscalizadaKw"`
	PhysicalGuarantee   string `csv:"MdaGarantiaFisicaKw"`

	// Line is the 1-based line of the record in the source file.
	Line int `csv:"-"`
}
