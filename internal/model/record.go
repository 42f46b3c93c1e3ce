package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is a provider payload adapted to a common shape
type Record interface {
	RecordKind() Kind
}

// Address is the result of a postal code lookup
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	IBGECode     string `json:"ibge_code,omitempty"`
	AreaCode     string `json:"ddd,omitempty"`
}

func (Address) RecordKind() Kind { return KindCEP }

// Partner is a member of a company's ownership structure
type Partner struct {
	Name          string `json:"name"`
	Qualification string `json:"qualification,omitempty"`
}

// Company is the result of a company registry lookup
type Company struct {
	CNPJ             string          `json:"cnpj"`
	LegalName        string          `json:"legal_name"`
	TradeName        string          `json:"trade_name,omitempty"`
	Status           string          `json:"status,omitempty"`
	OpenedOn         string          `json:"opened_on,omitempty"`
	ShareCapital     decimal.Decimal `json:"share_capital"`
	MainActivity     string          `json:"main_activity,omitempty"`
	MainActivityCode string          `json:"main_activity_code,omitempty"`
	Street           string          `json:"street,omitempty"`
	Number           string          `json:"number,omitempty"`
	Complement       string          `json:"complement,omitempty"`
	Neighborhood     string          `json:"neighborhood,omitempty"`
	City             string          `json:"city,omitempty"`
	State            string          `json:"state,omitempty"`
	CEP              string          `json:"cep,omitempty"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	Partners         []Partner       `json:"partners,omitempty"`
}

func (Company) RecordKind() Kind { return KindCNPJ }

// IsActive returns true when the registry status is ATIVA
func (c Company) IsActive() bool {
	return c.Status == "ATIVA"
}

// Bank is a participant of the Brazilian payment system
type Bank struct {
	Code     string `json:"code"`
	ISPB     string `json:"ispb"`
	Name     string `json:"name"`
	FullName string `json:"full_name,omitempty"`
}

func (Bank) RecordKind() Kind { return KindBank }

// Banks is the full bank directory
type Banks []Bank

func (Banks) RecordKind() Kind { return KindBanks }

// AreaCode is the geography served by a DDD
type AreaCode struct {
	Code   string   `json:"ddd"`
	State  string   `json:"state"`
	Cities []string `json:"cities"`
}

func (AreaCode) RecordKind() Kind { return KindDDD }

// Holiday is a national public holiday
type Holiday struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// Holidays is the holiday calendar of one year, sorted by date
type Holidays []Holiday

func (Holidays) RecordKind() Kind { return KindHolidays }

// On returns the holiday falling on the given calendar day
func (h Holidays) On(day time.Time) (Holiday, bool) {
	y, m, d := day.Date()
	for _, hol := range h {
		hy, hm, hd := hol.Date.Date()
		if hy == y && hm == m && hd == d {
			return hol, true
		}
	}
	return Holiday{}, false
}

// State is a federative unit
type State struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

// States is the list of federative units
type States []State

func (States) RecordKind() Kind { return KindStates }

// Municipality is an IBGE municipality
type Municipality struct {
	Name     string `json:"name"`
	IBGECode string `json:"ibge_code"`
}

// Municipalities lists the municipalities of one state
type Municipalities []Municipality

func (Municipalities) RecordKind() Kind { return KindMunicipalities }

// VehiclePrice is one FIPE table entry
type VehiclePrice struct {
	FIPECode       string          `json:"fipe_code"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	ModelYear      int             `json:"model_year"`
	Fuel           string          `json:"fuel"`
	FuelCode       string          `json:"fuel_code,omitempty"`
	ReferenceMonth string          `json:"reference_month"`
	VehicleType    int             `json:"vehicle_type"`
	Price          decimal.Decimal `json:"price"`
}

// RecordKind is KindFIPEVehicle; a lone price comes from the brand/model/year path
func (VehiclePrice) RecordKind() Kind { return KindFIPEVehicle }

// VehiclePrices holds every model year priced under one FIPE code
type VehiclePrices []VehiclePrice

func (VehiclePrices) RecordKind() Kind { return KindFIPE }

// Brand is a vehicle manufacturer in the FIPE table
type Brand struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Brands lists the manufacturers of one vehicle type
type Brands []Brand

func (Brands) RecordKind() Kind { return KindFIPEBrands }

// VehicleModel is one model of a FIPE brand
type VehicleModel struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// VehicleModels lists the models of one brand
type VehicleModels []VehicleModel

func (VehicleModels) RecordKind() Kind { return KindFIPEModels }

// ModelYear is a model year and fuel combination, coded like 2014-1
type ModelYear struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ModelYears lists the priced years of one model
type ModelYears []ModelYear

func (ModelYears) RecordKind() Kind { return KindFIPEYears }
