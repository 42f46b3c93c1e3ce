// Package tucano provides a public API for validating, formatting and
// resolving Brazilian identification data.
//
// Offline helpers validate and format identifiers without any network
// access. The Client resolves identifiers against public reference
// services with ordered provider fallback.
//
// Example usage:
//
//	if tucano.ValidateCPF("529.982.247-25") {
//	    fmt.Println("valid")
//	}
//
//	client := tucano.NewClient(tucano.DefaultOptions())
//	addr, err := client.LookupCEP(ctx, "01001-000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(addr.City)
package tucano

import (
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/pix"
	"github.com/rezonia/tucano/internal/resolver"
)

// Re-export core types for public API
type (
	Kind        = model.Kind
	PhoneNumber = model.PhoneNumber
	PhoneType   = model.PhoneType
	Plate       = model.Plate
	PlateFormat = model.PlateFormat
	PixKey      = model.PixKey
	PixKeyType  = model.PixKeyType
	PixInfo     = pix.Info
	PixResult   = pix.BatchResult
	Record      = model.Record
	Resolution  = resolver.Resolution
	Attempt     = resolver.Attempt
	Outcome     = resolver.Outcome
)

// Re-export record types
type (
	Address      = model.Address
	Company      = model.Company
	Partner      = model.Partner
	Bank         = model.Bank
	AreaCode     = model.AreaCode
	Holiday      = model.Holiday
	State        = model.State
	Municipality = model.Municipality
	VehiclePrice = model.VehiclePrice
	VehicleBrand = model.Brand
	VehicleModel = model.VehicleModel
	ModelYear    = model.ModelYear

	Banks          = model.Banks
	Holidays       = model.Holidays
	States         = model.States
	Municipalities = model.Municipalities
	VehiclePrices  = model.VehiclePrices
	VehicleBrands  = model.Brands
	VehicleModels  = model.VehicleModels
	ModelYears     = model.ModelYears
)

// Re-export kinds
const (
	KindCPF            = model.KindCPF
	KindCNPJ           = model.KindCNPJ
	KindCEP            = model.KindCEP
	KindPhone          = model.KindPhone
	KindPlate          = model.KindPlate
	KindPix            = model.KindPix
	KindBank           = model.KindBank
	KindBanks          = model.KindBanks
	KindFIPE           = model.KindFIPE
	KindFIPEBrands     = model.KindFIPEBrands
	KindFIPEModels     = model.KindFIPEModels
	KindFIPEYears      = model.KindFIPEYears
	KindFIPEVehicle    = model.KindFIPEVehicle
	KindHolidays       = model.KindHolidays
	KindDDD            = model.KindDDD
	KindStates         = model.KindStates
	KindMunicipalities = model.KindMunicipalities
)

// Re-export enumerations
const (
	PhoneLandline = model.PhoneLandline
	PhoneMobile   = model.PhoneMobile

	PlateLegacy   = model.PlateLegacy
	PlateMercosul = model.PlateMercosul

	PixCPF    = model.PixCPF
	PixCNPJ   = model.PixCNPJ
	PixEmail  = model.PixEmail
	PixPhone  = model.PixPhone
	PixRandom = model.PixRandom
)

// Re-export error types
type (
	FormatError                  = model.FormatError
	ChecksumError                = model.ChecksumError
	UnknownAreaCodeError         = model.UnknownAreaCodeError
	UnrecognizedPixKeyError      = model.UnrecognizedPixKeyError
	NotFoundError                = model.NotFoundError
	ProviderUnavailableError     = model.ProviderUnavailableError
	AllProvidersUnavailableError = model.AllProvidersUnavailableError
	CancelledError               = model.CancelledError
	ErrorCategory                = model.ErrorCategory
)

// Re-export failure categories
const (
	CategoryTimeout  = model.CategoryTimeout
	CategoryNetwork  = model.CategoryNetwork
	CategoryStatus   = model.CategoryStatus
	CategoryBadData  = model.CategoryBadData
	CategoryNotFound = model.CategoryNotFound
)

// IsInputError reports whether err was caused by malformed input
func IsInputError(err error) bool {
	return model.IsInputError(err)
}
