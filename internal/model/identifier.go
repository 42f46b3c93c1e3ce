package model

// Kind names an identifier family or a lookup target
type Kind string

const (
	KindCPF            Kind = "cpf"
	KindCNPJ           Kind = "cnpj"
	KindCEP            Kind = "cep"
	KindPhone          Kind = "phone"
	KindPlate          Kind = "plate"
	KindPix            Kind = "pix"
	KindBank           Kind = "bank"
	KindBanks          Kind = "banks"
	KindFIPE           Kind = "fipe"
	KindFIPEBrands     Kind = "fipe_brands"
	KindFIPEModels     Kind = "fipe_models"
	KindFIPEYears      Kind = "fipe_years"
	KindFIPEVehicle    Kind = "fipe_vehicle"
	KindHolidays       Kind = "holidays"
	KindDDD            Kind = "ddd"
	KindStates         Kind = "states"
	KindMunicipalities Kind = "municipalities"
)

// String returns the kind name
func (k Kind) String() string {
	return string(k)
}

// PhoneType distinguishes landline and mobile numbers
type PhoneType string

const (
	PhoneLandline PhoneType = "landline"
	PhoneMobile   PhoneType = "mobile"
)

// PhoneNumber is a validated Brazilian phone number
type PhoneNumber struct {
	AreaCode   string    `json:"area_code"`
	Subscriber string    `json:"subscriber"`
	Type       PhoneType `json:"type"`
	State      string    `json:"state"`
}

// Digits returns area code and subscriber without punctuation
func (p PhoneNumber) Digits() string {
	return p.AreaCode + p.Subscriber
}

// IsMobile returns true for 11-digit mobile numbers
func (p PhoneNumber) IsMobile() bool {
	return p.Type == PhoneMobile
}

// PlateFormat identifies the vehicle plate layout
type PlateFormat string

const (
	PlateLegacy   PlateFormat = "legacy"
	PlateMercosul PlateFormat = "mercosul"
)

// Plate is a validated vehicle plate
type Plate struct {
	Value  string      `json:"value"`
	Format PlateFormat `json:"format"`
}

// PixKeyType is the variant of a PIX key
type PixKeyType string

const (
	PixCPF    PixKeyType = "cpf"
	PixCNPJ   PixKeyType = "cnpj"
	PixEmail  PixKeyType = "email"
	PixPhone  PixKeyType = "phone"
	PixRandom PixKeyType = "random"
)

// PixKey is a classified PIX key. Value holds the normalized key:
// digits for CPF, CNPJ and phone (without country code), lower-case for
// email and random keys.
type PixKey struct {
	Type  PixKeyType `json:"type"`
	Value string     `json:"value"`
}
