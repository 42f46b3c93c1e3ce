package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	dec "github.com/rezonia/tucano/internal/decimal"
	"github.com/rezonia/tucano/internal/model"
)

type bankResponse struct {
	ISPB     string `json:"ispb"`
	Name     string `json:"name"`
	Code     *int   `json:"code"`
	FullName string `json:"fullName"`
}

func (b bankResponse) toModel() model.Bank {
	bank := model.Bank{ISPB: b.ISPB, Name: b.Name, FullName: b.FullName}
	if b.Code != nil {
		bank.Code = fmt.Sprintf("%03d", *b.Code)
	}
	return bank
}

type dddResponse struct {
	State  string   `json:"state"`
	Cities []string `json:"cities"`
}

type holidayResponse struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type stateResponse struct {
	Sigla  string `json:"sigla"`
	Nome   string `json:"nome"`
	Regiao struct {
		Nome string `json:"nome"`
	} `json:"regiao"`
}

type municipalityResponse struct {
	Nome       string `json:"nome"`
	CodigoIBGE string `json:"codigo_ibge"`
}

type fipePriceResponse struct {
	Valor            string `json:"valor"`
	Marca            string `json:"marca"`
	Modelo           string `json:"modelo"`
	AnoModelo        int    `json:"anoModelo"`
	Combustivel      string `json:"combustivel"`
	CodigoFipe       string `json:"codigoFipe"`
	MesReferencia    string `json:"mesReferencia"`
	TipoVeiculo      int    `json:"tipoVeiculo"`
	SiglaCombustivel string `json:"siglaCombustivel"`
}

type fipeBrandResponse struct {
	Codigo string `json:"codigo"`
	Nome   string `json:"nome"`
}

// fipeCode accepts the numeric and quoted codes Parallelum mixes across endpoints
type fipeCode string

func (c *fipeCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = fipeCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid FIPE code %s", data)
	}
	*c = fipeCode(n.String())
	return nil
}

type fipeEntryResponse struct {
	Codigo fipeCode `json:"codigo"`
	Nome   string   `json:"nome"`
}

type fipeModelsResponse struct {
	Modelos []fipeEntryResponse `json:"modelos"`
}

// NewBrasilAPIBank creates the bank-by-code provider
func NewBrasilAPIBank(opts ...Option) *HTTPProvider {
	return NewHTTPProvider("brasilapi-banks", model.KindBank, BrasilAPIBaseURL, "/api/banks/v1/{value}", decodeBank, opts...)
}

// NewBrasilAPIBanks creates the bank directory provider. The lookup value is ignored.
func NewBrasilAPIBanks(opts ...Option) *HTTPProvider {
	return NewHTTPProvider("brasilapi-banks", model.KindBanks, BrasilAPIBaseURL, "/api/banks/v1", decodeBanks, opts...)
}

// NewBrasilAPIDDD creates the area code geography provider
func NewBrasilAPIDDD(opts ...Option) *HTTPProvider {
	return NewHTTPProvider("brasilapi-ddd", model.KindDDD, BrasilAPIBaseURL, "/api/ddd/v1/{value}", decodeDDD, opts...)
}

// NewBrasilAPIHolidays creates the national holidays provider, keyed by year
func NewBrasilAPIHolidays(opts ...Option) *HTTPProvider {
	return NewHTTPProvider("brasilapi-holidays", model.KindHolidays, BrasilAPIBaseURL, "/api/feriados/v1/{value}", decodeHolidays, opts...)
}

// NewBrasilAPIStates creates the IBGE federative units provider. The lookup value is ignored.
func NewBrasilAPIStates(opts ...Option) *HTTPProvider {
	return NewHTTPProvider("brasilapi-ibge", model.KindStates, BrasilAPIBaseURL, "/api/ibge/uf/v1", decodeStates, opts...)
}

// NewBrasilAPIMunicipalities creates the IBGE municipalities provider, keyed by UF
func NewBrasilAPIMunicipalities(opts ...Option) *HTTPProvider {
	return NewHTTPProvider("brasilapi-ibge", model.KindMunicipalities, BrasilAPIBaseURL, "/api/ibge/municipios/v1/{value}", decodeMunicipalities, opts...)
}

// NewBrasilAPIFIPE creates the FIPE price-by-code provider
func NewBrasilAPIFIPE(opts ...Option) *HTTPProvider {
	return NewHTTPProvider("brasilapi-fipe", model.KindFIPE, BrasilAPIBaseURL, "/api/fipe/preco/v1/{value}", decodeFIPEPrices, opts...)
}

// NewParallelumBrands creates the FIPE brands provider, keyed by vehicle type
func NewParallelumBrands(opts ...Option) *HTTPProvider {
	return NewHTTPProvider("parallelum-fipe", model.KindFIPEBrands, ParallelumBaseURL, "/{value}/marcas", decodeFIPEBrands, opts...)
}

// NewParallelumModels creates the FIPE models provider, keyed by type/brand
func NewParallelumModels(opts ...Option) *HTTPProvider {
	opts = append([]Option{WithSegmentedValue()}, opts...)
	return NewHTTPProvider("parallelum-fipe", model.KindFIPEModels, ParallelumBaseURL,
		"/{1}/marcas/{2}/modelos", decodeFIPEModels, opts...)
}

// NewParallelumYears creates the FIPE model years provider, keyed by type/brand/model
func NewParallelumYears(opts ...Option) *HTTPProvider {
	opts = append([]Option{WithSegmentedValue()}, opts...)
	return NewHTTPProvider("parallelum-fipe", model.KindFIPEYears, ParallelumBaseURL,
		"/{1}/marcas/{2}/modelos/{3}/anos", decodeFIPEYears, opts...)
}

// NewParallelumVehicle creates the FIPE price provider, keyed by type/brand/model/year
func NewParallelumVehicle(opts ...Option) *HTTPProvider {
	opts = append([]Option{WithSegmentedValue()}, opts...)
	return NewHTTPProvider("parallelum-fipe", model.KindFIPEVehicle, ParallelumBaseURL,
		"/{1}/marcas/{2}/modelos/{3}/anos/{4}", decodeFIPEVehicle, opts...)
}

func decodeBank(_ string, body []byte) (model.Record, error) {
	var resp bankResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	if resp.Name == "" && resp.ISPB == "" {
		return nil, errors.New("missing bank name")
	}
	return resp.toModel(), nil
}

func decodeBanks(_ string, body []byte) (model.Record, error) {
	var resp []bankResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	banks := make(model.Banks, 0, len(resp))
	for _, b := range resp {
		banks = append(banks, b.toModel())
	}
	return banks, nil
}

func decodeDDD(value string, body []byte) (model.Record, error) {
	var resp dddResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	if resp.State == "" {
		return nil, errors.New("missing state")
	}
	sort.Strings(resp.Cities)
	return model.AreaCode{Code: value, State: resp.State, Cities: resp.Cities}, nil
}

func decodeHolidays(_ string, body []byte) (model.Record, error) {
	var resp []holidayResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	holidays := make(model.Holidays, 0, len(resp))
	for _, h := range resp {
		date, err := time.Parse(time.DateOnly, h.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", h.Date, err)
		}
		holidays = append(holidays, model.Holiday{Date: date, Name: h.Name, Type: h.Type})
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })
	return holidays, nil
}

func decodeStates(_ string, body []byte) (model.Record, error) {
	var resp []stateResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	states := make(model.States, 0, len(resp))
	for _, s := range resp {
		states = append(states, model.State{Code: s.Sigla, Name: s.Nome, Region: s.Regiao.Nome})
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Code < states[j].Code })
	return states, nil
}

func decodeMunicipalities(_ string, body []byte) (model.Record, error) {
	var resp []municipalityResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, ErrNotFound
	}
	municipalities := make(model.Municipalities, 0, len(resp))
	for _, m := range resp {
		municipalities = append(municipalities, model.Municipality{Name: m.Nome, IBGECode: m.CodigoIBGE})
	}
	return municipalities, nil
}

func decodeFIPEPrices(_ string, body []byte) (model.Record, error) {
	var resp []fipePriceResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, ErrNotFound
	}
	prices := make(model.VehiclePrices, 0, len(resp))
	for _, p := range resp {
		price, err := dec.ParseBRL(p.Valor)
		if err != nil {
			return nil, err
		}
		prices = append(prices, model.VehiclePrice{
			FIPECode:       p.CodigoFipe,
			Brand:          p.Marca,
			Model:          p.Modelo,
			ModelYear:      p.AnoModelo,
			Fuel:           p.Combustivel,
			FuelCode:       p.SiglaCombustivel,
			ReferenceMonth: p.MesReferencia,
			VehicleType:    p.TipoVeiculo,
			Price:          price,
		})
	}
	return prices, nil
}

func decodeFIPEBrands(_ string, body []byte) (model.Record, error) {
	var resp []fipeBrandResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	brands := make(model.Brands, 0, len(resp))
	for _, b := range resp {
		brands = append(brands, model.Brand{Code: b.Codigo, Name: b.Nome})
	}
	return brands, nil
}

func decodeFIPEModels(_ string, body []byte) (model.Record, error) {
	var resp fipeModelsResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	if resp.Modelos == nil {
		return nil, errors.New("missing modelos")
	}
	models := make(model.VehicleModels, 0, len(resp.Modelos))
	for _, m := range resp.Modelos {
		models = append(models, model.VehicleModel{Code: string(m.Codigo), Name: m.Nome})
	}
	return models, nil
}

func decodeFIPEYears(_ string, body []byte) (model.Record, error) {
	var resp []fipeEntryResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, ErrNotFound
	}
	years := make(model.ModelYears, 0, len(resp))
	for _, y := range resp {
		years = append(years, model.ModelYear{Code: string(y.Codigo), Name: y.Nome})
	}
	return years, nil
}

func decodeFIPEVehicle(_ string, body []byte) (model.Record, error) {
	var resp fipePriceResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	if resp.Valor == "" {
		return nil, errors.New("missing price")
	}
	price, err := dec.ParseBRL(resp.Valor)
	if err != nil {
		return nil, err
	}
	return model.VehiclePrice{
		FIPECode:       resp.CodigoFipe,
		Brand:          resp.Marca,
		Model:          resp.Modelo,
		ModelYear:      resp.AnoModelo,
		Fuel:           resp.Combustivel,
		FuelCode:       resp.SiglaCombustivel,
		ReferenceMonth: resp.MesReferencia,
		VehicleType:    resp.TipoVeiculo,
		Price:          price,
	}, nil
}
