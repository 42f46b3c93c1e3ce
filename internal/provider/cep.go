package provider

import (
	"errors"

	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/pattern"
)

// viaCEPResponse is the ViaCEP address payload
type viaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	IBGE        string `json:"ibge"`
	DDD         string `json:"ddd"`
	Erro        any    `json:"erro"`
}

// brasilAPICEPResponse is the BrasilAPI CEP v1 payload
type brasilAPICEPResponse struct {
	CEP          string `json:"cep"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
	Service      string `json:"service"`
}

// NewViaCEP creates the ViaCEP address provider
func NewViaCEP(opts ...Option) *HTTPProvider {
	opts = append([]Option{WithNotFoundStatus(false)}, opts...)
	return NewHTTPProvider("viacep", model.KindCEP, ViaCEPBaseURL, "/ws/{value}/json/", decodeViaCEP, opts...)
}

// NewBrasilAPICEP creates the BrasilAPI address provider
func NewBrasilAPICEP(opts ...Option) *HTTPProvider {
	return NewHTTPProvider("brasilapi-cep", model.KindCEP, BrasilAPIBaseURL, "/api/cep/v1/{value}", decodeBrasilAPICEP, opts...)
}

func decodeViaCEP(value string, body []byte) (model.Record, error) {
	var resp viaCEPResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	// ViaCEP answers 200 with {"erro": true} (older versions: "true") for unknown codes
	switch e := resp.Erro.(type) {
	case bool:
		if e {
			return nil, ErrNotFound
		}
	case string:
		if e == "true" {
			return nil, ErrNotFound
		}
	}
	if resp.Localidade == "" || resp.UF == "" {
		return nil, errors.New("missing city or state")
	}
	return model.Address{
		CEP:          canonicalCEP(resp.CEP, value),
		Street:       resp.Logradouro,
		Complement:   resp.Complemento,
		Neighborhood: resp.Bairro,
		City:         resp.Localidade,
		State:        resp.UF,
		IBGECode:     resp.IBGE,
		AreaCode:     resp.DDD,
	}, nil
}

func decodeBrasilAPICEP(value string, body []byte) (model.Record, error) {
	var resp brasilAPICEPResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	if resp.City == "" || resp.State == "" {
		return nil, errors.New("missing city or state")
	}
	return model.Address{
		CEP:          canonicalCEP(resp.CEP, value),
		Street:       resp.Street,
		Neighborhood: resp.Neighborhood,
		City:         resp.City,
		State:        resp.State,
	}, nil
}

// canonicalCEP renders the provider's CEP as 00000-000, falling back to the queried value
func canonicalCEP(reported, queried string) string {
	if formatted, err := pattern.FormatCEP(reported); err == nil {
		return formatted
	}
	if formatted, err := pattern.FormatCEP(queried); err == nil {
		return formatted
	}
	return queried
}
