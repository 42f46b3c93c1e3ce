package provider

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/tucano/internal/checksum"
	dec "github.com/rezonia/tucano/internal/decimal"
	"github.com/rezonia/tucano/internal/model"
)

type brasilAPICNPJResponse struct {
	CNPJ                       string          `json:"cnpj"`
	RazaoSocial                string          `json:"razao_social"`
	NomeFantasia               string          `json:"nome_fantasia"`
	DescricaoSituacaoCadastral string          `json:"descricao_situacao_cadastral"`
	DataInicioAtividade        string          `json:"data_inicio_atividade"`
	CapitalSocial              decimal.Decimal `json:"capital_social"`
	CNAEFiscal                 json.Number     `json:"cnae_fiscal"`
	CNAEFiscalDescricao        string          `json:"cnae_fiscal_descricao"`
	Logradouro                 string          `json:"logradouro"`
	Numero                     string          `json:"numero"`
	Complemento                string          `json:"complemento"`
	Bairro                     string          `json:"bairro"`
	Municipio                  string          `json:"municipio"`
	UF                         string          `json:"uf"`
	CEP                        string          `json:"cep"`
	Email                      *string         `json:"email"`
	DDDTelefone1               string          `json:"ddd_telefone_1"`
	QSA                        []struct {
		NomeSocio         string `json:"nome_socio"`
		QualificacaoSocio string `json:"qualificacao_socio"`
	} `json:"qsa"`
}

type receitaWSResponse struct {
	Status             string `json:"status"`
	Message            string `json:"message"`
	CNPJ               string `json:"cnpj"`
	Nome               string `json:"nome"`
	Fantasia           string `json:"fantasia"`
	Situacao           string `json:"situacao"`
	Abertura           string `json:"abertura"`
	CapitalSocial      string `json:"capital_social"`
	AtividadePrincipal []struct {
		Code string `json:"code"`
		Text string `json:"text"`
	} `json:"atividade_principal"`
	Logradouro  string `json:"logradouro"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Municipio   string `json:"municipio"`
	UF          string `json:"uf"`
	CEP         string `json:"cep"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	QSA         []struct {
		Nome string `json:"nome"`
		Qual string `json:"qual"`
	} `json:"qsa"`
}

// NewBrasilAPICNPJ creates the BrasilAPI company registry provider
func NewBrasilAPICNPJ(opts ...Option) *HTTPProvider {
	return NewHTTPProvider("brasilapi-cnpj", model.KindCNPJ, BrasilAPIBaseURL, "/api/cnpj/v1/{value}", decodeBrasilAPICNPJ, opts...)
}

// NewReceitaWS creates the ReceitaWS company registry provider
func NewReceitaWS(opts ...Option) *HTTPProvider {
	opts = append([]Option{WithNotFoundStatus(false)}, opts...)
	return NewHTTPProvider("receitaws", model.KindCNPJ, ReceitaWSBaseURL, "/v1/cnpj/{value}", decodeReceitaWS, opts...)
}

func decodeBrasilAPICNPJ(value string, body []byte) (model.Record, error) {
	var resp brasilAPICNPJResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	if resp.RazaoSocial == "" {
		return nil, errors.New("missing legal name")
	}

	company := model.Company{
		CNPJ:             canonicalCNPJ(resp.CNPJ, value),
		LegalName:        resp.RazaoSocial,
		TradeName:        resp.NomeFantasia,
		Status:           resp.DescricaoSituacaoCadastral,
		OpenedOn:         resp.DataInicioAtividade,
		ShareCapital:     resp.CapitalSocial.Round(2),
		MainActivity:     resp.CNAEFiscalDescricao,
		MainActivityCode: string(resp.CNAEFiscal),
		Street:           resp.Logradouro,
		Number:           resp.Numero,
		Complement:       resp.Complemento,
		Neighborhood:     resp.Bairro,
		City:             resp.Municipio,
		State:            resp.UF,
		CEP:              resp.CEP,
		Phone:            resp.DDDTelefone1,
	}
	if resp.Email != nil {
		company.Email = *resp.Email
	}
	for _, p := range resp.QSA {
		company.Partners = append(company.Partners, model.Partner{Name: p.NomeSocio, Qualification: p.QualificacaoSocio})
	}
	return company, nil
}

func decodeReceitaWS(value string, body []byte) (model.Record, error) {
	var resp receitaWSResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	// ReceitaWS reports unknown or rejected numbers as 200 with status ERROR
	if strings.EqualFold(resp.Status, "ERROR") {
		return nil, ErrNotFound
	}
	if resp.Nome == "" {
		return nil, errors.New("missing legal name")
	}

	capital, err := dec.FromString(resp.CapitalSocial)
	if err != nil {
		return nil, err
	}

	company := model.Company{
		CNPJ:         canonicalCNPJ(resp.CNPJ, value),
		LegalName:    resp.Nome,
		TradeName:    resp.Fantasia,
		Status:       resp.Situacao,
		OpenedOn:     resp.Abertura,
		ShareCapital: capital.Round(2),
		Street:       resp.Logradouro,
		Number:       resp.Numero,
		Complement:   resp.Complemento,
		Neighborhood: resp.Bairro,
		City:         resp.Municipio,
		State:        resp.UF,
		CEP:          checksum.Clean(resp.CEP),
		Email:        resp.Email,
		Phone:        resp.Telefone,
	}
	if len(resp.AtividadePrincipal) > 0 {
		company.MainActivity = resp.AtividadePrincipal[0].Text
		company.MainActivityCode = checksum.Clean(resp.AtividadePrincipal[0].Code)
	}
	for _, p := range resp.QSA {
		company.Partners = append(company.Partners, model.Partner{Name: p.Nome, Qualification: p.Qual})
	}
	return company, nil
}

func canonicalCNPJ(reported, queried string) string {
	if d := checksum.Clean(reported); len(d) == 14 {
		return d
	}
	return checksum.Clean(queried)
}
