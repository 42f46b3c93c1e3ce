package resolver

import (
	"errors"
	"net/http"
	"time"

	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/provider"
)

// Settings configures the default provider chains
type Settings struct {
	Timeout     time.Duration
	CNPJTimeout time.Duration

	ViaCEPURL     string
	BrasilAPIURL  string
	ReceitaWSURL  string
	ParallelumURL string

	// CEPFallback appends BrasilAPI after ViaCEP
	CEPFallback bool
	// CNPJReceitaWS appends ReceitaWS after BrasilAPI
	CNPJReceitaWS bool
	// NotFoundRecoverable lets a not-found advance the chain
	NotFoundRecoverable bool

	HTTPClient *http.Client
}

// DefaultSettings returns the production endpoints and timeouts
func DefaultSettings() Settings {
	return Settings{
		Timeout:       10 * time.Second,
		CNPJTimeout:   15 * time.Second,
		ViaCEPURL:     provider.ViaCEPBaseURL,
		BrasilAPIURL:  provider.BrasilAPIBaseURL,
		ReceitaWSURL:  provider.ReceitaWSBaseURL,
		ParallelumURL: provider.ParallelumBaseURL,
		CEPFallback:   true,
	}
}

// DefaultDescriptors builds the descriptor table of every resolvable kind
func DefaultDescriptors(s Settings) []Descriptor {
	opts := func(baseURL string) []provider.Option {
		o := []provider.Option{provider.WithBaseURL(baseURL)}
		if s.HTTPClient != nil {
			o = append(o, provider.WithHTTPClient(s.HTTPClient))
		}
		return o
	}
	brasil := opts(s.BrasilAPIURL)
	parallelum := opts(s.ParallelumURL)

	var recoverable func(error) bool
	if s.NotFoundRecoverable {
		recoverable = recoverNotFound
	}

	cep := []provider.Provider{provider.NewViaCEP(opts(s.ViaCEPURL)...)}
	if s.CEPFallback {
		cep = append(cep, provider.NewBrasilAPICEP(brasil...))
	}

	cnpj := []provider.Provider{provider.NewBrasilAPICNPJ(brasil...)}
	if s.CNPJReceitaWS {
		cnpj = append(cnpj, provider.NewReceitaWS(opts(s.ReceitaWSURL)...))
	}
	cnpjTimeout := s.CNPJTimeout
	if cnpjTimeout == 0 {
		cnpjTimeout = s.Timeout
	}

	single := func(kind model.Kind, normalize func(string) (string, error), p provider.Provider) Descriptor {
		return Descriptor{
			Kind:      kind,
			Normalize: normalize,
			Providers: []provider.Provider{p},
			Timeout:   s.Timeout,
		}
	}

	return []Descriptor{
		{Kind: model.KindCEP, Normalize: NormalizeCEP, Providers: cep, Timeout: s.Timeout, Recoverable: recoverable},
		{Kind: model.KindCNPJ, Normalize: NormalizeCNPJ, Providers: cnpj, Timeout: cnpjTimeout, Recoverable: recoverable},
		single(model.KindBank, NormalizeBankCode, provider.NewBrasilAPIBank(brasil...)),
		single(model.KindBanks, ignoreValue, provider.NewBrasilAPIBanks(brasil...)),
		single(model.KindDDD, NormalizeDDD, provider.NewBrasilAPIDDD(brasil...)),
		single(model.KindHolidays, NormalizeYear, provider.NewBrasilAPIHolidays(brasil...)),
		single(model.KindStates, ignoreValue, provider.NewBrasilAPIStates(brasil...)),
		single(model.KindMunicipalities, NormalizeUF, provider.NewBrasilAPIMunicipalities(brasil...)),
		single(model.KindFIPE, NormalizeFIPECode, provider.NewBrasilAPIFIPE(brasil...)),
		single(model.KindFIPEBrands, NormalizeVehicleType, provider.NewParallelumBrands(parallelum...)),
		single(model.KindFIPEModels, NormalizeFIPEModelsKey, provider.NewParallelumModels(parallelum...)),
		single(model.KindFIPEYears, NormalizeFIPEYearsKey, provider.NewParallelumYears(parallelum...)),
		single(model.KindFIPEVehicle, NormalizeFIPEVehicleKey, provider.NewParallelumVehicle(parallelum...)),
	}
}

func recoverNotFound(err error) bool {
	var notFound *model.NotFoundError
	return provider.IsRecoverable(err) || errors.As(err, &notFound)
}
