package resolver_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/provider"
	"github.com/rezonia/tucano/internal/provider/mocks"
	"github.com/rezonia/tucano/internal/resolver"
)

type ResolverSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	primary   *mocks.MockProvider
	secondary *mocks.MockProvider
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.primary = mocks.NewMockProvider(s.ctrl)
	s.secondary = mocks.NewMockProvider(s.ctrl)
	s.primary.EXPECT().Name().Return("viacep").AnyTimes()
	s.secondary.EXPECT().Name().Return("brasilapi-cep").AnyTimes()
}

func (s *ResolverSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ResolverSuite) newResolver(opts ...resolver.Option) *resolver.Resolver {
	return resolver.New([]resolver.Descriptor{{
		Kind:      model.KindCEP,
		Normalize: resolver.NormalizeCEP,
		Providers: []provider.Provider{s.primary, s.secondary},
		Timeout:   time.Second,
	}}, opts...)
}

var sampleAddress = model.Address{
	CEP:    "01001-000",
	Street: "Praça da Sé",
	City:   "São Paulo",
	State:  "SP",
}

func (s *ResolverSuite) TestFallback() {
	s.Run("timeout on first provider falls through to second", func() {
		s.primary.EXPECT().Lookup(gomock.Any(), "01001000").
			Return(nil, model.NewProviderUnavailableError("viacep", model.CategoryTimeout, "request timed out", context.DeadlineExceeded))
		s.secondary.EXPECT().Lookup(gomock.Any(), "01001000").Return(sampleAddress, nil)

		res, err := s.newResolver().Resolve(context.Background(), model.KindCEP, "01001-000")
		s.Require().NoError(err)

		s.Equal(sampleAddress, res.Record)
		s.Equal("brasilapi-cep", res.Provider)
		s.Equal("01001000", res.Value)
		s.Len(res.Attempts, 2)

		failures := res.Failures()
		s.Require().Len(failures, 1)
		s.Equal("viacep", failures[0].Provider)
		s.Equal(model.CategoryTimeout, provider.Category(failures[0].Err))
	})

	s.Run("per-attempt timeout is enforced", func() {
		s.primary.EXPECT().Lookup(gomock.Any(), "01001000").
			DoAndReturn(func(ctx context.Context, _ string) (model.Record, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			})
		s.secondary.EXPECT().Lookup(gomock.Any(), "01001000").Return(sampleAddress, nil)

		r := resolver.New([]resolver.Descriptor{{
			Kind:      model.KindCEP,
			Normalize: resolver.NormalizeCEP,
			Providers: []provider.Provider{s.primary, s.secondary},
			Timeout:   20 * time.Millisecond,
		}})

		res, err := r.Resolve(context.Background(), model.KindCEP, "01001000")
		s.Require().NoError(err)
		s.Equal("brasilapi-cep", res.Provider)
		s.Require().Len(res.Failures(), 1)
		s.Equal(model.CategoryTimeout, provider.Category(res.Failures()[0].Err))
	})

	s.Run("first provider success skips the rest", func() {
		s.primary.EXPECT().Lookup(gomock.Any(), "01001000").Return(sampleAddress, nil)
		s.secondary.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

		res, err := s.newResolver().Resolve(context.Background(), model.KindCEP, "01001000")
		s.Require().NoError(err)
		s.Equal("viacep", res.Provider)
		s.Empty(res.Failures())
	})

	s.Run("untyped errors become network failures", func() {
		s.primary.EXPECT().Lookup(gomock.Any(), "01001000").Return(nil, errors.New("connection reset"))
		s.secondary.EXPECT().Lookup(gomock.Any(), "01001000").Return(sampleAddress, nil)

		res, err := s.newResolver().Resolve(context.Background(), model.KindCEP, "01001000")
		s.Require().NoError(err)
		s.Equal(model.CategoryNetwork, provider.Category(res.Failures()[0].Err))
	})

	s.Run("nil record is bad data", func() {
		s.primary.EXPECT().Lookup(gomock.Any(), "01001000").Return(nil, nil)
		s.secondary.EXPECT().Lookup(gomock.Any(), "01001000").Return(sampleAddress, nil)

		res, err := s.newResolver().Resolve(context.Background(), model.KindCEP, "01001000")
		s.Require().NoError(err)
		s.Equal(model.CategoryBadData, provider.Category(res.Failures()[0].Err))
	})
}

func (s *ResolverSuite) TestTerminalFailures() {
	s.Run("not found stops the chain", func() {
		s.primary.EXPECT().Lookup(gomock.Any(), "99999999").
			Return(nil, model.NewNotFoundError(model.KindCEP, "99999999", "viacep"))
		s.secondary.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.newResolver().Resolve(context.Background(), model.KindCEP, "99999999")

		var notFound *model.NotFoundError
		s.Require().ErrorAs(err, &notFound)
		s.Equal("viacep", notFound.Provider)
	})

	s.Run("format error happens before any call", func() {
		s.primary.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)
		s.secondary.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.newResolver().Resolve(context.Background(), model.KindCEP, "1234")

		var formatErr *model.FormatError
		s.Require().ErrorAs(err, &formatErr)
		s.Equal(model.KindCEP, formatErr.Kind)
	})

	s.Run("unsupported kind", func() {
		_, err := s.newResolver().Resolve(context.Background(), model.KindPlate, "ABC1234")
		s.ErrorIs(err, resolver.ErrUnsupportedKind)
	})
}

func (s *ResolverSuite) TestNotFoundRecoverable() {
	s.primary.EXPECT().Lookup(gomock.Any(), "01001000").
		Return(nil, model.NewNotFoundError(model.KindCEP, "01001000", "viacep"))
	s.secondary.EXPECT().Lookup(gomock.Any(), "01001000").Return(sampleAddress, nil)

	descriptors := resolver.DefaultDescriptors(resolver.Settings{NotFoundRecoverable: true})
	d := descriptors[0]
	s.Require().Equal(model.KindCEP, d.Kind)
	d.Providers = []provider.Provider{s.primary, s.secondary}

	res, err := resolver.New([]resolver.Descriptor{d}).Resolve(context.Background(), model.KindCEP, "01001000")
	s.Require().NoError(err)
	s.Equal("brasilapi-cep", res.Provider)
	s.Len(res.Failures(), 1)
}

func (s *ResolverSuite) TestNotFoundEverywhereStaysNotFound() {
	s.primary.EXPECT().Lookup(gomock.Any(), "99999999").
		Return(nil, model.NewNotFoundError(model.KindCEP, "99999999", "viacep"))
	s.secondary.EXPECT().Lookup(gomock.Any(), "99999999").
		Return(nil, model.NewNotFoundError(model.KindCEP, "99999999", "brasilapi-cep"))

	r := resolver.New([]resolver.Descriptor{{
		Kind:      model.KindCEP,
		Providers: []provider.Provider{s.primary, s.secondary},
		Recoverable: func(err error) bool {
			var notFound *model.NotFoundError
			return provider.IsRecoverable(err) || errors.As(err, &notFound)
		},
	}})

	_, err := r.Resolve(context.Background(), model.KindCEP, "99999999")

	var notFound *model.NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal("brasilapi-cep", notFound.Provider)
}

func (s *ResolverSuite) TestRecoverableNotFoundStaysInAggregate() {
	s.primary.EXPECT().Lookup(gomock.Any(), "01001000").
		Return(nil, model.NewNotFoundError(model.KindCEP, "01001000", "viacep"))
	s.secondary.EXPECT().Lookup(gomock.Any(), "01001000").
		Return(nil, model.NewProviderUnavailableError("brasilapi-cep", model.CategoryStatus, "unexpected status 502", nil))

	d := resolver.DefaultDescriptors(resolver.Settings{NotFoundRecoverable: true})[0]
	d.Providers = []provider.Provider{s.primary, s.secondary}

	_, err := resolver.New([]resolver.Descriptor{d}).Resolve(context.Background(), model.KindCEP, "01001000")

	var all *model.AllProvidersUnavailableError
	s.Require().ErrorAs(err, &all)
	s.Require().Len(all.Failures, 2)
	s.Equal("viacep", all.Failures[0].Provider)
	s.Equal(model.CategoryNotFound, all.Failures[0].Category)
	s.Contains(all.Failures[0].Message, "not found")
	s.Equal("brasilapi-cep", all.Failures[1].Provider)
	s.Contains(err.Error(), "viacep")

	var notFound *model.NotFoundError
	s.False(errors.As(err, &notFound))
}

func (s *ResolverSuite) TestExhaustion() {
	s.Run("every provider failing yields the aggregate", func() {
		s.primary.EXPECT().Lookup(gomock.Any(), "01001000").
			Return(nil, model.NewProviderUnavailableError("viacep", model.CategoryNetwork, "connection refused", nil))
		s.secondary.EXPECT().Lookup(gomock.Any(), "01001000").
			Return(nil, model.NewProviderUnavailableError("brasilapi-cep", model.CategoryStatus, "unexpected status 500", nil))

		_, err := s.newResolver().Resolve(context.Background(), model.KindCEP, "01001000")

		var all *model.AllProvidersUnavailableError
		s.Require().ErrorAs(err, &all)
		s.Require().Len(all.Failures, 2)
		s.Equal("viacep", all.Failures[0].Provider)
		s.Equal("brasilapi-cep", all.Failures[1].Provider)

		var unavailable *model.ProviderUnavailableError
		s.ErrorAs(err, &unavailable)
	})

	s.Run("single provider returns its own failure", func() {
		s.primary.EXPECT().Lookup(gomock.Any(), "01001000").
			Return(nil, model.NewProviderUnavailableError("viacep", model.CategoryTimeout, "request timed out", nil))

		r := resolver.New([]resolver.Descriptor{{
			Kind:      model.KindCEP,
			Providers: []provider.Provider{s.primary},
		}})
		_, err := r.Resolve(context.Background(), model.KindCEP, "01001000")

		var unavailable *model.ProviderUnavailableError
		s.Require().ErrorAs(err, &unavailable)
		s.Equal("viacep", unavailable.Provider)

		var all *model.AllProvidersUnavailableError
		s.False(errors.As(err, &all))
	})
}

func (s *ResolverSuite) TestCancellation() {
	s.Run("cancelled before the first attempt", func() {
		s.primary.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)
		s.secondary.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.newResolver().Resolve(ctx, model.KindCEP, "01001000")

		var cancelled *model.CancelledError
		s.Require().ErrorAs(err, &cancelled)
		s.ErrorIs(err, context.Canceled)
	})

	s.Run("cancelled during an attempt skips the rest", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s.primary.EXPECT().Lookup(gomock.Any(), "01001000").
			DoAndReturn(func(ctx context.Context, _ string) (model.Record, error) {
				cancel()
				return nil, model.NewProviderUnavailableError("viacep", model.CategoryNetwork, "request aborted", ctx.Err())
			})
		s.secondary.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.newResolver().Resolve(ctx, model.KindCEP, "01001000")

		var cancelled *model.CancelledError
		s.Require().ErrorAs(err, &cancelled)
		s.Equal(model.KindCEP, cancelled.Kind)
	})
}

func (s *ResolverSuite) TestResolveAsync() {
	s.primary.EXPECT().Lookup(gomock.Any(), "01001000").
		Return(nil, model.NewProviderUnavailableError("viacep", model.CategoryTimeout, "request timed out", nil))
	s.secondary.EXPECT().Lookup(gomock.Any(), "01001000").Return(sampleAddress, nil)

	ch := s.newResolver().ResolveAsync(context.Background(), model.KindCEP, "01001-000")

	select {
	case out := <-ch:
		s.Require().NoError(out.Err)
		s.Equal("01001-000", out.Value)
		s.Equal("brasilapi-cep", out.Resolution.Provider)
		s.Len(out.Resolution.Failures(), 1)
	case <-time.After(2 * time.Second):
		s.FailNow("async resolution did not complete")
	}

	_, open := <-ch
	s.False(open)
}

func (s *ResolverSuite) TestResolveAsyncCarriesErrors() {
	ch := s.newResolver().ResolveAsync(context.Background(), model.KindCEP, "abc")

	out := <-ch
	var formatErr *model.FormatError
	s.ErrorAs(out.Err, &formatErr)
	s.Nil(out.Resolution)
}

func (s *ResolverSuite) TestResolveBatch() {
	s.primary.EXPECT().Lookup(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, value string) (model.Record, error) {
			if value == "99999999" {
				return nil, model.NewNotFoundError(model.KindCEP, value, "viacep")
			}
			return model.Address{CEP: value, City: "São Paulo", State: "SP"}, nil
		}).Times(3)

	values := []string{"01001000", "99999999", "bad", "04538133"}
	outcomes := s.newResolver(resolver.WithBatchConcurrency(2)).
		ResolveBatch(context.Background(), model.KindCEP, values)

	s.Require().Len(outcomes, len(values))
	for i, out := range outcomes {
		s.Equal(values[i], out.Value)
	}

	s.Require().NoError(outcomes[0].Err)
	s.Equal("01001000", outcomes[0].Resolution.Record.(model.Address).CEP)

	var notFound *model.NotFoundError
	s.ErrorAs(outcomes[1].Err, &notFound)

	var formatErr *model.FormatError
	s.ErrorAs(outcomes[2].Err, &formatErr)

	s.Require().NoError(outcomes[3].Err)
	s.Equal("04538133", outcomes[3].Resolution.Record.(model.Address).CEP)
}

func (s *ResolverSuite) TestMetrics() {
	s.primary.EXPECT().Lookup(gomock.Any(), "01001000").
		Return(nil, model.NewProviderUnavailableError("viacep", model.CategoryTimeout, "request timed out", nil))
	s.secondary.EXPECT().Lookup(gomock.Any(), "01001000").Return(sampleAddress, nil)

	reg := prometheus.NewRegistry()
	r := s.newResolver(resolver.WithMetrics(resolver.NewMetrics(reg)))

	_, err := r.Resolve(context.Background(), model.KindCEP, "01001000")
	s.Require().NoError(err)

	s.Equal(1.0, counterValue(s.T(), reg, "tucano_provider_attempts_total",
		map[string]string{"kind": "cep", "provider": "viacep", "outcome": "timeout"}))
	s.Equal(1.0, counterValue(s.T(), reg, "tucano_provider_attempts_total",
		map[string]string{"kind": "cep", "provider": "brasilapi-cep", "outcome": "success"}))
	s.Equal(1.0, counterValue(s.T(), reg, "tucano_resolutions_total",
		map[string]string{"kind": "cep", "outcome": "success"}))
}

func (s *ResolverSuite) TestKindsAndDescriptor() {
	r := resolver.New(resolver.DefaultDescriptors(resolver.DefaultSettings()))

	kinds := r.Kinds()
	s.Contains(kinds, model.KindCEP)
	s.Contains(kinds, model.KindCNPJ)
	s.Contains(kinds, model.KindFIPEBrands)
	s.Contains(kinds, model.KindFIPEVehicle)
	s.NotContains(kinds, model.KindPix)

	d, ok := r.Descriptor(model.KindCEP)
	s.Require().True(ok)
	s.Require().Len(d.Providers, 2)
	s.Equal("viacep", d.Providers[0].Name())
	s.Equal("brasilapi-cep", d.Providers[1].Name())
}

// counterValue reads one labelled counter sample from reg
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := 0
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] == pair.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("no sample for %s %s", name, fmt.Sprint(labels))
	return 0
}
