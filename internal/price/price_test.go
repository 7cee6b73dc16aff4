package price

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory collaborator fakes

type fakeStores struct {
	currencies map[string]Currency
	categories map[string]VatCategory
	priceTypes map[string]PriceType
	rates      map[string]decimal.Decimal // "FROM:TO" -> rate
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		currencies: map[string]Currency{
			"USD": {ID: "USD", RoundingStep: decimal.RequireFromString("0.01"), Decimals: 2},
			"EUR": {ID: "EUR", RoundingStep: decimal.RequireFromString("0.01"), Decimals: 2},
			"CHF": {ID: "CHF", RoundingStep: decimal.RequireFromString("0.05"), Decimals: 2},
			"HUF": {ID: "HUF", RoundingStep: decimal.RequireFromString("1"), Decimals: 0},
		},
		categories: map[string]VatCategory{
			"standard": {ID: "standard", Rate: decimal.RequireFromString("0.27")},
			"reduced":  {ID: "reduced", Rate: decimal.RequireFromString("0.05")},
		},
		priceTypes: map[string]PriceType{
			"retail": {ID: "retail", Label: "Retail"},
		},
		rates: map[string]decimal.Decimal{},
	}
}

func (f *fakeStores) LoadCurrency(_ context.Context, id string) (*Currency, error) {
	if c, ok := f.currencies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeStores) LoadVatCategory(_ context.Context, id string) (*VatCategory, error) {
	if c, ok := f.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeStores) LoadPriceType(_ context.Context, id string) (*PriceType, error) {
	if t, ok := f.priceTypes[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (f *fakeStores) LoadRate(_ context.Context, from, to string) (*decimal.Decimal, error) {
	if r, ok := f.rates[from+":"+to]; ok {
		return &r, nil
	}
	return nil, nil
}

func newTestFactory() (*Factory, *fakeStores) {
	stores := newFakeStores()
	return NewFactory(stores, stores, stores, stores), stores
}

func rate(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewPrice_MandatoryFields(t *testing.T) {
	factory, _ := newTestFactory()
	ctx := context.Background()

	t.Run("empty values rejected", func(t *testing.T) {
		_, err := factory.NewPrice(ctx, Values{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.ErrorIs(t, err, ErrCurrencyRequired)
	})

	t.Run("missing base rejected", func(t *testing.T) {
		_, err := factory.NewPrice(ctx, Values{Currency: "USD"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBaseRequired)
	})

	t.Run("unknown base rejected", func(t *testing.T) {
		_, err := factory.NewPrice(ctx, Values{Currency: "USD", Base: "both"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("negative vat rate rejected", func(t *testing.T) {
		_, err := factory.NewPrice(ctx, Values{Currency: "USD", Base: BaseNet, VatRate: rate("-0.1")})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestNewPrice_CurrencyFallback(t *testing.T) {
	factory, _ := newTestFactory()

	p, err := factory.NewPrice(context.Background(), Values{
		Currency: "ZZZ",
		Base:     BaseNet,
		Net:      decimal.RequireFromString("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, NoCurrencyID, p.Currency().ID)
	assert.True(t, p.CurrencyFellBack())
	assert.False(t, p.IsMissing())
}

func TestNewPrice_VatCategoryDefaulting(t *testing.T) {
	factory, _ := newTestFactory()
	ctx := context.Background()

	t.Run("category supplies default rate", func(t *testing.T) {
		p, err := factory.NewPrice(ctx, Values{
			Currency:    "USD",
			Base:        BaseNet,
			Net:         decimal.RequireFromString("10"),
			VatCategory: "reduced",
		})
		require.NoError(t, err)
		assert.True(t, p.VatRate().Equal(decimal.RequireFromString("0.05")))
		assert.Equal(t, "reduced", p.VatCategory())
	})

	t.Run("explicit rate wins over category", func(t *testing.T) {
		p, err := factory.NewPrice(ctx, Values{
			Currency:    "USD",
			Base:        BaseNet,
			Net:         decimal.RequireFromString("10"),
			VatCategory: "reduced",
			VatRate:     rate("0.18"),
		})
		require.NoError(t, err)
		assert.True(t, p.VatRate().Equal(decimal.RequireFromString("0.18")))
	})

	t.Run("unknown category leaves rate at zero", func(t *testing.T) {
		p, err := factory.NewPrice(ctx, Values{
			Currency:    "USD",
			Base:        BaseNet,
			Net:         decimal.RequireFromString("10"),
			VatCategory: "luxury",
		})
		require.NoError(t, err)
		assert.True(t, p.VatRate().IsZero())
	})
}

func TestPrice_Derivation(t *testing.T) {
	factory, _ := newTestFactory()
	ctx := context.Background()

	t.Run("net base derives gross and vat", func(t *testing.T) {
		p, err := factory.NewPrice(ctx, Values{
			Currency: "USD",
			Base:     BaseNet,
			Net:      decimal.RequireFromString("100.00"),
			VatRate:  rate("0.27"),
		})
		require.NoError(t, err)
		assert.Equal(t, "100.00", p.NetPrice().StringFixed(2))
		assert.Equal(t, "127.00", p.GrossPrice().StringFixed(2))
		assert.Equal(t, "27.00", p.VatValue().StringFixed(2))
		assert.Equal(t, "27.00", p.VatRatePercent().StringFixed(2))
	})

	t.Run("gross base derives net", func(t *testing.T) {
		p, err := factory.NewPrice(ctx, Values{
			Currency: "USD",
			Base:     BaseGross,
			Gross:    decimal.RequireFromString("127.00"),
			VatRate:  rate("0.27"),
		})
		require.NoError(t, err)
		assert.Equal(t, "100.00", p.NetPrice().StringFixed(2))
		assert.Equal(t, "127.00", p.GrossPrice().StringFixed(2))
	})

	t.Run("derivation is idempotent", func(t *testing.T) {
		p, err := factory.NewPrice(ctx, Values{
			Currency: "USD",
			Base:     BaseNet,
			Net:      decimal.RequireFromString("33.335"),
			VatRate:  rate("0.27"),
		})
		require.NoError(t, err)
		first := p.GrossPrice()
		second := p.GrossPrice()
		assert.True(t, first.Equal(second))
		assert.Equal(t, first.StringFixed(2), first.Round(2).StringFixed(2))
	})

	t.Run("zero rate means net equals gross", func(t *testing.T) {
		p, err := factory.NewPrice(ctx, Values{
			Currency: "USD",
			Base:     BaseNet,
			Net:      decimal.RequireFromString("19.99"),
		})
		require.NoError(t, err)
		assert.True(t, p.NetPrice().Equal(p.GrossPrice()))
		assert.True(t, p.VatValue().IsZero())
	})
}

func TestPrice_Exchange(t *testing.T) {
	factory, stores := newTestFactory()
	ctx := context.Background()

	base, err := factory.NewPrice(ctx, Values{
		Currency: "USD",
		Base:     BaseNet,
		Net:      decimal.RequireFromString("100.00"),
		VatRate:  rate("0.27"),
	})
	require.NoError(t, err)

	t.Run("empty target is a caller error", func(t *testing.T) {
		_, err := base.ExchangedValues(ctx, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("no published rate returns nil without error", func(t *testing.T) {
		values, err := base.ExchangedValues(ctx, "EUR")
		require.NoError(t, err)
		assert.Nil(t, values)

		p, err := base.Exchanged(ctx, "EUR")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("published rate converts both sides", func(t *testing.T) {
		stores.rates["USD:EUR"] = decimal.RequireFromString("0.9")

		values, err := base.ExchangedValues(ctx, "EUR")
		require.NoError(t, err)
		require.NotNil(t, values)
		assert.Equal(t, "EUR", values.Currency)
		assert.Equal(t, "90.00", values.Net.StringFixed(2))
		assert.Equal(t, "114.30", values.Gross.StringFixed(2))
		require.NotNil(t, values.VatValue)
		assert.Equal(t, "24.30", values.VatValue.StringFixed(2))

		converted, err := base.Exchanged(ctx, "EUR")
		require.NoError(t, err)
		require.NotNil(t, converted)
		assert.Equal(t, "EUR", converted.Currency().ID)
		assert.Equal(t, "90.00", converted.NetPrice().StringFixed(2))
	})
}

func TestFactory_MissingPrice(t *testing.T) {
	factory, _ := newTestFactory()

	p := factory.MissingPrice()
	assert.True(t, p.IsMissing())
	assert.Equal(t, NoCurrencyID, p.Currency().ID)
	assert.True(t, p.NetPrice().IsZero())
	assert.True(t, p.GrossPrice().IsZero())
	assert.True(t, p.VatRate().IsZero())

	// distinct from a configured zero price
	zero, err := factory.NewPrice(context.Background(), Values{Currency: "USD", Base: BaseNet})
	require.NoError(t, err)
	assert.False(t, zero.IsMissing())
}

func TestFactory_ModifiedPrice(t *testing.T) {
	factory, _ := newTestFactory()
	ctx := context.Background()

	original, err := factory.NewPrice(ctx, Values{
		Currency: "USD",
		Base:     BaseNet,
		Net:      decimal.RequireFromString("120.00"),
		VatRate:  rate("0.27"),
	})
	require.NoError(t, err)

	t.Run("attaches original by reference", func(t *testing.T) {
		modified, err := factory.NewModifiedPrice(ctx, Values{
			Currency:     "USD",
			Base:         BaseNet,
			Net:          decimal.RequireFromString("100.00"),
			VatRate:      rate("0.27"),
			ReasonOfDiff: "spring sale",
		}, original)
		require.NoError(t, err)
		assert.Same(t, original, modified.Original())
		assert.Equal(t, "spring sale", modified.ReasonOfDifference())
	})

	t.Run("mismatched currency rejected", func(t *testing.T) {
		_, err := factory.NewModifiedPrice(ctx, Values{
			Currency: "EUR",
			Base:     BaseNet,
			Net:      decimal.RequireFromString("90.00"),
		}, original)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("differing base allowed", func(t *testing.T) {
		modified, err := factory.NewModifiedPrice(ctx, Values{
			Currency: "USD",
			Base:     BaseGross,
			Gross:    decimal.RequireFromString("127.00"),
			VatRate:  rate("0.27"),
		}, original)
		require.NoError(t, err)
		assert.Equal(t, "100.00", modified.NetPrice().StringFixed(2))
	})

	t.Run("nil original allowed", func(t *testing.T) {
		modified, err := factory.NewModifiedPrice(ctx, Values{
			Currency: "USD",
			Base:     BaseNet,
			Net:      decimal.RequireFromString("1.00"),
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, modified.Original())
	})
}

func TestPrice_PriceTypeLookup(t *testing.T) {
	factory, _ := newTestFactory()
	ctx := context.Background()

	t.Run("known type resolves", func(t *testing.T) {
		p, err := factory.NewPrice(ctx, Values{Currency: "USD", Base: BaseNet, PriceType: "retail"})
		require.NoError(t, err)

		pt, err := p.PriceType(ctx)
		require.NoError(t, err)
		require.NotNil(t, pt)
		assert.Equal(t, "Retail", pt.Label)
	})

	t.Run("unknown type degrades to nil", func(t *testing.T) {
		p, err := factory.NewPrice(ctx, Values{Currency: "USD", Base: BaseNet, PriceType: "internal"})
		require.NoError(t, err)

		pt, err := p.PriceType(ctx)
		require.NoError(t, err)
		assert.Nil(t, pt)
	})
}

func TestPrice_ValuesRoundTrip(t *testing.T) {
	factory, _ := newTestFactory()
	ctx := context.Background()

	p, err := factory.NewPrice(ctx, Values{
		Currency: "USD",
		Base:     BaseNet,
		Net:      decimal.RequireFromString("100.00"),
		VatRate:  rate("0.27"),
	})
	require.NoError(t, err)

	rebuilt, err := factory.NewPrice(ctx, p.Values())
	require.NoError(t, err)
	assert.True(t, rebuilt.NetPrice().Equal(p.NetPrice()))
	assert.True(t, rebuilt.GrossPrice().Equal(p.GrossPrice()))
	assert.Equal(t, p.Base(), rebuilt.Base())
}
