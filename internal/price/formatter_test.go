package price

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	t.Run("snaps to 0.05 rounding step", func(t *testing.T) {
		chf := Currency{ID: "CHF", RoundingStep: decimal.RequireFromString("0.05"), Decimals: 2}
		assert.Equal(t, "10.05", FormatAmount(decimal.RequireFromString("10.03"), chf))
		assert.Equal(t, "10.00", FormatAmount(decimal.RequireFromString("10.00"), chf))
		assert.Equal(t, "10.00", FormatAmount(decimal.RequireFromString("10.02"), chf))
	})

	t.Run("zero-pads to the currency decimal count", func(t *testing.T) {
		usd := Currency{ID: "USD", RoundingStep: decimal.RequireFromString("0.01"), Decimals: 2}
		assert.Equal(t, "10.00", FormatAmount(decimal.RequireFromString("10"), usd))
		assert.Equal(t, "10.50", FormatAmount(decimal.RequireFromString("10.5"), usd))
	})

	t.Run("whole-unit currency drops the decimal point", func(t *testing.T) {
		huf := Currency{ID: "HUF", RoundingStep: decimal.RequireFromString("1"), Decimals: 0}
		assert.Equal(t, "1250", FormatAmount(decimal.RequireFromString("1249.6"), huf))
	})

	t.Run("zero rounding step leaves the amount unsnapped", func(t *testing.T) {
		c := Currency{ID: "USD", Decimals: 2}
		assert.Equal(t, "10.03", FormatAmount(decimal.RequireFromString("10.03"), c))
	})
}

func TestFormatter_Build(t *testing.T) {
	factory, stores := newTestFactory()
	formatter := NewFormatter(NewTextRenderer())
	ctx := context.Background()

	newUSD := func(t *testing.T) *Price {
		p, err := factory.NewPrice(ctx, Values{
			Currency: "USD",
			Base:     BaseNet,
			Net:      decimal.RequireFromString("100.00"),
			VatRate:  rate("0.27"),
		})
		require.NoError(t, err)
		return p
	}

	t.Run("net mode", func(t *testing.T) {
		frag := formatter.Build(ctx, newUSD(t), ModeNet, Settings{Label: true, VatInfo: true})
		assert.Equal(t, ModeNet, frag.Mode)
		assert.Equal(t, DefaultWrapperElement, frag.Element)
		assert.Equal(t, "Net", frag.Label)
		assert.Equal(t, "100.00", frag.Formatted)
		assert.True(t, frag.ShowVatInfo)
	})

	t.Run("gross mode", func(t *testing.T) {
		frag := formatter.Build(ctx, newUSD(t), ModeGross, Settings{Label: true})
		assert.Equal(t, "Gross", frag.Label)
		assert.Equal(t, "127.00", frag.Formatted)
		assert.Empty(t, frag.Children)
	})

	t.Run("vat mode forces vat info off", func(t *testing.T) {
		frag := formatter.Build(ctx, newUSD(t), ModeVatValue, Settings{Label: true, VatInfo: true})
		assert.Equal(t, "VAT", frag.Label)
		assert.Equal(t, "27.00", frag.Formatted)
		assert.False(t, frag.ShowVatInfo)
	})

	t.Run("full mode suppresses vat info on both halves", func(t *testing.T) {
		frag := formatter.Build(ctx, newUSD(t), ModeFull, Settings{VatInfo: true})
		require.Len(t, frag.Children, 2)
		assert.Equal(t, ModeNet, frag.Children[0].Mode)
		assert.Equal(t, ModeGross, frag.Children[1].Mode)
		assert.False(t, frag.Children[0].ShowVatInfo)
		assert.False(t, frag.Children[1].ShowVatInfo)
	})

	t.Run("display currency converts when a rate exists", func(t *testing.T) {
		stores.rates["USD:EUR"] = decimal.RequireFromString("0.9")
		defer delete(stores.rates, "USD:EUR")

		frag := formatter.Build(ctx, newUSD(t), ModeNet, Settings{DisplayCurrency: "EUR"})
		assert.Equal(t, "EUR", frag.Currency.ID)
		assert.Equal(t, "90.00", frag.Formatted)
	})

	t.Run("display currency without a rate keeps native figures", func(t *testing.T) {
		frag := formatter.Build(ctx, newUSD(t), ModeNet, Settings{DisplayCurrency: "EUR"})
		assert.Equal(t, "USD", frag.Currency.ID)
		assert.Equal(t, "100.00", frag.Formatted)
	})

	t.Run("hooks may mutate settings before the build", func(t *testing.T) {
		hooked := NewFormatter(NewTextRenderer(), func(s *Settings, v Values, c Currency) {
			assert.Equal(t, "USD", c.ID)
			s.Label = true
		})
		frag := hooked.Build(ctx, newUSD(t), ModeNet, Settings{})
		assert.Equal(t, "Net", frag.Label)
	})

	t.Run("missing price still formats", func(t *testing.T) {
		frag := formatter.Build(ctx, factory.MissingPrice(), ModeGross, Settings{})
		assert.Equal(t, NoCurrencyID, frag.Currency.ID)
		assert.Equal(t, "0.00", frag.Formatted)
	})
}

func TestTextRenderer(t *testing.T) {
	factory, _ := newTestFactory()
	formatter := NewFormatter(NewTextRenderer())
	ctx := context.Background()

	p, err := factory.NewPrice(ctx, Values{
		Currency: "USD",
		Base:     BaseNet,
		Net:      decimal.RequireFromString("100.00"),
		VatRate:  rate("0.27"),
	})
	require.NoError(t, err)

	assert.Equal(t, "100.00 USD", formatter.FormatNet(ctx, p, Settings{}))
	assert.Equal(t, "Gross: 127.00 USD", formatter.FormatGross(ctx, p, Settings{Label: true}))
	assert.Equal(t, "100.00 USD (VAT 27%)", formatter.FormatNet(ctx, p, Settings{VatInfo: true}))
	assert.Equal(t, "VAT: 27.00 USD", formatter.FormatVat(ctx, p, Settings{Label: true, VatInfo: true}))
	assert.Equal(t, "100.00 USD / 127.00 USD", formatter.FormatFull(ctx, p, Settings{VatInfo: true}))
}
