package service

import (
	"context"
	"errors"
	"testing"

	"pricing-backend/internal/model"
	"pricing-backend/internal/price"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- In-memory repository fakes ---

type fakeCurrencyRepo struct {
	rows map[string]model.Currency
}

func (f *fakeCurrencyRepo) Create(ctx context.Context, currency *model.Currency) error { return nil }
func (f *fakeCurrencyRepo) Update(ctx context.Context, currency *model.Currency) error { return nil }
func (f *fakeCurrencyRepo) Delete(ctx context.Context, code string) error              { return nil }
func (f *fakeCurrencyRepo) List(ctx context.Context, page, limit int) ([]model.Currency, int64, error) {
	return nil, 0, nil
}

func (f *fakeCurrencyRepo) FindByCode(ctx context.Context, code string) (*model.Currency, error) {
	if row, ok := f.rows[code]; ok {
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeVatCategoryRepo struct {
	rows map[string]model.VatCategory
}

func (f *fakeVatCategoryRepo) Create(ctx context.Context, category *model.VatCategory) error {
	return nil
}
func (f *fakeVatCategoryRepo) Update(ctx context.Context, category *model.VatCategory) error {
	return nil
}
func (f *fakeVatCategoryRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeVatCategoryRepo) List(ctx context.Context, page, limit int) ([]model.VatCategory, int64, error) {
	return nil, 0, nil
}

func (f *fakeVatCategoryRepo) FindByID(ctx context.Context, id string) (*model.VatCategory, error) {
	if row, ok := f.rows[id]; ok {
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakePriceTypeRepo struct {
	rows map[string]model.PriceType
}

func (f *fakePriceTypeRepo) Create(ctx context.Context, priceType *model.PriceType) error {
	return nil
}
func (f *fakePriceTypeRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakePriceTypeRepo) List(ctx context.Context) ([]model.PriceType, error) {
	return nil, nil
}

func (f *fakePriceTypeRepo) FindByID(ctx context.Context, id string) (*model.PriceType, error) {
	if row, ok := f.rows[id]; ok {
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeExchangeRateRepo struct {
	rows map[string]model.ExchangeRate // keyed FROM:TO
}

func (f *fakeExchangeRateRepo) Upsert(ctx context.Context, rate *model.ExchangeRate) error {
	return nil
}
func (f *fakeExchangeRateRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeExchangeRateRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ExchangeRate, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeExchangeRateRepo) List(ctx context.Context, page, limit int) ([]model.ExchangeRate, int64, error) {
	return nil, 0, nil
}

func (f *fakeExchangeRateRepo) FindByPair(ctx context.Context, from, to string) (*model.ExchangeRate, error) {
	if row, ok := f.rows[from+":"+to]; ok {
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeProductRepo struct {
	rows map[uuid.UUID]model.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, product *model.Product) error { return nil }
func (f *fakeProductRepo) Update(ctx context.Context, product *model.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }
func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) List(ctx context.Context, page, limit int) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if row, ok := f.rows[id]; ok {
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// --- Fixtures ---

func newTestPriceService(products *fakeProductRepo) PriceService {
	currencies := &fakeCurrencyRepo{rows: map[string]model.Currency{
		"USD": {Code: "USD", RoundingStep: decimal.RequireFromString("0.01"), Decimals: 2},
		"EUR": {Code: "EUR", RoundingStep: decimal.RequireFromString("0.01"), Decimals: 2},
		model.NoCurrencyCode: {
			Code:         model.NoCurrencyCode,
			RoundingStep: decimal.RequireFromString("0.01"),
			Decimals:     2,
		},
	}}
	vatCategories := &fakeVatCategoryRepo{rows: map[string]model.VatCategory{
		"standard": {ID: "standard", Rate: decimal.RequireFromString("0.27")},
	}}
	priceTypes := &fakePriceTypeRepo{rows: map[string]model.PriceType{
		"retail": {ID: "retail", Label: "Retail"},
	}}
	rates := &fakeExchangeRateRepo{rows: map[string]model.ExchangeRate{
		"USD:EUR": {FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.9")},
	}}

	factory := NewPriceFactory(currencies, vatCategories, priceTypes, rates)
	formatter := price.NewFormatter(price.NewTextRenderer())
	return NewPriceService(factory, formatter, products)
}

// --- Tests ---

func TestPriceServicePreview(t *testing.T) {
	ctx := context.Background()
	svc := newTestPriceService(&fakeProductRepo{})

	t.Run("derives the gross side from net values", func(t *testing.T) {
		resp, err := svc.Preview(ctx, PreviewPriceRequest{
			Values: PriceValuesRequest{
				Currency:    "usd",
				Base:        "net",
				Net:         "100",
				VatCategory: "standard",
			},
			Mode: "gross",
		})
		require.NoError(t, err)

		assert.Equal(t, "USD", resp.Price.Currency)
		assert.False(t, resp.Price.CurrencyFellBack)
		assert.Equal(t, "100.00", resp.Price.Net)
		assert.Equal(t, "127.00", resp.Price.Gross)
		assert.Equal(t, "27.00", resp.Price.VatValue)
		assert.Equal(t, "27.00", resp.Price.VatRatePercent)
		assert.Equal(t, "127.00 USD", resp.Rendered)
		require.NotNil(t, resp.Fragment)
	})

	t.Run("unknown currency falls back to the placeholder", func(t *testing.T) {
		resp, err := svc.Preview(ctx, PreviewPriceRequest{
			Values: PriceValuesRequest{
				Currency:    "ZZZ",
				Base:        "net",
				Net:         "10",
				VatCategory: "standard",
			},
		})
		require.NoError(t, err)

		assert.Equal(t, model.NoCurrencyCode, resp.Price.Currency)
		assert.True(t, resp.Price.CurrencyFellBack)
	})

	t.Run("unparseable amount is a caller error", func(t *testing.T) {
		_, err := svc.Preview(ctx, PreviewPriceRequest{
			Values: PriceValuesRequest{
				Currency: "USD",
				Base:     "net",
				Net:      "not-a-number",
			},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, price.ErrInvalidArgument))
	})

	t.Run("modified price carries both breakdowns", func(t *testing.T) {
		resp, err := svc.Preview(ctx, PreviewPriceRequest{
			Values: PriceValuesRequest{
				Currency:     "USD",
				Base:         "net",
				Net:          "80",
				VatCategory:  "standard",
				ReasonOfDiff: "spring sale",
			},
			Original: &PriceValuesRequest{
				Currency:    "USD",
				Base:        "net",
				Net:         "100",
				VatCategory: "standard",
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "80.00", resp.Price.Net)
		require.NotNil(t, resp.Original)
		assert.Equal(t, "100.00", resp.Original.Net)
		assert.Equal(t, "spring sale", resp.ReasonOfDiff)
	})
}

func TestPriceServiceExchange(t *testing.T) {
	ctx := context.Background()
	svc := newTestPriceService(&fakeProductRepo{})

	t.Run("converts both sides with the published rate", func(t *testing.T) {
		resp, err := svc.Exchange(ctx, ExchangePriceRequest{
			Values: PriceValuesRequest{
				Currency:    "USD",
				Base:        "net",
				Net:         "100",
				VatCategory: "standard",
			},
			TargetCurrency: "eur",
		})
		require.NoError(t, err)

		assert.True(t, resp.RateFound)
		require.NotNil(t, resp.Converted)
		assert.Equal(t, "EUR", resp.Converted.Currency)
		assert.Equal(t, "90.00", resp.Converted.Net)
		assert.Equal(t, "114.30", resp.Converted.Gross)
	})

	t.Run("missing rate is reported, not an error", func(t *testing.T) {
		resp, err := svc.Exchange(ctx, ExchangePriceRequest{
			Values: PriceValuesRequest{
				Currency: "EUR",
				Base:     "net",
				Net:      "100",
			},
			TargetCurrency: "USD",
		})
		require.NoError(t, err)

		assert.False(t, resp.RateFound)
		assert.Nil(t, resp.Converted)
	})
}

func TestPriceServiceProductPrice(t *testing.T) {
	ctx := context.Background()

	priced := model.Product{
		ID:              uuid.New(),
		SKU:             "SKU-1",
		Name:            "Widget",
		CalculationBase: "net",
		CurrencyCode:    "USD",
		Net:             decimal.RequireFromString("100"),
	}
	rate := decimal.RequireFromString("0.27")
	priced.VatRate = &rate

	unpriced := model.Product{
		ID:              uuid.New(),
		SKU:             "SKU-2",
		Name:            "Gadget",
		CalculationBase: "net",
	}

	products := &fakeProductRepo{rows: map[uuid.UUID]model.Product{
		priced.ID:   priced,
		unpriced.ID: unpriced,
	}}
	svc := newTestPriceService(products)

	t.Run("derives and formats the stored price", func(t *testing.T) {
		resp, err := svc.ProductPrice(ctx, priced.ID.String(), ProductPriceOptions{Mode: "gross"})
		require.NoError(t, err)

		assert.False(t, resp.Missing)
		require.NotNil(t, resp.Price)
		assert.Equal(t, "127.00", resp.Price.Gross)
		assert.Equal(t, "127.00 USD", resp.Rendered)
	})

	t.Run("record without a currency yields a missing price", func(t *testing.T) {
		resp, err := svc.ProductPrice(ctx, unpriced.ID.String(), ProductPriceOptions{})
		require.NoError(t, err)

		assert.True(t, resp.Missing)
		assert.Nil(t, resp.Price)
	})

	t.Run("unknown product id fails", func(t *testing.T) {
		_, err := svc.ProductPrice(ctx, uuid.NewString(), ProductPriceOptions{})
		require.Error(t, err)
	})
}
