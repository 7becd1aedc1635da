package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

// ======= Store API =======

type storeAPIEnv struct {
	BaseURL  string        `env:"STORE_API_BASE_URL,required"`
	Timeout  time.Duration `env:"STORE_API_TIMEOUT" envDefault:"10s"`
	PageSize int           `env:"STORE_API_PAGE_SIZE" envDefault:"20"`
}

type storeAPI struct {
	raw storeAPIEnv
}

func NewStoreAPIConfig() (*storeAPI, error) {
	var raw storeAPIEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &storeAPI{raw: raw}, nil
}

func (cfg *storeAPI) BaseURL() string        { return cfg.raw.BaseURL }
func (cfg *storeAPI) Timeout() time.Duration { return cfg.raw.Timeout }
func (cfg *storeAPI) PageSize() int          { return cfg.raw.PageSize }

// ======= Checkout =======

type checkoutEnv struct {
	OrderStatusURL  string        `env:"ORDER_STATUS_URL" envDefault:"/orderstatus"`
	PromoMethod     string        `env:"PROMO_PAYMENT_METHOD" envDefault:"bKash"`
	PromoDiscount   string        `env:"PROMO_DISCOUNT" envDefault:"100"`
	TrackingTimeout time.Duration `env:"TRACKING_TIMEOUT" envDefault:"2s"`
}

type checkout struct {
	raw      checkoutEnv
	discount decimal.Decimal
}

func NewCheckoutConfig() (*checkout, error) {
	var raw checkoutEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	discount, err := decimal.NewFromString(raw.PromoDiscount)
	if err != nil {
		return nil, err
	}
	return &checkout{raw: raw, discount: discount}, nil
}

func (cfg *checkout) OrderStatusURL() string         { return cfg.raw.OrderStatusURL }
func (cfg *checkout) PromoMethod() string            { return cfg.raw.PromoMethod }
func (cfg *checkout) PromoDiscount() decimal.Decimal { return cfg.discount }
func (cfg *checkout) TrackingTimeout() time.Duration { return cfg.raw.TrackingTimeout }

// ======= Catalog =======

type catalogEnv struct {
	RefreshDebounce time.Duration `env:"CATALOG_REFRESH_DEBOUNCE" envDefault:"300ms"`
	PageSize        int           `env:"CATALOG_PAGE_SIZE" envDefault:"12"`
	LoadTimeout     time.Duration `env:"CATALOG_LOAD_TIMEOUT" envDefault:"1m"`
}

type catalog struct {
	raw catalogEnv
}

func NewCatalogConfig() (*catalog, error) {
	var raw catalogEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &catalog{raw: raw}, nil
}

func (cfg *catalog) RefreshDebounce() time.Duration { return cfg.raw.RefreshDebounce }
func (cfg *catalog) PageSize() int                  { return cfg.raw.PageSize }
func (cfg *catalog) LoadTimeout() time.Duration     { return cfg.raw.LoadTimeout }
