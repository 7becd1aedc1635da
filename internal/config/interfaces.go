package config

import (
	"time"

	"github.com/shopspring/decimal"
)

type Client interface {
	Host() string
	Port() int
	Address() string
}

type Server interface {
	Client
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Spanner interface {
	Database() string
	Enabled() bool
	Timeout() time.Duration
	MigrationDirectory() string
}

type Redis interface {
	URL() string
	Enabled() bool
	TTL() time.Duration
}

type StoreAPI interface {
	BaseURL() string
	Timeout() time.Duration
	PageSize() int
}

type Checkout interface {
	OrderStatusURL() string
	PromoMethod() string
	PromoDiscount() decimal.Decimal
	TrackingTimeout() time.Duration
}

type Catalog interface {
	RefreshDebounce() time.Duration
	PageSize() int
	LoadTimeout() time.Duration
}
