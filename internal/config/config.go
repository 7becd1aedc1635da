package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/light-bringer/storefront-service/internal/config/env"
)

var cfg *config

type config struct {
	Server   Server
	Health   Client
	Logger   Logger
	Spanner  Spanner
	Redis    Redis
	StoreAPI StoreAPI
	Checkout Checkout
	Catalog  Catalog
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	serverCfg, err := envconfig.NewHTTPServerConfig()
	if err != nil {
		return fmt.Errorf("%s Server: %w", op, err)
	}

	healthCfg, err := envconfig.NewHealthConfig()
	if err != nil {
		return fmt.Errorf("%s Health: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	spannerCfg, err := envconfig.NewSpannerConfig()
	if err != nil {
		return fmt.Errorf("%s Spanner: %w", op, err)
	}

	redisCfg, err := envconfig.NewRedisConfig()
	if err != nil {
		return fmt.Errorf("%s Redis: %w", op, err)
	}

	storeAPICfg, err := envconfig.NewStoreAPIConfig()
	if err != nil {
		return fmt.Errorf("%s StoreAPI: %w", op, err)
	}

	checkoutCfg, err := envconfig.NewCheckoutConfig()
	if err != nil {
		return fmt.Errorf("%s Checkout: %w", op, err)
	}

	catalogCfg, err := envconfig.NewCatalogConfig()
	if err != nil {
		return fmt.Errorf("%s Catalog: %w", op, err)
	}

	cfg = &config{
		Server:   serverCfg,
		Health:   healthCfg,
		Logger:   loggerCfg,
		Spanner:  spannerCfg,
		Redis:    redisCfg,
		StoreAPI: storeAPICfg,
		Checkout: checkoutCfg,
		Catalog:  catalogCfg,
	}

	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
