package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type httpServerEnv struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"HTTP_PORT" envDefault:"8080"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type httpServer struct {
	raw httpServerEnv
}

func NewHTTPServerConfig() (*httpServer, error) {
	var raw httpServerEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &httpServer{raw: raw}, nil
}

func (cfg *httpServer) Host() string { return cfg.raw.Host }
func (cfg *httpServer) Port() int    { return cfg.raw.Port }
func (cfg *httpServer) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host(), cfg.Port())
}

func (cfg *httpServer) ReadTimeout() time.Duration {
	return cfg.raw.ReadTimeout
}

func (cfg *httpServer) WriteTimeout() time.Duration {
	return cfg.raw.WriteTimeout
}

func (cfg *httpServer) ShutdownTimeout() time.Duration {
	return cfg.raw.ShutdownTimeout
}

// ======= gRPC health =======

type healthEnv struct {
	Host string `env:"GRPC_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"GRPC_PORT" envDefault:"9090"`
}

type health struct {
	raw healthEnv
}

func NewHealthConfig() (*health, error) {
	var raw healthEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &health{raw: raw}, nil
}

func (cfg *health) Host() string { return cfg.raw.Host }
func (cfg *health) Port() int    { return cfg.raw.Port }
func (cfg *health) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host(), cfg.Port())
}
