package env

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// Addr is the host:port of the server to connect to.
	Addr string `env:"RESPIO_ADDR,default=127.0.0.1:6379"`

	// DialTimeout bounds connection establishment only; individual
	// commands carry no deadline unless the caller adds one.
	DialTimeout time.Duration `env:"RESPIO_DIAL_TIMEOUT,default=5s"`

	// Metrics enables opencensus wire metrics on the client.
	Metrics bool `env:"RESPIO_METRICS"`

	// Debug switches the logger to development mode.
	Debug bool `env:"RESPIO_DEBUG"`
}

func LoadConfig(ctx context.Context) (*Config, error) {
	config := Config{}

	if err := godotenv.Load(".env.local"); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
