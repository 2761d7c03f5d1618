package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Sapataria"`
		Host string `envconfig:"HOST" default:"127.0.0.1"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		// DataDir holds one JSON file per persisted key.
		DataDir string `envconfig:"DATA_DIR" default:"./data"`

		// ExportDir receives ledger exports and label sheets written by the TUI.
		ExportDir string `envconfig:"EXPORT_DIR" default:"./exports"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}

	Log struct {
		File string `envconfig:"LOG_FILE"`
	}
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.App.Host, strconv.Itoa(c.App.Port))
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
