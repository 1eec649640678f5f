package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	worth "go-btc-worth"
	"go-btc-worth/binance"
	"go-btc-worth/calc"
	"go-btc-worth/forex"
)

type Server struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

type Upstream struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Refresh struct {
	Interval time.Duration `yaml:"interval"`
	Currency string        `yaml:"currency"`
	Date     string        `yaml:"date"`
}

type Config struct {
	Server  Server   `yaml:"server"`
	Binance Upstream `yaml:"binance"`
	Forex   Upstream `yaml:"forex"`
	Refresh Refresh  `yaml:"refresh"`
}

// Load reads a yaml config file and applies defaults. An empty path
// yields the defaults without touching the filesystem.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}
	// Defaults
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Binance.BaseURL == "" {
		c.Binance.BaseURL = binance.ApiUrlBase
	}
	if c.Binance.Timeout == 0 {
		c.Binance.Timeout = 5 * time.Second
	}
	if c.Forex.BaseURL == "" {
		c.Forex.BaseURL = forex.ApiUrlBase
	}
	if c.Forex.Timeout == 0 {
		c.Forex.Timeout = 5 * time.Second
	}
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = calc.DefaultInterval
	}
	if c.Refresh.Currency == "" {
		c.Refresh.Currency = "USDT"
	}
	if c.Refresh.Date == "" {
		c.Refresh.Date = "2020-01-01"
	}

	if _, ok := worth.Lookup(c.Refresh.Currency); !ok {
		return nil, fmt.Errorf("unknown refresh currency: %v", c.Refresh.Currency)
	}
	if _, err := time.Parse(time.DateOnly, c.Refresh.Date); err != nil {
		return nil, fmt.Errorf("bad refresh date: %w", err)
	}
	return &c, nil
}

// Input converts the configured refresh currency and date into the
// scheduler's initial input. Load has already validated both.
func (c *Config) Input() calc.Input {
	currency, _ := worth.Lookup(c.Refresh.Currency)
	day, _ := time.Parse(time.DateOnly, c.Refresh.Date)
	return calc.Input{Currency: currency, Date: day}
}
