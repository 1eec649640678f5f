package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")

	assert.Nil(t, err)
	assert.Equal(t, ":8080", c.Server.ListenAddress)
	assert.Equal(t, "https://api.binance.com", c.Binance.BaseURL)
	assert.Equal(t, "https://api.exchangerate.host", c.Forex.BaseURL)
	assert.Equal(t, 10*time.Second, c.Refresh.Interval)
	assert.Equal(t, "USDT", c.Refresh.Currency)
	assert.Equal(t, "2020-01-01", c.Refresh.Date)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
server:
  listen_address: ":9090"
binance:
  base_url: "http://localhost:1234"
  timeout: 2s
refresh:
  interval: 30s
  currency: INR
  date: "2017-12-01"
`
	assert.Nil(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := Load(path)

	assert.Nil(t, err)
	assert.Equal(t, ":9090", c.Server.ListenAddress)
	assert.Equal(t, "http://localhost:1234", c.Binance.BaseURL)
	assert.Equal(t, 2*time.Second, c.Binance.Timeout)
	assert.Equal(t, 30*time.Second, c.Refresh.Interval)

	input := c.Input()
	assert.Equal(t, "INR", input.Currency.Code)
	assert.Equal(t, "2017-12-01", input.Date.Format(time.DateOnly))
}

func TestLoad_UnknownCurrency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	assert.Nil(t, os.WriteFile(path, []byte("refresh:\n  currency: XYZ\n"), 0o600))

	_, err := Load(path)

	assert.NotNil(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

	assert.NotNil(t, err)
}
