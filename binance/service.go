package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	worth "go-btc-worth"
)

const ApiUrlBase = "https://api.binance.com"

// ErrUnavailable reported when no candle exists for the requested window.
var ErrUnavailable = errors.New("binance: no candle for requested window")

// Service wraps the Binance spot market REST API
type Service interface {
	// CurrentPrice loads the current spot price for a trading pair.
	CurrentPrice(ctx context.Context, pair string) (worth.Price, error)

	// HistoricalPrice loads the opening price of the daily candle at or
	// after the start of day. Returns ErrUnavailable when the exchange
	// has no candle for that window.
	HistoricalPrice(ctx context.Context, pair string, day time.Time) (worth.Price, error)
}

// service Binance API
type service struct {
	// url base API url
	url string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid Binance Service. Empty url and zero
// timeout select the production endpoint and a 5 second timeout.
func NewService(url string, timeout time.Duration) Service {
	if url == "" {
		url = ApiUrlBase
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &service{
		url: url,
		client: http.Client{
			Timeout: timeout,
		},
	}
}

// CurrentPrice loads the current spot price for a trading pair.
func (s *service) CurrentPrice(ctx context.Context, pair string) (worth.Price, error) {
	type Response struct {
		Symbol string
		Price  string // string-encoded float
	}

	url := fmt.Sprintf("%v/api/v3/ticker/price?symbol=%v", s.url, pair)

	bytes, err := s.get(ctx, url)
	if err != nil {
		return 0, err
	}

	var response Response
	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return 0, fmt.Errorf("decoding json: %w", err)
	}

	f, err := strconv.ParseFloat(response.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("bad price value: %w", err)
	}

	return worth.Price(f), nil
}

// HistoricalPrice loads the opening price of the first daily candle at or
// after the start of day.
func (s *service) HistoricalPrice(ctx context.Context, pair string, day time.Time) (worth.Price, error) {
	start := dayStart(day)
	url := fmt.Sprintf("%v/api/v3/klines?symbol=%v&interval=1d&startTime=%v&limit=1", s.url, pair, start.UnixMilli())

	bytes, err := s.get(ctx, url)
	if err != nil {
		return 0, err
	}

	// candle rows mix numbers and strings, the open price is element [1]
	var candles [][]json.RawMessage
	err = json.Unmarshal(bytes, &candles)
	if err != nil {
		return 0, fmt.Errorf("decoding json: %w", err)
	}

	if len(candles) == 0 {
		return 0, fmt.Errorf("%w: %v at %v", ErrUnavailable, pair, start.Format(time.DateOnly))
	}
	if len(candles[0]) < 2 {
		return 0, fmt.Errorf("binance: malformed candle for %v", pair)
	}

	var open string
	err = json.Unmarshal(candles[0][1], &open)
	if err != nil {
		return 0, fmt.Errorf("bad candle open value: %w", err)
	}

	f, err := strconv.ParseFloat(open, 64)
	if err != nil {
		return 0, fmt.Errorf("bad candle open value: %w", err)
	}

	return worth.Price(f), nil
}

func (s *service) get(ctx context.Context, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode/100 != 2 {
		return nil, fmt.Errorf("binance: http %v", httpResponse.StatusCode)
	}

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading json: %w", err)
	}
	return bytes, nil
}

// dayStart truncates a time to midnight UTC of the same calendar day.
func dayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
