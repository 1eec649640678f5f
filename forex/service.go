package forex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	worth "go-btc-worth"
)

const ApiUrlBase = "https://api.exchangerate.host"

// The calculator only ever converts USD-quoted prices into rupees.
const (
	baseCurrency   = "USD"
	symbolCurrency = "INR"
)

// ErrUnavailable reported when the forex source has no rate for the
// requested date. A response missing either the date key or the symbol
// is rejected, never substituted.
var ErrUnavailable = errors.New("forex: no rate for requested date")

// Service wraps the forex timeseries REST API
type Service interface {
	// Rate loads the USD to INR conversion rate for a calendar day.
	Rate(ctx context.Context, day time.Time) (worth.Rate, error)
}

// service forex API
type service struct {
	// url base API url
	url string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid forex Service. Empty url and zero
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

// Rate loads the USD to INR conversion rate for a calendar day.
func (s *service) Rate(ctx context.Context, day time.Time) (worth.Rate, error) {
	type Response struct {
		Rates map[string]map[string]float64
	}

	date := day.UTC().Format(time.DateOnly)
	url := fmt.Sprintf("%v/timeseries?start_date=%v&end_date=%v&symbols=%v&base=%v",
		s.url, date, date, symbolCurrency, baseCurrency)

	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return 0, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode/100 != 2 {
		return 0, fmt.Errorf("forex: http %v", httpResponse.StatusCode)
	}

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return 0, fmt.Errorf("reading json: %w", err)
	}

	var response Response
	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return 0, fmt.Errorf("decoding json: %w", err)
	}

	series, ok := response.Rates[date]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, date)
	}
	rate, ok := series[symbolCurrency]
	if !ok {
		return 0, fmt.Errorf("%w: %v missing %v", ErrUnavailable, date, symbolCurrency)
	}

	return worth.Rate(rate), nil
}
