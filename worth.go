package worth

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amount a monetary amount in the selected currency
type Amount float64

// Price the price of one bitcoin in some currency
type Price float64

// Rate a foreign exchange rate
type Rate float64

// Quote a bitcoin price denominated in a catalog currency
type Quote struct {
	Currency string
	Price    Price
}

// ErrInvalidComputation reported when the worth of an investment cannot be
// computed because the historical price is missing, zero or negative.
var ErrInvalidComputation = errors.New("invalid worth computation: historical price missing or not positive")

// ErrInvalidAmount reported when a user-entered amount does not parse as a
// non-negative number.
var ErrInvalidAmount = errors.New("amount must be a non-negative number")

// ErrFutureDate reported when an investment date lies after today.
var ErrFutureDate = errors.New("investment date must not be in the future")

// ComputeWorth returns the present worth of an investment of amount made when
// one bitcoin cost historical, with one bitcoin now costing current.
// A historical price that is zero, negative or non-finite never produces a
// NaN or infinite result; it is reported as ErrInvalidComputation instead.
func ComputeWorth(amount Amount, historical Price, current Price) (Amount, error) {
	if historical <= 0 || !finite(float64(historical)) {
		return 0, ErrInvalidComputation
	}
	if !finite(float64(amount)) || !finite(float64(current)) {
		return 0, ErrInvalidComputation
	}
	bitcoin := float64(amount) / float64(historical)
	return Amount(bitcoin * float64(current)), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

var printer = message.NewPrinter(language.English)

// FormatWorth renders an amount with exactly two decimal places and
// locale grouping, e.g. 5000 -> "5,000.00".
func FormatWorth(a Amount) string {
	return printer.Sprintf("%.2f", float64(a))
}

// ParseAmount parses a user-entered amount. Negative and non-finite
// values are rejected.
func ParseAmount(s string) (Amount, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if f < 0 || !finite(f) {
		return 0, ErrInvalidAmount
	}
	return Amount(f), nil
}

// ValidateDate checks that an investment date does not exceed today.
// Comparison is at day granularity in UTC.
func ValidateDate(day time.Time, now time.Time) error {
	if day.UTC().Format(time.DateOnly) > now.UTC().Format(time.DateOnly) {
		return ErrFutureDate
	}
	return nil
}
