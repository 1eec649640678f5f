package binance

import (
	"context"
	"time"

	"github.com/go-kit/log"

	worth "go-btc-worth"
)

// loggingService decorates a binance.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService returns a new logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) CurrentPrice(ctx context.Context, pair string) (price worth.Price, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "current_price",
			"pair", pair,
			"price", price,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CurrentPrice(ctx, pair)
}

func (s *loggingService) HistoricalPrice(ctx context.Context, pair string, day time.Time) (price worth.Price, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "historical_price",
			"pair", pair,
			"day", day.Format(time.DateOnly),
			"price", price,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.HistoricalPrice(ctx, pair, day)
}
