package forex

import (
	"context"
	"time"

	"github.com/go-kit/log"

	worth "go-btc-worth"
)

// loggingService decorates a forex.Service with logging
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

func (s *loggingService) Rate(ctx context.Context, day time.Time) (rate worth.Rate, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "rate",
			"date", day.Format(time.DateOnly),
			"rate", rate,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Rate(ctx, day)
}
