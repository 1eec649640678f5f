package calc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"

	worth "go-btc-worth"
	"go-btc-worth/binance"
	"go-btc-worth/forex"
)

// Engine reconciles the crypto price feed and the forex feed into a pair
// of quotes for the selected currency. It is safe for concurrent use: the
// snapshot is replaced atomically and readers always observe a consistent
// pair of quotes.
type Engine struct {
	// prices the crypto price feed
	prices binance.Service

	// rates the forex feed, consulted only for catalog entries that
	// carry a USD-quoted pair
	rates forex.Service

	metrics *Metrics

	logger log.Logger

	// now injectable clock for tests
	now func() time.Time

	// lock synchronizes snapshot and seq
	lock sync.RWMutex

	snapshot Snapshot

	// seq identifies the most recently started cycle. Completions whose
	// token no longer matches are discarded, so an older in-flight fetch
	// can never overwrite the result of a newer one.
	seq uint64
}

// New constructs a valid Engine in the Loading state. metrics may be nil.
func New(prices binance.Service, rates forex.Service, metrics *Metrics, logger log.Logger) *Engine {
	return &Engine{
		prices:   prices,
		rates:    rates,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		snapshot: Snapshot{State: Loading},
	}
}

// Snapshot returns the engine's current state and quotes.
func (e *Engine) Snapshot() Snapshot {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.snapshot
}

// Cycle runs one fetch-and-reconcile pass for a currency and an
// investment day, publishing Loading first and then either Ready with a
// fresh pair of quotes or Errored. The returned snapshot is the state
// observed immediately after this cycle completed.
func (e *Engine) Cycle(ctx context.Context, currency worth.Currency, day time.Time) Snapshot {
	begin := time.Now()
	token := e.begin(currency)

	current, historical, err := e.fetch(ctx, currency, day)
	if err != nil {
		e.fail(token, currency, err)
	} else {
		e.publish(token, currency, current, historical)
	}

	if e.metrics != nil {
		e.metrics.observe(time.Since(begin), err, currency, current)
	}
	return e.Snapshot()
}

// begin publishes Loading and hands out the token for this cycle.
func (e *Engine) begin(currency worth.Currency) uint64 {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.seq++
	e.snapshot = Snapshot{State: Loading, Currency: currency}
	return e.seq
}

func (e *Engine) fetch(ctx context.Context, currency worth.Currency, day time.Time) (worth.Price, worth.Price, error) {
	currentPrice, err := e.prices.CurrentPrice(ctx, currency.Pair)
	if err != nil {
		return 0, 0, fmt.Errorf("current price [%v]: %w", currency.Pair, err)
	}

	historicalPrice, err := e.prices.HistoricalPrice(ctx, currency.Pair, day)
	if err != nil {
		return 0, 0, fmt.Errorf("historical price [%v]: %w", currency.Pair, err)
	}

	currentRate, historicalRate := worth.Rate(1), worth.Rate(1)
	if currency.NeedsFx {
		currentRate = e.rateOrNeutral(ctx, e.now())
		historicalRate = e.rateOrNeutral(ctx, day)
	}

	current := worth.Price(float64(currentPrice) * float64(currentRate))
	historical := worth.Price(float64(historicalPrice) * float64(historicalRate))
	return current, historical, nil
}

// rateOrNeutral looks up a conversion rate, falling back to the neutral
// rate 1.0 on any failure. A forex outage degrades the quote to its USD
// value instead of aborting the cycle.
func (e *Engine) rateOrNeutral(ctx context.Context, day time.Time) worth.Rate {
	rate, err := e.rates.Rate(ctx, day)
	if err != nil {
		e.logger.Log("msg", "forex lookup failed, using neutral rate",
			"date", day.Format(time.DateOnly),
			"err", err,
		)
		return 1
	}
	return rate
}

func (e *Engine) publish(token uint64, currency worth.Currency, current worth.Price, historical worth.Price) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if token != e.seq {
		e.logger.Log("msg", "discarding stale cycle result", "currency", currency.Code)
		return
	}
	e.snapshot = Snapshot{
		State:      Ready,
		Currency:   currency,
		Current:    worth.Quote{Currency: currency.Code, Price: current},
		Historical: worth.Quote{Currency: currency.Code, Price: historical},
	}
}

func (e *Engine) fail(token uint64, currency worth.Currency, err error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if token != e.seq {
		e.logger.Log("msg", "discarding stale cycle failure", "currency", currency.Code)
		return
	}
	e.logger.Log("msg", "cycle failed", "currency", currency.Code, "err", err)
	e.snapshot = Snapshot{
		State:    Errored,
		Currency: currency,
		Err:      "Failed to fetch price data",
	}
}
