package calc

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/log"

	worth "go-btc-worth"
)

// DefaultInterval how often the refresher re-runs a cycle when inputs
// are unchanged.
const DefaultInterval = 10 * time.Second

// Input the user-selected currency and investment day driving the cycles.
type Input struct {
	Currency worth.Currency
	Date     time.Time
}

// Equal reports whether two inputs select the same currency and day.
func (in Input) Equal(other Input) bool {
	return in.Currency.Code == other.Currency.Code &&
		in.Date.UTC().Format(time.DateOnly) == other.Date.UTC().Format(time.DateOnly)
}

// Cycler runs one fetch-and-reconcile pass. Implemented by *Engine.
type Cycler interface {
	Cycle(ctx context.Context, currency worth.Currency, day time.Time) Snapshot
}

// Refresher drives a Cycler: one cycle immediately on Start, one
// immediately on every input change, and one per interval thereafter.
// The interval restarts whenever the input changes. Stop cancels the
// loop and waits for it to exit; no further cycles run afterwards.
type Refresher struct {
	engine   Cycler
	interval time.Duration
	logger   log.Logger

	inputs chan Input
	cancel context.CancelFunc
	done   chan struct{}

	lock  sync.Mutex
	input Input
}

// NewRefresher constructs a valid Refresher. A non-positive interval
// selects DefaultInterval.
func NewRefresher(engine Cycler, interval time.Duration, input Input, logger log.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{
		engine:   engine,
		interval: interval,
		logger:   logger,
		inputs:   make(chan Input, 1),
		input:    input,
	}
}

// Input returns the currently selected input.
func (r *Refresher) Input() Input {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.input
}

// SetInput changes the selected currency or investment day. An actual
// change triggers an immediate cycle without waiting for the next tick;
// setting an equal input is a no-op.
func (r *Refresher) SetInput(in Input) {
	r.lock.Lock()
	if r.input.Equal(in) {
		r.lock.Unlock()
		return
	}
	r.input = in
	// Replace any not-yet-consumed change; only the latest input matters.
	select {
	case <-r.inputs:
	default:
	}
	r.inputs <- in
	r.lock.Unlock()
}

// Start launches the refresh loop. It must be called at most once.
func (r *Refresher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.run(ctx)
}

// Stop cancels the refresh loop and waits for it to exit.
func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)

	input := r.Input()
	r.cycle(ctx, input)

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		select {
		case input = <-r.inputs:
			r.logger.Log("msg", "input changed",
				"currency", input.Currency.Code,
				"date", input.Date.Format(time.DateOnly),
			)
			r.cycle(ctx, input)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(r.interval)
		case <-timer.C:
			r.cycle(ctx, input)
			timer.Reset(r.interval)
		case <-ctx.Done():
			r.logger.Log("msg", "shutting down refresh loop")
			return
		}
	}
}

func (r *Refresher) cycle(ctx context.Context, input Input) {
	snapshot := r.engine.Cycle(ctx, input.Currency, input.Date)
	r.logger.Log("msg", "cycle completed",
		"currency", input.Currency.Code,
		"state", snapshot.State,
	)
}
