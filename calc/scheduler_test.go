package calc

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"

	worth "go-btc-worth"
)

// cyclerMock counts cycles
type cyclerMock struct {
	count int32
}

func (m *cyclerMock) Cycle(_ context.Context, currency worth.Currency, _ time.Time) Snapshot {
	atomic.AddInt32(&m.count, 1)
	return Snapshot{State: Ready, Currency: currency}
}

func (m *cyclerMock) cycles() int32 {
	return atomic.LoadInt32(&m.count)
}

func input(code string, date string) Input {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return Input{Currency: mustLookup(code), Date: day}
}

func TestRefresher_CyclesImmediatelyOnStart(t *testing.T) {
	engine := &cyclerMock{}
	r := NewRefresher(engine, time.Hour, input("USDT", "2020-01-01"), log.NewNopLogger())

	r.Start()
	defer r.Stop()

	assert.Eventually(t, func() bool { return engine.cycles() == 1 }, time.Second, time.Millisecond)
}

func TestRefresher_CyclesImmediatelyOnInputChange(t *testing.T) {
	engine := &cyclerMock{}
	// interval far beyond the test duration, only input changes can tick
	r := NewRefresher(engine, time.Hour, input("USDT", "2020-01-01"), log.NewNopLogger())

	r.Start()
	defer r.Stop()

	assert.Eventually(t, func() bool { return engine.cycles() == 1 }, time.Second, time.Millisecond)

	r.SetInput(input("INR", "2020-01-01"))
	assert.Eventually(t, func() bool { return engine.cycles() == 2 }, time.Second, time.Millisecond)

	r.SetInput(input("INR", "2021-06-15"))
	assert.Eventually(t, func() bool { return engine.cycles() == 3 }, time.Second, time.Millisecond)

	assert.Equal(t, "INR", r.Input().Currency.Code)
}

func TestRefresher_EqualInputIsNoop(t *testing.T) {
	engine := &cyclerMock{}
	r := NewRefresher(engine, time.Hour, input("USDT", "2020-01-01"), log.NewNopLogger())

	r.Start()
	defer r.Stop()

	assert.Eventually(t, func() bool { return engine.cycles() == 1 }, time.Second, time.Millisecond)

	r.SetInput(input("USDT", "2020-01-01"))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), engine.cycles())
}

func TestRefresher_CyclesOnInterval(t *testing.T) {
	engine := &cyclerMock{}
	r := NewRefresher(engine, 5*time.Millisecond, input("USDT", "2020-01-01"), log.NewNopLogger())

	r.Start()
	defer r.Stop()

	assert.Eventually(t, func() bool { return engine.cycles() >= 3 }, time.Second, time.Millisecond)
}

func TestRefresher_StopPreventsFurtherCycles(t *testing.T) {
	engine := &cyclerMock{}
	r := NewRefresher(engine, 5*time.Millisecond, input("USDT", "2020-01-01"), log.NewNopLogger())

	r.Start()
	assert.Eventually(t, func() bool { return engine.cycles() >= 1 }, time.Second, time.Millisecond)
	r.Stop()

	after := engine.cycles()
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, after, engine.cycles())
}

func TestRefresher_StopWithoutStart(t *testing.T) {
	r := NewRefresher(&cyclerMock{}, time.Hour, input("USDT", "2020-01-01"), log.NewNopLogger())
	r.Stop() // must not panic or block
}
