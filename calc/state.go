package calc

import (
	worth "go-btc-worth"
)

// State the lifecycle state of the reconciliation engine
type State int

const (
	// Loading a cycle is in flight and no result is displayable
	Loading State = iota

	// Ready both quotes are present and consistent
	Ready

	// Errored the last cycle failed; no quotes are displayable
	Errored
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot one consistent observation of the engine. Quotes are only
// meaningful in the Ready state; Err is only meaningful in Errored.
// Both quotes always key off the same currency; they are published
// together or not at all.
type Snapshot struct {
	State      State
	Currency   worth.Currency
	Current    worth.Quote
	Historical worth.Quote
	Err        string
}
