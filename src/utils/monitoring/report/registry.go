package report

import (
	"go.uber.org/atomic"
)

type RegistryErrors struct {
	Authorization atomic.Uint64 `json:"authorization"`
	Validation    atomic.Uint64 `json:"validation"`
	Capacity      atomic.Uint64 `json:"capacity"`
	Signature     atomic.Uint64 `json:"signature"`
	Oracle        atomic.Uint64 `json:"oracle"`
	Transfer      atomic.Uint64 `json:"transfer"`
	Store         atomic.Uint64 `json:"store"`
}

type RegistryState struct {
	OperationsSucceeded atomic.Uint64 `json:"operations_succeeded"`
	OperationsFailed    atomic.Uint64 `json:"operations_failed"`
	EventsEmitted       atomic.Uint64 `json:"events_emitted"`
	ThirdPartiesAdded   atomic.Uint64 `json:"third_parties_added"`
	ItemsAdded          atomic.Uint64 `json:"items_added"`
	SlotsBought         atomic.Uint64 `json:"slots_bought"`
	SlotsConsumed       atomic.Uint64 `json:"slots_consumed"`

	LastOperationTimestamp atomic.Int64 `json:"last_operation_timestamp"`
}

type RegistryReport struct {
	State  RegistryState  `json:"state"`
	Errors RegistryErrors `json:"errors"`
}
