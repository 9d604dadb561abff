package report

import (
	"go.uber.org/atomic"
)

type GatewayErrors struct {
	InvalidCaller atomic.Uint64 `json:"invalid_caller"`
	ReplayedCall  atomic.Uint64 `json:"replayed_call"`
	RateLimited   atomic.Uint64 `json:"rate_limited"`
	BadRequest    atomic.Uint64 `json:"bad_request"`
	Internal      atomic.Uint64 `json:"internal"`
}

type GatewayState struct {
	RequestsServed atomic.Uint64 `json:"requests_served"`
}

type GatewayReport struct {
	State  GatewayState  `json:"state"`
	Errors GatewayErrors `json:"errors"`
}
