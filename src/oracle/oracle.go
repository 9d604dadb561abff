package oracle

import (
	"context"
	"errors"
	"math/big"
	"time"
)

// Decimals of every rate returned by an Oracle
const RateDecimals = 18

var (
	ErrInvalidRate     = errors.New("invalid rate")
	ErrStaleRate       = errors.New("stale rate")
	ErrInvalidDecimals = errors.New("invalid feed decimals")
)

// Source of the rate used for converting the slot price into payment token units
type Oracle interface {
	// Rate with RateDecimals decimals
	GetRate(ctx context.Context) (*big.Int, error)
}

// Latest answer of a price feed
type RoundData struct {
	Answer    *big.Int
	UpdatedAt time.Time
}

// Price feed wrapped by the ChainlinkOracle
type Feed interface {
	LatestRoundData(ctx context.Context) (*RoundData, error)
	Decimals(ctx context.Context) (uint8, error)
}

// Scales a value with the given decimals to RateDecimals
func Normalize(value *big.Int, decimals uint8) *big.Int {
	out := new(big.Int).Set(value)
	switch {
	case decimals < RateDecimals:
		out.Mul(out, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(RateDecimals-decimals)), nil))
	case decimals > RateDecimals:
		out.Quo(out, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals-RateDecimals)), nil))
	}
	return out
}
