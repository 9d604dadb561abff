package oracle

import (
	"context"
	"fmt"
	"math/big"
)

// Always returns the same rate
type FixedOracle struct {
	rate *big.Int
}

func NewFixedOracle(rate *big.Int) (self *FixedOracle, err error) {
	if rate == nil || rate.Sign() <= 0 {
		err = fmt.Errorf("%w: fixed rate %v", ErrInvalidRate, rate)
		return
	}
	self = new(FixedOracle)
	self.rate = new(big.Int).Set(rate)
	return
}

func (self *FixedOracle) GetRate(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(self.rate), nil
}
