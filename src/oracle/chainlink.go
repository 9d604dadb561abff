package oracle

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/decentraland/thirdparty-registry/src/utils/logger"

	"github.com/sirupsen/logrus"
)

// Validates and normalizes answers of a price feed
type ChainlinkOracle struct {
	log       *logrus.Entry
	feed      Feed
	tolerance time.Duration
	decimals  *uint8
	now       func() time.Time
}

func NewChainlinkOracle(feed Feed, tolerance time.Duration) (self *ChainlinkOracle) {
	self = new(ChainlinkOracle)
	self.log = logger.NewSublogger("chainlink-oracle")
	self.feed = feed
	self.tolerance = tolerance
	self.now = time.Now
	return
}

// Fixed decimals, the feed isn't asked for them
func (self *ChainlinkOracle) WithDecimals(decimals uint8) *ChainlinkOracle {
	self.decimals = &decimals
	return self
}

func (self *ChainlinkOracle) WithClock(now func() time.Time) *ChainlinkOracle {
	self.now = now
	return self
}

func (self *ChainlinkOracle) GetRate(ctx context.Context) (rate *big.Int, err error) {
	round, err := self.feed.LatestRoundData(ctx)
	if err != nil {
		return
	}

	if round.Answer == nil || round.Answer.Sign() <= 0 {
		err = fmt.Errorf("%w: answer %v", ErrInvalidRate, round.Answer)
		return
	}

	age := self.now().Sub(round.UpdatedAt)
	if age > self.tolerance {
		err = fmt.Errorf("%w: updated %s ago, tolerance %s", ErrStaleRate, age, self.tolerance)
		return
	}

	var decimals uint8
	if self.decimals != nil {
		decimals = *self.decimals
	} else {
		decimals, err = self.feed.Decimals(ctx)
		if err != nil {
			return
		}
	}
	if decimals > 2*RateDecimals {
		err = fmt.Errorf("%w: %d", ErrInvalidDecimals, decimals)
		return
	}

	rate = Normalize(round.Answer, decimals)
	if rate.Sign() <= 0 {
		err = fmt.Errorf("%w: answer %s with %d decimals", ErrInvalidRate, round.Answer, decimals)
		return nil, err
	}

	self.log.WithField("rate", rate).WithField("age", age).Trace("Got rate")
	return
}
