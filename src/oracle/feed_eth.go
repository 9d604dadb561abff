package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Subset of the Chainlink AggregatorV3Interface
const AggregatorV3ABI = `[
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"latestRoundData","outputs":[
		{"internalType":"uint80","name":"roundId","type":"uint80"},
		{"internalType":"int256","name":"answer","type":"int256"},
		{"internalType":"uint256","name":"startedAt","type":"uint256"},
		{"internalType":"uint256","name":"updatedAt","type":"uint256"},
		{"internalType":"uint80","name":"answeredInRound","type":"uint80"}
	],"stateMutability":"view","type":"function"}
]`

var ErrUnexpectedOutput = errors.New("unexpected feed output")

// Chainlink aggregator queried with eth_call, which never modifies chain state
type ChainlinkFeed struct {
	caller  ethereum.ContractCaller
	address common.Address
	abi     abi.ABI
}

func NewChainlinkFeed(caller ethereum.ContractCaller, address common.Address) (self *ChainlinkFeed, err error) {
	self = new(ChainlinkFeed)
	self.caller = caller
	self.address = address
	self.abi, err = abi.JSON(strings.NewReader(AggregatorV3ABI))
	return
}

func (self *ChainlinkFeed) call(ctx context.Context, method string) (out []interface{}, err error) {
	data, err := self.abi.Pack(method)
	if err != nil {
		return
	}

	raw, err := self.caller.CallContract(ctx, ethereum.CallMsg{To: &self.address, Data: data}, nil)
	if err != nil {
		return
	}

	return self.abi.Unpack(method, raw)
}

func (self *ChainlinkFeed) LatestRoundData(ctx context.Context) (round *RoundData, err error) {
	out, err := self.call(ctx, "latestRoundData")
	if err != nil {
		return
	}
	if len(out) != 5 {
		err = fmt.Errorf("%w: latestRoundData returned %d values", ErrUnexpectedOutput, len(out))
		return
	}

	answer, ok := out[1].(*big.Int)
	if !ok {
		err = fmt.Errorf("%w: answer is %T", ErrUnexpectedOutput, out[1])
		return
	}
	updatedAt, ok := out[3].(*big.Int)
	if !ok || !updatedAt.IsInt64() {
		err = fmt.Errorf("%w: updatedAt is %v", ErrUnexpectedOutput, out[3])
		return
	}

	round = &RoundData{
		Answer:    answer,
		UpdatedAt: time.Unix(updatedAt.Int64(), 0),
	}
	return
}

func (self *ChainlinkFeed) Decimals(ctx context.Context) (decimals uint8, err error) {
	out, err := self.call(ctx, "decimals")
	if err != nil {
		return
	}
	if len(out) != 1 {
		err = fmt.Errorf("%w: decimals returned %d values", ErrUnexpectedOutput, len(out))
		return
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		err = fmt.Errorf("%w: decimals is %T", ErrUnexpectedOutput, out[0])
	}
	return
}
