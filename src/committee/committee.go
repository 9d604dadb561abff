package committee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidMember = errors.New("invalid committee member address")

// Source of committee membership
type Committee interface {
	IsMember(ctx context.Context, address common.Address) (bool, error)
}

// Fixed list of members
type Static struct {
	members map[common.Address]struct{}
}

func NewStatic(members ...common.Address) (self *Static) {
	self = new(Static)
	self.members = make(map[common.Address]struct{}, len(members))
	for _, member := range members {
		self.members[member] = struct{}{}
	}
	return
}

// Parses hex addresses
func NewStaticFromHex(members []string) (self *Static, err error) {
	addresses := make([]common.Address, 0, len(members))
	for _, member := range members {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}
		if !common.IsHexAddress(member) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMember, member)
		}
		addresses = append(addresses, common.HexToAddress(member))
	}
	return NewStatic(addresses...), nil
}

func (self *Static) IsMember(ctx context.Context, address common.Address) (bool, error) {
	_, ok := self.members[address]
	return ok, nil
}

const CommitteeABI = `[
	{"inputs":[{"name":"","type":"address"}],"name":"members","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

// Committee contract exposing members(address) returns (bool)
type Contract struct {
	caller  ethereum.ContractCaller
	address common.Address
	abi     abi.ABI
}

func NewContract(caller ethereum.ContractCaller, address common.Address) (self *Contract, err error) {
	self = new(Contract)
	self.caller = caller
	self.address = address
	self.abi, err = abi.JSON(strings.NewReader(CommitteeABI))
	return
}

func (self *Contract) IsMember(ctx context.Context, address common.Address) (isMember bool, err error) {
	data, err := self.abi.Pack("members", address)
	if err != nil {
		return
	}

	raw, err := self.caller.CallContract(ctx, ethereum.CallMsg{To: &self.address, Data: data}, nil)
	if err != nil {
		return
	}

	out, err := self.abi.Unpack("members", raw)
	if err != nil {
		return
	}
	if len(out) != 1 {
		err = fmt.Errorf("members returned %d values", len(out))
		return
	}

	isMember, ok := out[0].(bool)
	if !ok {
		err = fmt.Errorf("members returned %T", out[0])
	}
	return
}
