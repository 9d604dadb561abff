package token

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// In-memory ERC-20 like ledger. The registry is the only spender.
type Memory struct {
	mtx        sync.Mutex
	balances   map[common.Address]*big.Int
	allowances map[common.Address]*big.Int
}

func NewMemory() (self *Memory) {
	self = new(Memory)
	self.balances = make(map[common.Address]*big.Int)
	self.allowances = make(map[common.Address]*big.Int)
	return
}

func get(m map[common.Address]*big.Int, address common.Address) *big.Int {
	v, ok := m[address]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

func (self *Memory) Mint(to common.Address, amount *big.Int) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.balances[to] = new(big.Int).Add(get(self.balances, to), amount)
}

// Allowance the owner gives to the registry
func (self *Memory) Approve(owner common.Address, amount *big.Int) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.allowances[owner] = new(big.Int).Set(amount)
}

func (self *Memory) BalanceOf(address common.Address) *big.Int {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return get(self.balances, address)
}

func (self *Memory) Allowance(owner common.Address) *big.Int {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return get(self.allowances, owner)
}

func (self *Memory) TransferFrom(ctx context.Context, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	self.mtx.Lock()
	defer self.mtx.Unlock()

	balance := get(self.balances, from)
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: balance %s, amount %s", ErrInsufficientBalance, balance, amount)
	}

	allowance := get(self.allowances, from)
	if allowance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: allowance %s, amount %s", ErrInsufficientAllowance, allowance, amount)
	}

	self.allowances[from] = allowance.Sub(allowance, amount)
	self.balances[from] = balance.Sub(balance, amount)
	self.balances[to] = new(big.Int).Add(get(self.balances, to), amount)
	return nil
}
