package token

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/decentraland/thirdparty-registry/src/utils/logger"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
)

const ERC20ABI = `[
	{"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transferFrom","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// Backend needed for sending transfers and waiting for their receipts
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// ERC-20 token. Transfers are sent from the transactor account, which needs the payer's allowance.
type ERC20 struct {
	log            *logrus.Entry
	backend        Backend
	contract       *bind.BoundContract
	opts           *bind.TransactOpts
	receiptTimeout time.Duration
}

func NewERC20(backend Backend, address common.Address, key *ecdsa.PrivateKey, chainId *big.Int) (self *ERC20, err error) {
	self = new(ERC20)
	self.log = logger.NewSublogger("erc20").WithField("token", address.Hex())
	self.backend = backend
	self.receiptTimeout = 2 * time.Minute

	parsed, err := abi.JSON(strings.NewReader(ERC20ABI))
	if err != nil {
		return
	}
	self.contract = bind.NewBoundContract(address, parsed, backend, backend, backend)

	self.opts, err = bind.NewKeyedTransactorWithChainID(key, chainId)
	if err != nil {
		return
	}
	return
}

func (self *ERC20) WithReceiptTimeout(v time.Duration) *ERC20 {
	self.receiptTimeout = v
	return self
}

func (self *ERC20) TransferFrom(ctx context.Context, from, to common.Address, amount *big.Int) (err error) {
	ctx, cancel := context.WithTimeout(ctx, self.receiptTimeout)
	defer cancel()

	opts := *self.opts
	opts.Context = ctx

	tx, err := self.contract.Transact(&opts, "transferFrom", from, to, amount)
	if err != nil {
		return
	}

	log := self.log.WithField("tx", tx.Hash().Hex()).WithField("from", from.Hex()).WithField("amount", amount)
	log.Debug("Transfer sent")

	receipt, err := bind.WaitMined(ctx, self.backend, tx)
	if err != nil {
		return
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		log.Warn("Transfer reverted")
		return fmt.Errorf("%w: tx %s reverted", ErrTransferFailed, tx.Hash().Hex())
	}

	log.Info("Transfer mined")
	return nil
}

func (self *ERC20) BalanceOf(ctx context.Context, address common.Address) (balance *big.Int, err error) {
	var out []interface{}
	err = self.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", address)
	if err != nil {
		return
	}
	balance = *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	return
}
