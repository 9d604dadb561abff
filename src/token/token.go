package token

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInsufficientBalance   = errors.New("transfer amount exceeds balance")
	ErrInsufficientAllowance = errors.New("transfer amount exceeds allowance")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrTransferFailed        = errors.New("transfer failed")
)

// Payment token the slots are paid with
type Token interface {
	// Moves amount from the payer to the receiver using the registry's allowance
	TransferFrom(ctx context.Context, from, to common.Address, amount *big.Int) error
}
