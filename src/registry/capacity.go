package registry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/decentraland/thirdparty-registry/src/oracle"
	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

var rateUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(oracle.RateDecimals), nil)

// Price in accepted token units of qty slots, given a rate with 18 decimals
func price(qty uint64, itemSlotPrice, rate *big.Int) *big.Int {
	out := new(big.Int).SetUint64(qty)
	out.Mul(out, itemSlotPrice)
	out.Mul(out, rateUnit)
	return out.Quo(out, rate)
}

// Current price of qty slots
func (self *Registry) QuoteItemSlots(ctx context.Context, qty uint64) (out *big.Int, err error) {
	if qty == 0 {
		return nil, ErrInvalidQty
	}

	err = self.view(ctx, func(state store.State) (err error) {
		settings, err := state.GetSettings()
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotInitialized
		}
		if err != nil {
			return
		}

		rate, err := self.getRate(ctx, state, settings.Oracle)
		if err != nil {
			return
		}

		out = price(qty, &settings.ItemSlotPrice.Int, rate)
		return
	})
	return
}

// Adds qty slots to the third party, paid by the caller in the accepted token.
// Fails if the price at call time is above maxPrice.
func (self *Registry) BuyItemSlots(ctx context.Context, caller common.Address, thirdPartyId string, qty uint64, maxPrice *big.Int) error {
	return self.execute(ctx, "buyItemSlots", caller, func(op *operation) (err error) {
		thirdParty, err := getThirdParty(op.state, thirdPartyId)
		if err != nil {
			return
		}

		if qty == 0 {
			return ErrInvalidQty
		}
		if maxPrice == nil || maxPrice.Sign() < 0 {
			return ErrInvalidPrice
		}

		rate, err := self.getRate(op.ctx, op.state, op.settings.Oracle)
		if err != nil {
			return
		}

		total := price(qty, &op.settings.ItemSlotPrice.Int, rate)
		if total.Cmp(maxPrice) > 0 {
			return fmt.Errorf("%w: price %s, max price %s", ErrPriceHigherThanMaxPrice, total, maxPrice)
		}

		if thirdParty.MaxItems > math.MaxUint64-qty {
			return ErrOverflow
		}
		thirdParty.MaxItems += qty

		err = op.state.PutThirdParty(thirdParty)
		if err != nil {
			return
		}

		err = op.emit(EventThirdPartyItemSlotsBought, thirdPartyId, &ThirdPartyItemSlotsBoughtEvent{
			ThirdPartyId: thirdPartyId,
			Price:        model.NewBigInt(total),
			Value:        qty,
			Sender:       op.caller,
		})
		if err != nil {
			return
		}

		if total.Sign() > 0 {
			payment, err := self.backend.Token(op.settings.AcceptedToken)
			if err != nil {
				return err
			}
			from, to := op.caller, op.settings.FeesCollector
			op.external = append(op.external, func() error {
				return payment.TransferFrom(op.ctx, from, to, total)
			})
		}

		op.committed = append(op.committed, func() { self.report.State.SlotsBought.Add(qty) })
		return
	})
}
