package registry

import (
	"context"
	"fmt"

	"github.com/decentraland/thirdparty-registry/src/utils/eth"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Manager signed permission to use qty slots. Salt makes otherwise equal permissions distinct.
type ConsumeSlotsParam struct {
	Qty       uint64        `json:"qty"`
	Salt      common.Hash   `json:"salt"`
	Signature hexutil.Bytes `json:"signature"`
}

// Uses slots of the third party, each authorization at most once
func (self *Registry) ConsumeSlots(ctx context.Context, caller common.Address, thirdPartyId string, params []ConsumeSlotsParam) error {
	return self.execute(ctx, "consumeSlots", caller, func(op *operation) (err error) {
		thirdParty, err := getThirdParty(op.state, thirdPartyId)
		if err != nil {
			return
		}

		err = self.consume(op, thirdParty, params)
		if err != nil {
			return
		}

		return op.state.PutThirdParty(thirdParty)
	})
}

// Applies the authorizations to thirdParty. Caller persists it.
func (self *Registry) consume(op *operation, thirdParty *model.ThirdParty, params []ConsumeSlotsParam) (err error) {
	for _, param := range params {
		if param.Qty == 0 {
			return ErrInvalidQty
		}

		digest, err := eth.ConsumeSlotsHash(self.domain, thirdParty.Id, param.Qty, param.Salt)
		if err != nil {
			return err
		}

		processed, err := op.state.IsMessageProcessed(digest)
		if err != nil {
			return err
		}
		if processed {
			return fmt.Errorf("%w: %s", ErrMessageAlreadyProcessed, digest.Hex())
		}

		signer, err := eth.RecoverSigner(digest, param.Signature)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
		}

		isManager, err := op.isManager(thirdParty.Id, signer)
		if err != nil {
			return err
		}
		if !isManager {
			return fmt.Errorf("%w: %s", ErrInvalidSigner, signer.Hex())
		}

		// Consumed slots also count as registered items
		if thirdParty.MaxItems-thirdParty.ConsumedSlots < param.Qty ||
			thirdParty.MaxItems-thirdParty.ItemsCount < param.Qty {
			return ErrNoItemSlotsAvailable
		}
		thirdParty.ConsumedSlots += param.Qty
		thirdParty.ItemsCount += param.Qty

		err = op.state.MarkMessageProcessed(&model.ProcessedMessage{
			Hash:         digest,
			ThirdPartyId: thirdParty.Id,
			Signer:       signer,
			Qty:          param.Qty,
		})
		if err != nil {
			return err
		}

		err = op.emit(EventItemSlotsConsumed, thirdParty.Id, &ItemSlotsConsumedEvent{
			ThirdPartyId: thirdParty.Id,
			Qty:          param.Qty,
			Signer:       signer,
			Sender:       op.caller,
			MessageHash:  digest,
		})
		if err != nil {
			return err
		}

		qty := param.Qty
		op.committed = append(op.committed, func() { self.report.State.SlotsConsumed.Add(qty) })
	}
	return
}
