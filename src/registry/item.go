package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

type ItemParam struct {
	Id       string `json:"id"`
	Metadata string `json:"metadata"`
}

// Registers items of a third party, one slot each. Only managers can do it.
func (self *Registry) AddItems(ctx context.Context, caller common.Address, thirdPartyId string, items []ItemParam) error {
	return self.execute(ctx, "addItems", caller, func(op *operation) (err error) {
		thirdParty, err := getThirdParty(op.state, thirdPartyId)
		if err != nil {
			return
		}

		err = op.onlyManager(thirdPartyId)
		if err != nil {
			return
		}

		for _, param := range items {
			if thirdParty.ItemsCount >= thirdParty.MaxItems {
				return ErrNoItemSlotsAvailable
			}
			if param.Id == "" {
				return ErrEmptyId
			}
			if param.Metadata == "" {
				return ErrEmptyMetadata
			}

			_, getErr := op.state.GetItem(thirdPartyId, param.Id)
			if getErr == nil {
				return fmt.Errorf("%w: %q", ErrItemAlreadyExists, param.Id)
			}
			if !errors.Is(getErr, store.ErrNotFound) {
				return getErr
			}

			seq, err := op.state.CountItems(thirdPartyId)
			if err != nil {
				return err
			}

			item := &model.Item{
				ThirdPartyId: thirdPartyId,
				Id:           param.Id,
				Seq:          seq,
				Metadata:     param.Metadata,
				IsApproved:   op.settings.InitialItemValue,
			}
			err = op.state.PutItem(item)
			if err != nil {
				return err
			}
			thirdParty.ItemsCount++

			err = op.emit(EventItemAdded, thirdPartyId, &ItemAddedEvent{
				ThirdPartyId: thirdPartyId,
				ItemId:       param.Id,
				Metadata:     param.Metadata,
				Value:        item.IsApproved,
				Sender:       op.caller,
			})
			if err != nil {
				return err
			}
		}

		err = op.state.PutThirdParty(thirdParty)
		if err != nil {
			return
		}

		op.committed = append(op.committed, func() { self.report.State.ItemsAdded.Add(uint64(len(items))) })
		return
	})
}

// Changes metadata of items that are not approved. Only managers can do it.
func (self *Registry) UpdateItems(ctx context.Context, caller common.Address, thirdPartyId string, items []ItemParam) error {
	return self.execute(ctx, "updateItems", caller, func(op *operation) (err error) {
		_, err = getThirdParty(op.state, thirdPartyId)
		if err != nil {
			return
		}

		err = op.onlyManager(thirdPartyId)
		if err != nil {
			return
		}

		for _, param := range items {
			if param.Metadata == "" {
				return ErrEmptyMetadata
			}

			item, err := getItem(op.state, thirdPartyId, param.Id)
			if err != nil {
				return err
			}
			if item.IsApproved {
				return fmt.Errorf("%w: %q", ErrItemIsApproved, param.Id)
			}

			item.Metadata = param.Metadata
			err = op.state.PutItem(item)
			if err != nil {
				return err
			}

			err = op.emit(EventItemUpdated, thirdPartyId, &ItemUpdatedEvent{
				ThirdPartyId: thirdPartyId,
				ItemId:       param.Id,
				Metadata:     param.Metadata,
				Sender:       op.caller,
			})
			if err != nil {
				return err
			}
		}
		return
	})
}
