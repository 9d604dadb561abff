package registry

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

type ThirdPartyParam struct {
	Id            string           `json:"id"`
	Metadata      string           `json:"metadata"`
	Resolver      string           `json:"resolver"`
	Managers      []common.Address `json:"managers"`
	ManagerValues []bool           `json:"managerValues"`

	// Slots granted on creation, or added on update
	Slots uint64 `json:"slots"`
}

func setManagers(state store.State, thirdPartyId string, managers []common.Address, values []bool) (err error) {
	if len(managers) != len(values) {
		return ErrLengthMismatch
	}
	for i, manager := range managers {
		if manager == (common.Address{}) {
			return fmt.Errorf("%w: empty manager", ErrInvalidAddress)
		}
		err = state.SetManager(thirdPartyId, manager, values[i])
		if err != nil {
			return
		}
	}
	return
}

// Registers new third parties. Only the aggregator can do it.
func (self *Registry) AddThirdParties(ctx context.Context, caller common.Address, params []ThirdPartyParam) error {
	return self.execute(ctx, "addThirdParties", caller, func(op *operation) (err error) {
		err = op.onlyAggregator()
		if err != nil {
			return
		}

		for _, param := range params {
			if param.Id == "" {
				return ErrEmptyId
			}
			if param.Metadata == "" {
				return ErrEmptyMetadata
			}
			if param.Resolver == "" {
				return ErrEmptyResolver
			}
			if len(param.Managers) == 0 {
				return ErrEmptyManagers
			}

			_, getErr := op.state.GetThirdParty(param.Id)
			if getErr == nil {
				return fmt.Errorf("%w: %q", ErrThirdPartyAlreadyExists, param.Id)
			}
			if !errors.Is(getErr, store.ErrNotFound) {
				return getErr
			}

			seq, err := op.state.CountThirdParties()
			if err != nil {
				return err
			}

			thirdParty := &model.ThirdParty{
				Id:         param.Id,
				Seq:        seq,
				Metadata:   param.Metadata,
				Resolver:   param.Resolver,
				IsApproved: op.settings.InitialThirdPartyValue,
				MaxItems:   param.Slots,
			}
			err = op.state.PutThirdParty(thirdParty)
			if err != nil {
				return err
			}

			err = setManagers(op.state, param.Id, param.Managers, param.ManagerValues)
			if err != nil {
				return err
			}

			err = op.emit(EventThirdPartyAdded, param.Id, &ThirdPartyAddedEvent{
				ThirdPartyId:  param.Id,
				Metadata:      param.Metadata,
				Resolver:      param.Resolver,
				IsApproved:    thirdParty.IsApproved,
				Managers:      param.Managers,
				ManagerValues: param.ManagerValues,
				ItemSlots:     param.Slots,
				Sender:        op.caller,
			})
			if err != nil {
				return err
			}
		}

		op.committed = append(op.committed, func() { self.report.State.ThirdPartiesAdded.Add(uint64(len(params))) })
		return nil
	})
}

// Updates metadata, resolver and managers of existing third parties.
// Empty metadata or resolver keeps the current value. Only the aggregator can add slots.
func (self *Registry) UpdateThirdParties(ctx context.Context, caller common.Address, params []ThirdPartyParam) error {
	return self.execute(ctx, "updateThirdParties", caller, func(op *operation) (err error) {
		for _, param := range params {
			thirdParty, err := getThirdParty(op.state, param.Id)
			if err != nil {
				return err
			}

			isManager, err := op.isManager(param.Id, op.caller)
			if err != nil {
				return err
			}
			if !isManager && !op.isAggregator() {
				return ErrInvalidSender
			}

			if param.Metadata != "" {
				thirdParty.Metadata = param.Metadata
			}
			if param.Resolver != "" {
				thirdParty.Resolver = param.Resolver
			}

			if len(param.Managers) != len(param.ManagerValues) {
				return ErrLengthMismatch
			}
			for i, manager := range param.Managers {
				if manager == op.caller && !param.ManagerValues[i] {
					return ErrManagerCantSelfRemove
				}
			}
			err = setManagers(op.state, param.Id, param.Managers, param.ManagerValues)
			if err != nil {
				return err
			}

			if param.Slots > 0 {
				if !op.isAggregator() {
					return ErrOnlyAggregatorCanIncrementSlots
				}
				if thirdParty.MaxItems > math.MaxUint64-param.Slots {
					return ErrOverflow
				}
				thirdParty.MaxItems += param.Slots
			}

			err = op.state.PutThirdParty(thirdParty)
			if err != nil {
				return err
			}

			err = op.emit(EventThirdPartyUpdated, param.Id, &ThirdPartyUpdatedEvent{
				ThirdPartyId:  param.Id,
				Metadata:      thirdParty.Metadata,
				Resolver:      thirdParty.Resolver,
				Managers:      param.Managers,
				ManagerValues: param.ManagerValues,
				ItemSlots:     param.Slots,
				Sender:        op.caller,
			})
			if err != nil {
				return err
			}
		}
		return
	})
}
