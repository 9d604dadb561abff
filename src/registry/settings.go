package registry

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

// Stores the initial settings. Fails if the registry already has them.
func (self *Registry) Initialize(ctx context.Context, settings *model.Settings) (err error) {
	for name, address := range map[string]common.Address{
		"owner":          settings.Owner,
		"aggregator":     settings.Aggregator,
		"fees collector": settings.FeesCollector,
		"committee":      settings.Committee,
		"accepted token": settings.AcceptedToken,
		"oracle":         settings.Oracle,
	} {
		if address == (common.Address{}) {
			return fmt.Errorf("%w: empty %s", ErrInvalidAddress, name)
		}
	}
	if settings.ItemSlotPrice.Sign() < 0 {
		return ErrInvalidPrice
	}

	self.mtx.Lock()
	defer self.mtx.Unlock()

	var events []*model.Event
	err = self.store.Transaction(ctx, func(state store.State) (err error) {
		_, err = state.GetSettings()
		if err == nil {
			return ErrAlreadyInitialized
		}
		if !errors.Is(err, store.ErrNotFound) {
			return
		}

		op := &operation{
			ctx:       ctx,
			state:     state,
			settings:  settings.Clone(),
			caller:    settings.Owner,
			timestamp: self.now().Unix(),
		}
		op.settings.Id = model.SettingsId

		err = state.PutSettings(op.settings)
		if err != nil {
			return
		}

		err = op.emit(EventInitialized, "", op.settings)
		if err != nil {
			return
		}

		events = op.events
		return
	})
	if err != nil {
		self.onFailure("initialize", settings.Owner, err)
		return
	}

	self.onSuccess("initialize", settings.Owner, events)
	return
}

// Changes an address setting. Only the owner can do it.
func (self *Registry) setAddress(ctx context.Context, name, event string, caller, value common.Address,
	field func(*model.Settings) *common.Address, check func(common.Address) error) error {
	return self.execute(ctx, name, caller, func(op *operation) (err error) {
		err = op.onlyOwner()
		if err != nil {
			return
		}

		if value == (common.Address{}) {
			return ErrInvalidAddress
		}

		current := field(op.settings)
		if *current == value {
			return ErrValueIsTheSame
		}

		if check != nil {
			err = check(value)
			if err != nil {
				return
			}
		}

		payload := &AddressSetEvent{Old: *current, New: value, Sender: op.caller}
		*current = value

		err = op.state.PutSettings(op.settings)
		if err != nil {
			return
		}

		return op.emit(event, "", payload)
	})
}

func (self *Registry) TransferOwnership(ctx context.Context, caller, newOwner common.Address) error {
	return self.setAddress(ctx, "transferOwnership", EventOwnershipTransferred, caller, newOwner,
		func(s *model.Settings) *common.Address { return &s.Owner }, nil)
}

func (self *Registry) SetThirdPartyAggregator(ctx context.Context, caller, aggregator common.Address) error {
	return self.setAddress(ctx, "setThirdPartyAggregator", EventThirdPartyAggregatorSet, caller, aggregator,
		func(s *model.Settings) *common.Address { return &s.Aggregator }, nil)
}

func (self *Registry) SetFeesCollector(ctx context.Context, caller, feesCollector common.Address) error {
	return self.setAddress(ctx, "setFeesCollector", EventFeesCollectorSet, caller, feesCollector,
		func(s *model.Settings) *common.Address { return &s.FeesCollector }, nil)
}

func (self *Registry) SetCommittee(ctx context.Context, caller, committee common.Address) error {
	return self.setAddress(ctx, "setCommittee", EventCommitteeSet, caller, committee,
		func(s *model.Settings) *common.Address { return &s.Committee },
		func(address common.Address) error {
			_, err := self.backend.Committee(address)
			return err
		})
}

func (self *Registry) SetAcceptedToken(ctx context.Context, caller, acceptedToken common.Address) error {
	return self.setAddress(ctx, "setAcceptedToken", EventAcceptedTokenSet, caller, acceptedToken,
		func(s *model.Settings) *common.Address { return &s.AcceptedToken },
		func(address common.Address) error {
			_, err := self.backend.Token(address)
			return err
		})
}

func (self *Registry) SetOracle(ctx context.Context, caller, oracle common.Address) error {
	return self.setAddress(ctx, "setOracle", EventOracleSet, caller, oracle,
		func(s *model.Settings) *common.Address { return &s.Oracle },
		func(address common.Address) error {
			_, err := self.backend.Oracle(address)
			return err
		})
}

func (self *Registry) SetItemSlotPrice(ctx context.Context, caller common.Address, price *big.Int) error {
	return self.execute(ctx, "setItemSlotPrice", caller, func(op *operation) (err error) {
		err = op.onlyOwner()
		if err != nil {
			return
		}

		if price == nil || price.Sign() < 0 {
			return ErrInvalidPrice
		}

		if op.settings.ItemSlotPrice.Cmp(price) == 0 {
			return ErrValueIsTheSame
		}

		payload := &PriceSetEvent{Old: model.NewBigInt(&op.settings.ItemSlotPrice.Int), New: model.NewBigInt(price), Sender: op.caller}
		op.settings.ItemSlotPrice = model.NewBigInt(price)

		err = op.state.PutSettings(op.settings)
		if err != nil {
			return
		}

		return op.emit(EventItemSlotPriceSet, "", payload)
	})
}

func (self *Registry) setValue(ctx context.Context, name, event string, caller common.Address, value bool,
	field func(*model.Settings) *bool) error {
	return self.execute(ctx, name, caller, func(op *operation) (err error) {
		err = op.onlyOwner()
		if err != nil {
			return
		}

		current := field(op.settings)
		if *current == value {
			return ErrValueIsTheSame
		}

		payload := &ValueSetEvent{Old: *current, New: value, Sender: op.caller}
		*current = value

		err = op.state.PutSettings(op.settings)
		if err != nil {
			return
		}

		return op.emit(event, "", payload)
	})
}

// Approval state of third parties added from now on
func (self *Registry) SetInitialThirdPartyValue(ctx context.Context, caller common.Address, value bool) error {
	return self.setValue(ctx, "setInitialThirdPartyValue", EventInitialThirdPartyValueSet, caller, value,
		func(s *model.Settings) *bool { return &s.InitialThirdPartyValue })
}

// Approval state of items added from now on
func (self *Registry) SetInitialItemValue(ctx context.Context, caller common.Address, value bool) error {
	return self.setValue(ctx, "setInitialItemValue", EventInitialItemValueSet, caller, value,
		func(s *model.Settings) *bool { return &s.InitialItemValue })
}
