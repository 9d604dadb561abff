package registry

import (
	"errors"
	"fmt"

	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

func (self *operation) onlyOwner() error {
	if self.caller != self.settings.Owner {
		return ErrOnlyOwner
	}
	return nil
}

func (self *operation) isAggregator() bool {
	return self.caller == self.settings.Aggregator
}

func (self *operation) onlyAggregator() error {
	if !self.isAggregator() {
		return ErrOnlyAggregator
	}
	return nil
}

func (self *Registry) onlyCommittee(op *operation) (err error) {
	members, err := self.backend.Committee(op.settings.Committee)
	if err != nil {
		return
	}

	isMember, err := members.IsMember(op.ctx, op.caller)
	if err != nil {
		return fmt.Errorf("failed to check committee membership: %w", err)
	}
	if !isMember {
		return ErrOnlyCommittee
	}
	return nil
}

func (self *operation) isManager(thirdPartyId string, address common.Address) (bool, error) {
	return self.state.IsManager(thirdPartyId, address)
}

func (self *operation) onlyManager(thirdPartyId string) error {
	ok, err := self.isManager(thirdPartyId, self.caller)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOnlyManager
	}
	return nil
}

func getThirdParty(state store.State, id string) (thirdParty *model.ThirdParty, err error) {
	thirdParty, err = state.GetThirdParty(id)
	if errors.Is(err, store.ErrNotFound) {
		err = fmt.Errorf("%w: %q", ErrInvalidThirdParty, id)
	}
	return
}

func getItem(state store.State, thirdPartyId, itemId string) (item *model.Item, err error) {
	item, err = state.GetItem(thirdPartyId, itemId)
	if errors.Is(err, store.ErrNotFound) {
		err = fmt.Errorf("%w: %q", ErrInvalidItem, itemId)
	}
	return
}
