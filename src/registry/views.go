package registry

import (
	"context"
	"errors"

	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

func (self *Registry) GetSettings(ctx context.Context) (out *model.Settings, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		out, err = state.GetSettings()
		if errors.Is(err, store.ErrNotFound) {
			err = ErrNotInitialized
		}
		return
	})
	return
}

func (self *Registry) GetThirdParty(ctx context.Context, id string) (out *model.ThirdParty, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		out, err = getThirdParty(state, id)
		return
	})
	return
}

func (self *Registry) ThirdPartiesCount(ctx context.Context) (out uint64, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		out, err = state.CountThirdParties()
		return
	})
	return
}

// Third parties in the order of registration
func (self *Registry) ListThirdParties(ctx context.Context, offset, limit int) (out []*model.ThirdParty, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		out, err = state.ListThirdParties(offset, limit)
		return
	})
	return
}

func (self *Registry) GetItem(ctx context.Context, thirdPartyId, itemId string) (out *model.Item, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		_, err = getThirdParty(state, thirdPartyId)
		if err != nil {
			return
		}
		out, err = getItem(state, thirdPartyId, itemId)
		return
	})
	return
}

// Registered items, including the ones counted by consumption
func (self *Registry) ItemsCount(ctx context.Context, thirdPartyId string) (out uint64, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		thirdParty, err := getThirdParty(state, thirdPartyId)
		if err != nil {
			return
		}
		out = thirdParty.ItemsCount
		return
	})
	return
}

// Items stored in the registry, in the order of registration
func (self *Registry) ListItems(ctx context.Context, thirdPartyId string, offset, limit int) (out []*model.Item, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		_, err = getThirdParty(state, thirdPartyId)
		if err != nil {
			return
		}
		out, err = state.ListItems(thirdPartyId, offset, limit)
		return
	})
	return
}

func (self *Registry) IsThirdPartyManager(ctx context.Context, thirdPartyId string, address common.Address) (out bool, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		_, err = getThirdParty(state, thirdPartyId)
		if err != nil {
			return
		}
		out, err = state.IsManager(thirdPartyId, address)
		return
	})
	return
}

func (self *Registry) GetRule(ctx context.Context, thirdPartyId, name string) (out bool, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		_, err = getThirdParty(state, thirdPartyId)
		if err != nil {
			return
		}
		out, err = state.GetRule(thirdPartyId, name)
		return
	})
	return
}

func (self *Registry) ListRules(ctx context.Context, thirdPartyId string) (out map[string]bool, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		_, err = getThirdParty(state, thirdPartyId)
		if err != nil {
			return
		}
		out, err = state.ListRules(thirdPartyId)
		return
	})
	return
}

func (self *Registry) IsMessageProcessed(ctx context.Context, hash common.Hash) (out bool, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		out, err = state.IsMessageProcessed(hash)
		return
	})
	return
}

// Committed events with sequence number above afterSeq
func (self *Registry) Events(ctx context.Context, afterSeq uint64, limit int) (out []*model.Event, err error) {
	err = self.view(ctx, func(state store.State) (err error) {
		out, err = state.ListEvents(afterSeq, limit)
		return
	})
	return
}
