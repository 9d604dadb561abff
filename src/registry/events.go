package registry

import (
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

const (
	EventInitialized                = "Initialized"
	EventThirdPartyAdded            = "ThirdPartyAdded"
	EventThirdPartyUpdated          = "ThirdPartyUpdated"
	EventThirdPartyItemSlotsBought  = "ThirdPartyItemSlotsBought"
	EventThirdPartyReviewed         = "ThirdPartyReviewed"
	EventThirdPartyReviewedWithRoot = "ThirdPartyReviewedWithRoot"
	EventThirdPartyRuleAdded        = "ThirdPartyRuleAdded"
	EventItemAdded                  = "ItemAdded"
	EventItemUpdated                = "ItemUpdated"
	EventItemReviewed               = "ItemReviewed"
	EventItemSlotsConsumed          = "ItemSlotsConsumed"
	EventOwnershipTransferred       = "OwnershipTransferred"
	EventThirdPartyAggregatorSet    = "ThirdPartyAggregatorSet"
	EventFeesCollectorSet           = "FeesCollectorSet"
	EventAcceptedTokenSet           = "AcceptedTokenSet"
	EventCommitteeSet               = "CommitteeSet"
	EventOracleSet                  = "OracleSet"
	EventItemSlotPriceSet           = "ItemSlotPriceSet"
	EventInitialThirdPartyValueSet  = "InitialThirdPartyValueSet"
	EventInitialItemValueSet        = "InitialItemValueSet"
)

type ThirdPartyAddedEvent struct {
	ThirdPartyId  string           `json:"thirdPartyId"`
	Metadata      string           `json:"metadata"`
	Resolver      string           `json:"resolver"`
	IsApproved    bool             `json:"isApproved"`
	Managers      []common.Address `json:"managers"`
	ManagerValues []bool           `json:"managerValues"`
	ItemSlots     uint64           `json:"itemSlots"`
	Sender        common.Address   `json:"sender"`
}

type ThirdPartyUpdatedEvent struct {
	ThirdPartyId  string           `json:"thirdPartyId"`
	Metadata      string           `json:"metadata"`
	Resolver      string           `json:"resolver"`
	Managers      []common.Address `json:"managers"`
	ManagerValues []bool           `json:"managerValues"`
	ItemSlots     uint64           `json:"itemSlots"`
	Sender        common.Address   `json:"sender"`
}

type ThirdPartyItemSlotsBoughtEvent struct {
	ThirdPartyId string         `json:"thirdPartyId"`
	Price        model.BigInt   `json:"price"`
	Value        uint64         `json:"value"`
	Sender       common.Address `json:"sender"`
}

type ThirdPartyReviewedEvent struct {
	ThirdPartyId string         `json:"thirdPartyId"`
	Value        bool           `json:"value"`
	Sender       common.Address `json:"sender"`
}

type ThirdPartyReviewedWithRootEvent struct {
	ThirdPartyId string         `json:"thirdPartyId"`
	Root         common.Hash    `json:"root"`
	IsApproved   bool           `json:"isApproved"`
	Sender       common.Address `json:"sender"`
}

type ThirdPartyRuleAddedEvent struct {
	ThirdPartyId string         `json:"thirdPartyId"`
	Rule         string         `json:"rule"`
	Value        bool           `json:"value"`
	Sender       common.Address `json:"sender"`
}

type ItemAddedEvent struct {
	ThirdPartyId string         `json:"thirdPartyId"`
	ItemId       string         `json:"itemId"`
	Metadata     string         `json:"metadata"`
	Value        bool           `json:"value"`
	Sender       common.Address `json:"sender"`
}

type ItemUpdatedEvent struct {
	ThirdPartyId string         `json:"thirdPartyId"`
	ItemId       string         `json:"itemId"`
	Metadata     string         `json:"metadata"`
	Sender       common.Address `json:"sender"`
}

type ItemReviewedEvent struct {
	ThirdPartyId string         `json:"thirdPartyId"`
	ItemId       string         `json:"itemId"`
	Metadata     string         `json:"metadata"`
	ContentHash  string         `json:"contentHash"`
	Value        bool           `json:"value"`
	Sender       common.Address `json:"sender"`
}

type ItemSlotsConsumedEvent struct {
	ThirdPartyId string         `json:"thirdPartyId"`
	Qty          uint64         `json:"qty"`
	Signer       common.Address `json:"signer"`
	Sender       common.Address `json:"sender"`
	MessageHash  common.Hash    `json:"messageHash"`
}

type AddressSetEvent struct {
	Old    common.Address `json:"old"`
	New    common.Address `json:"new"`
	Sender common.Address `json:"sender"`
}

type PriceSetEvent struct {
	Old    model.BigInt   `json:"old"`
	New    model.BigInt   `json:"new"`
	Sender common.Address `json:"sender"`
}

type ValueSetEvent struct {
	Old    bool           `json:"old"`
	New    bool           `json:"new"`
	Sender common.Address `json:"sender"`
}
