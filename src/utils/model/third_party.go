package model

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	TableThirdParty        = "third_parties"
	TableThirdPartyManager = "third_party_managers"
	TableThirdPartyRule    = "third_party_rules"
)

type ThirdParty struct {
	Id string `gorm:"primaryKey" json:"id"`

	// Position in the order of registration
	Seq uint64 `json:"seq"`

	Metadata   string `json:"metadata"`
	Resolver   string `json:"resolver"`
	IsApproved bool   `json:"isApproved"`

	// Purchased capacity
	MaxItems uint64 `json:"maxItems"`

	// Capacity consumed through signed authorizations
	ConsumedSlots uint64 `json:"consumedSlots"`

	// Registered items, including the ones counted by consumption
	ItemsCount uint64 `json:"itemsCount"`

	// Digest of the off-registry item set, zero until reviewed with a root
	Root common.Hash `json:"root"`
}

func (ThirdParty) TableName() string {
	return TableThirdParty
}

// Slots that can still be used by either items or consumption
func (self *ThirdParty) AvailableSlots() uint64 {
	used := self.ItemsCount
	if self.ConsumedSlots > used {
		used = self.ConsumedSlots
	}
	if used >= self.MaxItems {
		return 0
	}
	return self.MaxItems - used
}

type ThirdPartyManager struct {
	ThirdPartyId string         `gorm:"primaryKey"`
	Address      common.Address `gorm:"primaryKey"`
	Value        bool
}

func (ThirdPartyManager) TableName() string {
	return TableThirdPartyManager
}

type ThirdPartyRule struct {
	ThirdPartyId string `gorm:"primaryKey"`
	Name         string `gorm:"primaryKey"`
	Value        bool
}

func (ThirdPartyRule) TableName() string {
	return TableThirdPartyRule
}
