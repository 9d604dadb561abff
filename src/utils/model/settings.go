package model

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	TableSettings = "settings"

	// Settings are a single row
	SettingsId = 1
)

type Settings struct {
	Id int `gorm:"primaryKey" json:"-"`

	Owner         common.Address `json:"owner"`
	Aggregator    common.Address `json:"thirdPartyAggregator"`
	FeesCollector common.Address `json:"feesCollector"`
	Committee     common.Address `json:"committee"`
	AcceptedToken common.Address `json:"acceptedToken"`
	Oracle        common.Address `json:"oracle"`

	// Price of one slot, 18 decimals, denominated in the oracle's quote currency
	ItemSlotPrice BigInt `json:"itemSlotPrice"`

	InitialThirdPartyValue bool `json:"initialThirdPartyValue"`
	InitialItemValue       bool `json:"initialItemValue"`
}

func (Settings) TableName() string {
	return TableSettings
}

func (self *Settings) Clone() *Settings {
	out := *self
	out.ItemSlotPrice = NewBigInt(&self.ItemSlotPrice.Int)
	return &out
}
