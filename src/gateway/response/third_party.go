package response

import (
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

type ThirdParty struct {
	Id             string          `json:"id"`
	Metadata       string          `json:"metadata"`
	Resolver       string          `json:"resolver"`
	IsApproved     bool            `json:"isApproved"`
	MaxItems       uint64          `json:"maxItems"`
	ConsumedSlots  uint64          `json:"consumedSlots"`
	ItemsCount     uint64          `json:"itemsCount"`
	AvailableSlots uint64          `json:"availableSlots"`
	Root           common.Hash     `json:"root"`
	Rules          map[string]bool `json:"rules,omitempty"`
}

type ThirdParties struct {
	ThirdParties []*ThirdParty `json:"thirdParties"`
	Total        uint64        `json:"total"`
}

type Items struct {
	Items []*model.Item `json:"items"`
	Total uint64        `json:"total"`
}

type Quote struct {
	ThirdPartyId string       `json:"thirdPartyId"`
	Qty          uint64       `json:"qty"`
	Price        model.BigInt `json:"price"`
}

type Manager struct {
	ThirdPartyId string         `json:"thirdPartyId"`
	Address      common.Address `json:"address"`
	IsManager    bool           `json:"isManager"`
}

func ThirdPartyToResponse(thirdParty *model.ThirdParty, rules map[string]bool) *ThirdParty {
	return &ThirdParty{
		Id:             thirdParty.Id,
		Metadata:       thirdParty.Metadata,
		Resolver:       thirdParty.Resolver,
		IsApproved:     thirdParty.IsApproved,
		MaxItems:       thirdParty.MaxItems,
		ConsumedSlots:  thirdParty.ConsumedSlots,
		ItemsCount:     thirdParty.ItemsCount,
		AvailableSlots: thirdParty.AvailableSlots(),
		Root:           thirdParty.Root,
		Rules:          rules,
	}
}

func ThirdPartiesToResponse(thirdParties []*model.ThirdParty, total uint64) *ThirdParties {
	out := make([]*ThirdParty, len(thirdParties))
	for i, thirdParty := range thirdParties {
		out[i] = ThirdPartyToResponse(thirdParty, nil)
	}
	return &ThirdParties{
		ThirdParties: out,
		Total:        total,
	}
}
