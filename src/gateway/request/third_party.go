package request

import (
	"github.com/decentraland/thirdparty-registry/src/registry"
	"github.com/decentraland/thirdparty-registry/src/utils/model"
)

type ThirdParties struct {
	ThirdParties []registry.ThirdPartyParam `json:"thirdParties"`
}

type BuyItemSlots struct {
	Qty      uint64       `json:"qty"`
	MaxPrice model.BigInt `json:"maxPrice"`
}

type Items struct {
	Items []registry.ItemParam `json:"items"`
}

type Quote struct {
	Qty uint64 `form:"qty"`
}
