package request

import (
	"github.com/decentraland/thirdparty-registry/src/registry"

	"github.com/ethereum/go-ethereum/common"
)

type ReviewThirdParties struct {
	ThirdParties []registry.ThirdPartyReviewParam `json:"thirdParties"`
}

type ReviewThirdPartyWithRoot struct {
	Root           common.Hash                  `json:"root"`
	Authorizations []registry.ConsumeSlotsParam `json:"authorizations"`
}

type ConsumeSlots struct {
	Authorizations []registry.ConsumeSlotsParam `json:"authorizations"`
}

type SetRules struct {
	Names  []string `json:"names"`
	Values []bool   `json:"values"`
}
