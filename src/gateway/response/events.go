package response

import (
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

type Events struct {
	Events []*model.Event `json:"events"`
}

type Message struct {
	Hash      common.Hash `json:"hash"`
	Processed bool        `json:"processed"`
}
