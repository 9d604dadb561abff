package model

import (
	"github.com/ethereum/go-ethereum/common"
)

const TableProcessedMessage = "processed_messages"

// Digest of a consume authorization that was already used
type ProcessedMessage struct {
	Hash         common.Hash `gorm:"primaryKey"`
	ThirdPartyId string
	Signer       common.Address
	Qty          uint64
}

func (ProcessedMessage) TableName() string {
	return TableProcessedMessage
}
