package model

const TableItem = "items"

type Item struct {
	ThirdPartyId string `gorm:"primaryKey" json:"thirdPartyId"`
	Id           string `gorm:"primaryKey" json:"id"`

	// Position within the third party
	Seq uint64 `json:"seq"`

	Metadata string `json:"metadata"`

	// Empty until reviewed
	ContentHash string `json:"contentHash"`

	IsApproved bool `json:"isApproved"`
}

func (Item) TableName() string {
	return TableItem
}
