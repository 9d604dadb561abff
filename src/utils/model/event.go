package model

import (
	"encoding/json"

	"github.com/jackc/pgtype"
)

const TableEvent = "events"

// Record of a committed state change
type Event struct {
	Seq          uint64       `gorm:"primaryKey;autoIncrement"`
	Name         string       `gorm:"index"`
	ThirdPartyId string       `gorm:"index"`
	Payload      pgtype.JSONB `gorm:"type:jsonb"`
	Timestamp    int64
}

func (Event) TableName() string {
	return TableEvent
}

func (self *Event) MarshalJSON() ([]byte, error) {
	payload := json.RawMessage("null")
	if self.Payload.Status == pgtype.Present {
		payload = json.RawMessage(self.Payload.Bytes)
	}
	return json.Marshal(&struct {
		Seq          uint64          `json:"seq"`
		Name         string          `json:"name"`
		ThirdPartyId string          `json:"thirdPartyId,omitempty"`
		Payload      json.RawMessage `json:"payload"`
		Timestamp    int64           `json:"timestamp"`
	}{
		Seq:          self.Seq,
		Name:         self.Name,
		ThirdPartyId: self.ThirdPartyId,
		Payload:      payload,
		Timestamp:    self.Timestamp,
	})
}

// Used by the Redis publisher
func (self *Event) MarshalBinary() ([]byte, error) {
	return self.MarshalJSON()
}
