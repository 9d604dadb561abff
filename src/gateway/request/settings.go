package request

import "encoding/json"

// Value type depends on the setting: address, decimal string or bool
type SetSetting struct {
	Value json.RawMessage `json:"value"`
}
