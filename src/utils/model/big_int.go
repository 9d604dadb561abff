package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/big"
)

// Arbitrary precision integer stored as a decimal string
type BigInt struct {
	big.Int
}

func NewBigInt(v *big.Int) (self BigInt) {
	if v != nil {
		self.Int.Set(v)
	}
	return
}

// Copy of the value, safe to modify
func (self *BigInt) Big() *big.Int {
	return new(big.Int).Set(&self.Int)
}

func (BigInt) GormDataType() string {
	return "text"
}

func (self BigInt) Value() (driver.Value, error) {
	return self.Int.String(), nil
}

func (self *BigInt) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		self.Int.SetInt64(0)
		return nil
	case int64:
		self.Int.SetInt64(v)
		return nil
	case []byte:
		return self.parse(string(v))
	case string:
		return self.parse(v)
	}
	return fmt.Errorf("unsupported big int source type %T", value)
}

func (self *BigInt) parse(s string) error {
	if s == "" {
		self.Int.SetInt64(0)
		return nil
	}
	_, ok := self.Int.SetString(s, 10)
	if !ok {
		return fmt.Errorf("invalid big int %q", s)
	}
	return nil
}

func (self BigInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.Int.String())
}

func (self *BigInt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return self.parse(s)
	}
	return self.parse(string(data))
}
