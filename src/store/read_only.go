package store

import (
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

type readOnly struct {
	State
}

// Wraps the state so every write fails with ErrReadOnly
func ReadOnly(state State) State {
	if v, ok := state.(*readOnly); ok {
		return v
	}
	return &readOnly{State: state}
}

func (self *readOnly) PutSettings(*model.Settings) error { return ErrReadOnly }
func (self *readOnly) PutThirdParty(*model.ThirdParty) error { return ErrReadOnly }
func (self *readOnly) PutItem(*model.Item) error { return ErrReadOnly }
func (self *readOnly) SetManager(string, common.Address, bool) error { return ErrReadOnly }
func (self *readOnly) SetRule(string, string, bool) error { return ErrReadOnly }
func (self *readOnly) MarkMessageProcessed(*model.ProcessedMessage) error { return ErrReadOnly }
func (self *readOnly) AppendEvent(*model.Event) error { return ErrReadOnly }
