package store

import (
	"context"
	"errors"

	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgtype"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrReadOnly = errors.New("state is read only")
)

// Operations available to a single registry operation
type State interface {
	GetSettings() (*model.Settings, error)
	PutSettings(settings *model.Settings) error

	GetThirdParty(id string) (*model.ThirdParty, error)
	PutThirdParty(thirdParty *model.ThirdParty) error
	CountThirdParties() (uint64, error)
	ListThirdParties(offset, limit int) ([]*model.ThirdParty, error)

	GetItem(thirdPartyId, itemId string) (*model.Item, error)
	PutItem(item *model.Item) error
	CountItems(thirdPartyId string) (uint64, error)
	ListItems(thirdPartyId string, offset, limit int) ([]*model.Item, error)

	IsManager(thirdPartyId string, address common.Address) (bool, error)
	SetManager(thirdPartyId string, address common.Address, value bool) error

	GetRule(thirdPartyId, name string) (bool, error)
	SetRule(thirdPartyId, name string, value bool) error
	ListRules(thirdPartyId string) (map[string]bool, error)

	IsMessageProcessed(hash common.Hash) (bool, error)
	MarkMessageProcessed(message *model.ProcessedMessage) error

	AppendEvent(event *model.Event) error
	ListEvents(afterSeq uint64, limit int) ([]*model.Event, error)
}

// Single shared persistent store
type Store interface {
	// Runs f atomically. Nothing written by f is visible if it returns an error.
	Transaction(ctx context.Context, f func(State) error) error

	// Runs f against the committed state. Writes fail with ErrReadOnly.
	View(ctx context.Context, f func(State) error) error
}

// Events appended without a payload are stored with a null one
func preparePayload(event *model.Event) {
	if event.Payload.Status == pgtype.Undefined {
		event.Payload = pgtype.JSONB{Status: pgtype.Null}
	}
}
