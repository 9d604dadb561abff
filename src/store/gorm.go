package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store backed by a SQL database
type Gorm struct {
	db        *gorm.DB
	txOptions *sql.TxOptions
}

func NewGorm(db *gorm.DB) (self *Gorm) {
	self = new(Gorm)
	self.db = db
	return
}

// Isolation level of the write transactions. Default is the driver's default.
func (self *Gorm) WithIsolation(level sql.IsolationLevel) *Gorm {
	self.txOptions = &sql.TxOptions{Isolation: level}
	return self
}

func (self *Gorm) Transaction(ctx context.Context, f func(State) error) error {
	var opts []*sql.TxOptions
	if self.txOptions != nil {
		opts = append(opts, self.txOptions)
	}
	return self.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&gormState{tx: tx})
	}, opts...)
}

func (self *Gorm) View(ctx context.Context, f func(State) error) error {
	return f(&gormState{tx: self.db.WithContext(ctx), readOnly: true})
}

type gormState struct {
	tx       *gorm.DB
	readOnly bool
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (self *gormState) upsert(value interface{}) error {
	if self.readOnly {
		return ErrReadOnly
	}
	return self.tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(value).Error
}

func (self *gormState) GetSettings() (out *model.Settings, err error) {
	out = new(model.Settings)
	err = self.tx.Where("id = ?", model.SettingsId).First(out).Error
	if err != nil {
		return nil, notFound(err)
	}
	return
}

func (self *gormState) PutSettings(settings *model.Settings) error {
	v := settings.Clone()
	v.Id = model.SettingsId
	return self.upsert(v)
}

func (self *gormState) GetThirdParty(id string) (out *model.ThirdParty, err error) {
	out = new(model.ThirdParty)
	err = self.tx.Where("id = ?", id).First(out).Error
	if err != nil {
		return nil, notFound(err)
	}
	return
}

func (self *gormState) PutThirdParty(thirdParty *model.ThirdParty) error {
	return self.upsert(thirdParty)
}

func (self *gormState) CountThirdParties() (uint64, error) {
	var n int64
	err := self.tx.Model(&model.ThirdParty{}).Count(&n).Error
	return uint64(n), err
}

func (self *gormState) ListThirdParties(offset, limit int) (out []*model.ThirdParty, err error) {
	query := self.tx.Order("seq").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err = query.Find(&out).Error
	return
}

func (self *gormState) GetItem(thirdPartyId, itemId string) (out *model.Item, err error) {
	out = new(model.Item)
	err = self.tx.Where("third_party_id = ? AND id = ?", thirdPartyId, itemId).First(out).Error
	if err != nil {
		return nil, notFound(err)
	}
	return
}

func (self *gormState) PutItem(item *model.Item) error {
	return self.upsert(item)
}

func (self *gormState) CountItems(thirdPartyId string) (uint64, error) {
	var n int64
	err := self.tx.Model(&model.Item{}).Where("third_party_id = ?", thirdPartyId).Count(&n).Error
	return uint64(n), err
}

func (self *gormState) ListItems(thirdPartyId string, offset, limit int) (out []*model.Item, err error) {
	query := self.tx.Where("third_party_id = ?", thirdPartyId).Order("seq").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err = query.Find(&out).Error
	return
}

func (self *gormState) IsManager(thirdPartyId string, address common.Address) (bool, error) {
	var managers []*model.ThirdPartyManager
	err := self.tx.Where("third_party_id = ? AND address = ?", thirdPartyId, address).
		Limit(1).
		Find(&managers).
		Error
	if err != nil || len(managers) == 0 {
		return false, err
	}
	return managers[0].Value, nil
}

func (self *gormState) SetManager(thirdPartyId string, address common.Address, value bool) error {
	return self.upsert(&model.ThirdPartyManager{
		ThirdPartyId: thirdPartyId,
		Address:      address,
		Value:        value,
	})
}

func (self *gormState) GetRule(thirdPartyId, name string) (bool, error) {
	var rules []*model.ThirdPartyRule
	err := self.tx.Where("third_party_id = ? AND name = ?", thirdPartyId, name).
		Limit(1).
		Find(&rules).
		Error
	if err != nil || len(rules) == 0 {
		return false, err
	}
	return rules[0].Value, nil
}

func (self *gormState) SetRule(thirdPartyId, name string, value bool) error {
	return self.upsert(&model.ThirdPartyRule{
		ThirdPartyId: thirdPartyId,
		Name:         name,
		Value:        value,
	})
}

func (self *gormState) ListRules(thirdPartyId string) (out map[string]bool, err error) {
	var rules []*model.ThirdPartyRule
	err = self.tx.Where("third_party_id = ?", thirdPartyId).Find(&rules).Error
	if err != nil {
		return
	}
	out = make(map[string]bool, len(rules))
	for _, rule := range rules {
		out[rule.Name] = rule.Value
	}
	return
}

func (self *gormState) IsMessageProcessed(hash common.Hash) (bool, error) {
	var n int64
	err := self.tx.Model(&model.ProcessedMessage{}).Where("hash = ?", hash).Count(&n).Error
	return n > 0, err
}

func (self *gormState) MarkMessageProcessed(message *model.ProcessedMessage) error {
	if self.readOnly {
		return ErrReadOnly
	}
	// Plain insert, a conflict means the message was processed concurrently
	return self.tx.Create(message).Error
}

func (self *gormState) AppendEvent(event *model.Event) error {
	if self.readOnly {
		return ErrReadOnly
	}
	event.Seq = 0
	preparePayload(event)
	return self.tx.Create(event).Error
}

func (self *gormState) ListEvents(afterSeq uint64, limit int) (out []*model.Event, err error) {
	query := self.tx.Where("seq > ?", afterSeq).Order("seq")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err = query.Find(&out).Error
	return
}
