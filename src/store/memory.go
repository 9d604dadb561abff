package store

import (
	"context"
	"sync"

	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

type itemKey struct {
	thirdPartyId string
	itemId       string
}

type managerKey struct {
	thirdPartyId string
	address      common.Address
}

type ruleKey struct {
	thirdPartyId string
	name         string
}

type memoryData struct {
	settings      *model.Settings
	thirdParties  map[string]*model.ThirdParty
	thirdPartyIds []string
	items         map[itemKey]*model.Item
	itemIds       map[string][]string
	managers      map[managerKey]bool
	rules         map[ruleKey]bool
	processed     map[common.Hash]*model.ProcessedMessage
	events        []*model.Event
}

// In-memory store. Transactions are buffered in an overlay and applied on success.
type Memory struct {
	mtx  sync.RWMutex
	data memoryData
}

func NewMemory() (self *Memory) {
	self = new(Memory)
	self.data = memoryData{
		thirdParties: make(map[string]*model.ThirdParty),
		items:        make(map[itemKey]*model.Item),
		itemIds:      make(map[string][]string),
		managers:     make(map[managerKey]bool),
		rules:        make(map[ruleKey]bool),
		processed:    make(map[common.Hash]*model.ProcessedMessage),
	}
	return
}

func (self *Memory) Transaction(ctx context.Context, f func(State) error) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}

	self.mtx.Lock()
	defer self.mtx.Unlock()

	tx := newMemoryTx(&self.data, false)
	err = f(tx)
	if err != nil {
		return
	}

	tx.commit()
	return
}

func (self *Memory) View(ctx context.Context, f func(State) error) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}

	self.mtx.RLock()
	defer self.mtx.RUnlock()

	return f(newMemoryTx(&self.data, true))
}

// Buffered writes on top of the committed data
type memoryTx struct {
	base     *memoryData
	readOnly bool

	settings        *model.Settings
	thirdParties    map[string]*model.ThirdParty
	newThirdParties []string
	items           map[itemKey]*model.Item
	newItems        map[string][]string
	managers        map[managerKey]bool
	rules           map[ruleKey]bool
	processed       map[common.Hash]*model.ProcessedMessage
	events          []*model.Event
}

func newMemoryTx(base *memoryData, readOnly bool) *memoryTx {
	return &memoryTx{
		base:         base,
		readOnly:     readOnly,
		thirdParties: make(map[string]*model.ThirdParty),
		items:        make(map[itemKey]*model.Item),
		newItems:     make(map[string][]string),
		managers:     make(map[managerKey]bool),
		rules:        make(map[ruleKey]bool),
		processed:    make(map[common.Hash]*model.ProcessedMessage),
	}
}

func (self *memoryTx) commit() {
	if self.settings != nil {
		self.base.settings = self.settings
	}
	self.base.thirdPartyIds = append(self.base.thirdPartyIds, self.newThirdParties...)
	for id, v := range self.thirdParties {
		self.base.thirdParties[id] = v
	}
	for thirdPartyId, ids := range self.newItems {
		self.base.itemIds[thirdPartyId] = append(self.base.itemIds[thirdPartyId], ids...)
	}
	for k, v := range self.items {
		self.base.items[k] = v
	}
	for k, v := range self.managers {
		self.base.managers[k] = v
	}
	for k, v := range self.rules {
		self.base.rules[k] = v
	}
	for k, v := range self.processed {
		self.base.processed[k] = v
	}
	self.base.events = append(self.base.events, self.events...)
}

func (self *memoryTx) canWrite() error {
	if self.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (self *memoryTx) GetSettings() (*model.Settings, error) {
	settings := self.settings
	if settings == nil {
		settings = self.base.settings
	}
	if settings == nil {
		return nil, ErrNotFound
	}
	return settings.Clone(), nil
}

func (self *memoryTx) PutSettings(settings *model.Settings) error {
	if err := self.canWrite(); err != nil {
		return err
	}
	self.settings = settings.Clone()
	self.settings.Id = model.SettingsId
	return nil
}

func (self *memoryTx) thirdParty(id string) (*model.ThirdParty, bool) {
	if v, ok := self.thirdParties[id]; ok {
		return v, true
	}
	v, ok := self.base.thirdParties[id]
	return v, ok
}

func (self *memoryTx) GetThirdParty(id string) (*model.ThirdParty, error) {
	v, ok := self.thirdParty(id)
	if !ok {
		return nil, ErrNotFound
	}
	out := *v
	return &out, nil
}

func (self *memoryTx) PutThirdParty(thirdParty *model.ThirdParty) error {
	if err := self.canWrite(); err != nil {
		return err
	}
	if _, ok := self.thirdParty(thirdParty.Id); !ok {
		self.newThirdParties = append(self.newThirdParties, thirdParty.Id)
	}
	v := *thirdParty
	self.thirdParties[thirdParty.Id] = &v
	return nil
}

func (self *memoryTx) thirdPartyIds() []string {
	ids := make([]string, 0, len(self.base.thirdPartyIds)+len(self.newThirdParties))
	ids = append(ids, self.base.thirdPartyIds...)
	return append(ids, self.newThirdParties...)
}

func (self *memoryTx) CountThirdParties() (uint64, error) {
	return uint64(len(self.base.thirdPartyIds) + len(self.newThirdParties)), nil
}

func (self *memoryTx) ListThirdParties(offset, limit int) (out []*model.ThirdParty, err error) {
	for _, id := range page(self.thirdPartyIds(), offset, limit) {
		var v *model.ThirdParty
		v, err = self.GetThirdParty(id)
		if err != nil {
			return
		}
		out = append(out, v)
	}
	return
}

func (self *memoryTx) item(key itemKey) (*model.Item, bool) {
	if v, ok := self.items[key]; ok {
		return v, true
	}
	v, ok := self.base.items[key]
	return v, ok
}

func (self *memoryTx) GetItem(thirdPartyId, itemId string) (*model.Item, error) {
	v, ok := self.item(itemKey{thirdPartyId, itemId})
	if !ok {
		return nil, ErrNotFound
	}
	out := *v
	return &out, nil
}

func (self *memoryTx) PutItem(item *model.Item) error {
	if err := self.canWrite(); err != nil {
		return err
	}
	key := itemKey{item.ThirdPartyId, item.Id}
	if _, ok := self.item(key); !ok {
		self.newItems[item.ThirdPartyId] = append(self.newItems[item.ThirdPartyId], item.Id)
	}
	v := *item
	self.items[key] = &v
	return nil
}

func (self *memoryTx) itemIds(thirdPartyId string) []string {
	base := self.base.itemIds[thirdPartyId]
	added := self.newItems[thirdPartyId]
	ids := make([]string, 0, len(base)+len(added))
	ids = append(ids, base...)
	return append(ids, added...)
}

func (self *memoryTx) CountItems(thirdPartyId string) (uint64, error) {
	return uint64(len(self.base.itemIds[thirdPartyId]) + len(self.newItems[thirdPartyId])), nil
}

func (self *memoryTx) ListItems(thirdPartyId string, offset, limit int) (out []*model.Item, err error) {
	for _, id := range page(self.itemIds(thirdPartyId), offset, limit) {
		var v *model.Item
		v, err = self.GetItem(thirdPartyId, id)
		if err != nil {
			return
		}
		out = append(out, v)
	}
	return
}

func (self *memoryTx) IsManager(thirdPartyId string, address common.Address) (bool, error) {
	key := managerKey{thirdPartyId, address}
	if v, ok := self.managers[key]; ok {
		return v, nil
	}
	return self.base.managers[key], nil
}

func (self *memoryTx) SetManager(thirdPartyId string, address common.Address, value bool) error {
	if err := self.canWrite(); err != nil {
		return err
	}
	self.managers[managerKey{thirdPartyId, address}] = value
	return nil
}

func (self *memoryTx) GetRule(thirdPartyId, name string) (bool, error) {
	key := ruleKey{thirdPartyId, name}
	if v, ok := self.rules[key]; ok {
		return v, nil
	}
	return self.base.rules[key], nil
}

func (self *memoryTx) SetRule(thirdPartyId, name string, value bool) error {
	if err := self.canWrite(); err != nil {
		return err
	}
	self.rules[ruleKey{thirdPartyId, name}] = value
	return nil
}

func (self *memoryTx) ListRules(thirdPartyId string) (map[string]bool, error) {
	out := make(map[string]bool)
	for k, v := range self.base.rules {
		if k.thirdPartyId == thirdPartyId {
			out[k.name] = v
		}
	}
	for k, v := range self.rules {
		if k.thirdPartyId == thirdPartyId {
			out[k.name] = v
		}
	}
	return out, nil
}

func (self *memoryTx) IsMessageProcessed(hash common.Hash) (bool, error) {
	if _, ok := self.processed[hash]; ok {
		return true, nil
	}
	_, ok := self.base.processed[hash]
	return ok, nil
}

func (self *memoryTx) MarkMessageProcessed(message *model.ProcessedMessage) error {
	if err := self.canWrite(); err != nil {
		return err
	}
	v := *message
	self.processed[message.Hash] = &v
	return nil
}

func (self *memoryTx) AppendEvent(event *model.Event) error {
	if err := self.canWrite(); err != nil {
		return err
	}
	event.Seq = uint64(len(self.base.events)+len(self.events)) + 1
	preparePayload(event)
	v := *event
	self.events = append(self.events, &v)
	return nil
}

func (self *memoryTx) ListEvents(afterSeq uint64, limit int) (out []*model.Event, err error) {
	all := append(append([]*model.Event{}, self.base.events...), self.events...)
	for _, event := range all {
		if event.Seq <= afterSeq {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		v := *event
		out = append(out, &v)
	}
	return
}

func page(ids []string, offset, limit int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}
