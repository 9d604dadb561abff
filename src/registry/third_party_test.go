package registry

import (
	"math"
	"time"

	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (s *RegistryTestSuite) TestAddThirdParties() {
	other := common.HexToAddress("0x0000000000000000000000000000000000000a01")
	err := s.registry.AddThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{
		{
			Id:            "tp:1",
			Metadata:      "m1",
			Resolver:      "r1",
			Managers:      []common.Address{s.manager, other},
			ManagerValues: []bool{true, false},
			Slots:         3,
		},
		{
			Id:            "tp:2",
			Metadata:      "m2",
			Resolver:      "r2",
			Managers:      []common.Address{other},
			ManagerValues: []bool{true},
		},
	})
	require.Nil(s.T(), err)

	count, err := s.registry.ThirdPartiesCount(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(2), count)

	tp := s.thirdParty("tp:1")
	require.Equal(s.T(), uint64(0), tp.Seq)
	require.Equal(s.T(), "m1", tp.Metadata)
	require.Equal(s.T(), "r1", tp.Resolver)
	require.Equal(s.T(), uint64(3), tp.MaxItems)
	require.False(s.T(), tp.IsApproved)
	require.Equal(s.T(), uint64(1), s.thirdParty("tp:2").Seq)

	ok, err := s.registry.IsThirdPartyManager(s.ctx, "tp:1", s.manager)
	require.Nil(s.T(), err)
	require.True(s.T(), ok)

	ok, err = s.registry.IsThirdPartyManager(s.ctx, "tp:1", other)
	require.Nil(s.T(), err)
	require.False(s.T(), ok)

	list, err := s.registry.ListThirdParties(s.ctx, 0, 10)
	require.Nil(s.T(), err)
	require.Len(s.T(), list, 2)
	require.Equal(s.T(), "tp:2", list[1].Id)

	var payload ThirdPartyAddedEvent
	event := s.lastEvent()
	require.Equal(s.T(), EventThirdPartyAdded, event.Name)
	s.payload(event, &payload)
	require.Equal(s.T(), "tp:2", payload.ThirdPartyId)
	require.Equal(s.T(), aggregatorAddress, payload.Sender)
}

func (s *RegistryTestSuite) TestAddSingleThirdParty() {
	err := s.registry.AddThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{{
		Id:            "tp:1",
		Metadata:      "m1",
		Resolver:      "r1",
		Managers:      []common.Address{s.manager},
		ManagerValues: []bool{true},
	}})
	require.Nil(s.T(), err)

	count, err := s.registry.ThirdPartiesCount(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(1), count)

	ok, err := s.registry.IsThirdPartyManager(s.ctx, "tp:1", s.manager)
	require.Nil(s.T(), err)
	require.True(s.T(), ok)

	require.Equal(s.T(), EventThirdPartyAdded, s.lastEvent().Name)
	require.Equal(s.T(), uint64(1), s.registry.report.State.ThirdPartiesAdded.Load())
}

func (s *RegistryTestSuite) TestAddThirdPartyGormStore() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: model.NewGormLogger()})
	require.Nil(s.T(), err)
	sqlDB, err := db.DB()
	require.Nil(s.T(), err)
	sqlDB.SetMaxOpenConns(1)
	require.Nil(s.T(), model.AutoMigrate(db))

	registry := NewRegistry(store.NewGorm(db), s.backend, s.domain).
		WithClock(func() time.Time { return s.now }).
		WithOracleTimeout(time.Second)
	require.Nil(s.T(), registry.Initialize(s.ctx, s.settings()))

	err = registry.AddThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{{
		Id:            "tp:1",
		Metadata:      "m1",
		Resolver:      "r1",
		Managers:      []common.Address{s.manager},
		ManagerValues: []bool{true},
	}})
	require.Nil(s.T(), err)

	count, err := registry.ThirdPartiesCount(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(1), count)

	events, err := registry.Events(s.ctx, 0, 0)
	require.Nil(s.T(), err)
	require.NotEmpty(s.T(), events)
	require.Equal(s.T(), EventThirdPartyAdded, events[len(events)-1].Name)
}

func (s *RegistryTestSuite) TestAddThirdPartiesValidation() {
	valid := ThirdPartyParam{
		Id:            "tp:1",
		Metadata:      "m",
		Resolver:      "r",
		Managers:      []common.Address{s.manager},
		ManagerValues: []bool{true},
	}

	require.ErrorIs(s.T(), s.registry.AddThirdParties(s.ctx, s.manager, []ThirdPartyParam{valid}), ErrOnlyAggregator)

	for _, tc := range []struct {
		modify func(p *ThirdPartyParam)
		err    error
	}{
		{func(p *ThirdPartyParam) { p.Id = "" }, ErrEmptyId},
		{func(p *ThirdPartyParam) { p.Metadata = "" }, ErrEmptyMetadata},
		{func(p *ThirdPartyParam) { p.Resolver = "" }, ErrEmptyResolver},
		{func(p *ThirdPartyParam) { p.Managers = nil; p.ManagerValues = nil }, ErrEmptyManagers},
		{func(p *ThirdPartyParam) { p.ManagerValues = []bool{true, false} }, ErrLengthMismatch},
		{func(p *ThirdPartyParam) { p.Managers = []common.Address{{}} }, ErrInvalidAddress},
	} {
		param := valid
		tc.modify(&param)
		require.ErrorIs(s.T(), s.registry.AddThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{param}), tc.err)
	}

	count, err := s.registry.ThirdPartiesCount(s.ctx)
	require.Nil(s.T(), err)
	require.Zero(s.T(), count)
}

func (s *RegistryTestSuite) TestAddThirdPartyTwice() {
	s.addThirdParty("tp:1", 5)
	events := len(s.events())

	err := s.registry.AddThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{{
		Id:            "tp:1",
		Metadata:      "changed",
		Resolver:      "changed",
		Managers:      []common.Address{strangerAddress},
		ManagerValues: []bool{true},
	}})
	require.ErrorIs(s.T(), err, ErrThirdPartyAlreadyExists)

	// Existing record untouched
	tp := s.thirdParty("tp:1")
	require.Equal(s.T(), "metadata of tp:1", tp.Metadata)
	require.Equal(s.T(), uint64(5), tp.MaxItems)

	ok, err := s.registry.IsThirdPartyManager(s.ctx, "tp:1", strangerAddress)
	require.Nil(s.T(), err)
	require.False(s.T(), ok)
	require.Len(s.T(), s.events(), events)
}

func (s *RegistryTestSuite) TestAddThirdPartiesIsAtomic() {
	param := ThirdPartyParam{
		Id:            "tp:1",
		Metadata:      "m",
		Resolver:      "r",
		Managers:      []common.Address{s.manager},
		ManagerValues: []bool{true},
	}
	broken := param
	broken.Id = "tp:2"
	broken.Resolver = ""

	err := s.registry.AddThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{param, broken})
	require.ErrorIs(s.T(), err, ErrEmptyResolver)

	_, err = s.registry.GetThirdParty(s.ctx, "tp:1")
	require.ErrorIs(s.T(), err, ErrInvalidThirdParty)

	// The same id twice in one call
	err = s.registry.AddThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{param, param})
	require.ErrorIs(s.T(), err, ErrThirdPartyAlreadyExists)

	count, err := s.registry.ThirdPartiesCount(s.ctx)
	require.Nil(s.T(), err)
	require.Zero(s.T(), count)
}

func (s *RegistryTestSuite) TestUpdateThirdParties() {
	s.addThirdParty("tp:1", 1)
	other := common.HexToAddress("0x0000000000000000000000000000000000000a01")

	err := s.registry.UpdateThirdParties(s.ctx, s.manager, []ThirdPartyParam{{
		Id:            "tp:1",
		Metadata:      "new metadata",
		Managers:      []common.Address{other},
		ManagerValues: []bool{true},
	}})
	require.Nil(s.T(), err)

	tp := s.thirdParty("tp:1")
	require.Equal(s.T(), "new metadata", tp.Metadata)
	require.Equal(s.T(), "https://tp:1", tp.Resolver)
	require.Equal(s.T(), uint64(1), tp.MaxItems)

	ok, err := s.registry.IsThirdPartyManager(s.ctx, "tp:1", other)
	require.Nil(s.T(), err)
	require.True(s.T(), ok)

	// Managers can remove each other
	err = s.registry.UpdateThirdParties(s.ctx, s.manager, []ThirdPartyParam{{
		Id:            "tp:1",
		Managers:      []common.Address{other},
		ManagerValues: []bool{false},
	}})
	require.Nil(s.T(), err)

	ok, err = s.registry.IsThirdPartyManager(s.ctx, "tp:1", other)
	require.Nil(s.T(), err)
	require.False(s.T(), ok)

	var payload ThirdPartyUpdatedEvent
	s.payload(s.lastEvent(), &payload)
	require.Equal(s.T(), "new metadata", payload.Metadata)
	require.Equal(s.T(), []bool{false}, payload.ManagerValues)
}

func (s *RegistryTestSuite) TestUpdateThirdPartiesAuthorization() {
	s.addThirdParty("tp:1", 1)

	err := s.registry.UpdateThirdParties(s.ctx, strangerAddress, []ThirdPartyParam{{Id: "tp:1", Metadata: "x"}})
	require.ErrorIs(s.T(), err, ErrInvalidSender)

	err = s.registry.UpdateThirdParties(s.ctx, s.manager, []ThirdPartyParam{{Id: "tp:1", Slots: 1}})
	require.ErrorIs(s.T(), err, ErrOnlyAggregatorCanIncrementSlots)

	err = s.registry.UpdateThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{{Id: "tp:x"}})
	require.ErrorIs(s.T(), err, ErrInvalidThirdParty)

	err = s.registry.UpdateThirdParties(s.ctx, s.manager, []ThirdPartyParam{{
		Id:            "tp:1",
		Managers:      []common.Address{s.manager},
		ManagerValues: []bool{},
	}})
	require.ErrorIs(s.T(), err, ErrLengthMismatch)

	require.Equal(s.T(), "metadata of tp:1", s.thirdParty("tp:1").Metadata)
}

func (s *RegistryTestSuite) TestManagerCantSelfRemove() {
	s.addThirdParty("tp:1", 1)

	err := s.registry.UpdateThirdParties(s.ctx, s.manager, []ThirdPartyParam{{
		Id:            "tp:1",
		Metadata:      "changed",
		Managers:      []common.Address{strangerAddress, s.manager},
		ManagerValues: []bool{true, false},
	}})
	require.ErrorIs(s.T(), err, ErrManagerCantSelfRemove)

	ok, err := s.registry.IsThirdPartyManager(s.ctx, "tp:1", s.manager)
	require.Nil(s.T(), err)
	require.True(s.T(), ok)

	ok, err = s.registry.IsThirdPartyManager(s.ctx, "tp:1", strangerAddress)
	require.Nil(s.T(), err)
	require.False(s.T(), ok)

	// The aggregator may remove any manager
	err = s.registry.UpdateThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{{
		Id:            "tp:1",
		Managers:      []common.Address{s.manager},
		ManagerValues: []bool{false},
	}})
	require.Nil(s.T(), err)

	ok, err = s.registry.IsThirdPartyManager(s.ctx, "tp:1", s.manager)
	require.Nil(s.T(), err)
	require.False(s.T(), ok)
}

func (s *RegistryTestSuite) TestAggregatorAddsSlots() {
	s.addThirdParty("tp:1", 1)

	err := s.registry.UpdateThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{{Id: "tp:1", Slots: 4}})
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(5), s.thirdParty("tp:1").MaxItems)

	err = s.registry.UpdateThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{{Id: "tp:1", Slots: math.MaxUint64}})
	require.ErrorIs(s.T(), err, ErrOverflow)
	require.Equal(s.T(), uint64(5), s.thirdParty("tp:1").MaxItems)
}
