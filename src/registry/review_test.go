package registry

import (
	"github.com/decentraland/thirdparty-registry/src/committee"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func (s *RegistryTestSuite) TestReviewThirdParties() {
	s.addThirdParty("tp:1", 3)
	s.addThirdParty("tp:2", 0)
	require.Nil(s.T(), s.addItems("tp:1", "i:1", "i:2"))

	err := s.registry.ReviewThirdParties(s.ctx, strangerAddress, []ThirdPartyReviewParam{{Id: "tp:1", Value: true}})
	require.ErrorIs(s.T(), err, ErrOnlyCommittee)

	err = s.registry.ReviewThirdParties(s.ctx, memberAddress, []ThirdPartyReviewParam{
		{
			Id:    "tp:1",
			Value: true,
			Items: []ItemReviewParam{
				{Id: "i:1", ContentHash: "hash-1", Value: true},
				{Id: "i:2", Metadata: "fixed", ContentHash: "hash-2", Value: false},
			},
		},
		{Id: "tp:2", Value: false},
	})
	require.Nil(s.T(), err)

	require.True(s.T(), s.thirdParty("tp:1").IsApproved)
	require.False(s.T(), s.thirdParty("tp:2").IsApproved)

	item, err := s.registry.GetItem(s.ctx, "tp:1", "i:1")
	require.Nil(s.T(), err)
	require.True(s.T(), item.IsApproved)
	require.Equal(s.T(), "hash-1", item.ContentHash)
	require.Equal(s.T(), "metadata of i:1", item.Metadata)

	item, err = s.registry.GetItem(s.ctx, "tp:1", "i:2")
	require.Nil(s.T(), err)
	require.False(s.T(), item.IsApproved)
	require.Equal(s.T(), "hash-2", item.ContentHash)
	require.Equal(s.T(), "fixed", item.Metadata)

	var names []string
	for _, event := range s.events() {
		names = append(names, event.Name)
	}
	require.Equal(s.T(), []string{
		EventThirdPartyReviewed,
		EventItemReviewed,
		EventItemReviewed,
		EventThirdPartyReviewed,
	}, names[len(names)-4:])
}

func (s *RegistryTestSuite) TestReviewValidation() {
	s.addThirdParty("tp:1", 3)
	require.Nil(s.T(), s.addItems("tp:1", "i:1"))

	// Approval needs a content hash
	err := s.registry.ReviewThirdParties(s.ctx, memberAddress, []ThirdPartyReviewParam{{
		Id:    "tp:1",
		Value: true,
		Items: []ItemReviewParam{{Id: "i:1", Value: true}},
	}})
	require.ErrorIs(s.T(), err, ErrInvalidContentHash)
	require.False(s.T(), s.thirdParty("tp:1").IsApproved)

	err = s.registry.ReviewThirdParties(s.ctx, memberAddress, []ThirdPartyReviewParam{{
		Id:    "tp:1",
		Items: []ItemReviewParam{{Id: "i:9"}},
	}})
	require.ErrorIs(s.T(), err, ErrInvalidItem)

	err = s.registry.ReviewThirdParties(s.ctx, memberAddress, []ThirdPartyReviewParam{{Id: "tp:x"}})
	require.ErrorIs(s.T(), err, ErrInvalidThirdParty)
}

func (s *RegistryTestSuite) TestReviewThirdPartyWithRoot() {
	s.addThirdParty("tp:1", 10)
	root := common.HexToHash("0xabcdef")
	authorizations := []ConsumeSlotsParam{
		s.sign(s.managerKey, "tp:1", 4, common.HexToHash("0x01")),
		s.sign(s.managerKey, "tp:1", 2, common.HexToHash("0x02")),
	}

	err := s.registry.ReviewThirdPartyWithRoot(s.ctx, strangerAddress, "tp:1", root, authorizations)
	require.ErrorIs(s.T(), err, ErrOnlyCommittee)

	err = s.registry.ReviewThirdPartyWithRoot(s.ctx, memberAddress, "tp:1", common.Hash{}, authorizations)
	require.ErrorIs(s.T(), err, ErrInvalidRoot)

	err = s.registry.ReviewThirdPartyWithRoot(s.ctx, memberAddress, "tp:x", root, authorizations)
	require.ErrorIs(s.T(), err, ErrInvalidThirdParty)

	err = s.registry.ReviewThirdPartyWithRoot(s.ctx, memberAddress, "tp:1", root, authorizations)
	require.Nil(s.T(), err)

	tp := s.thirdParty("tp:1")
	require.True(s.T(), tp.IsApproved)
	require.Equal(s.T(), root, tp.Root)
	require.Equal(s.T(), uint64(6), tp.ConsumedSlots)
	require.Equal(s.T(), uint64(6), tp.ItemsCount)

	var payload ThirdPartyReviewedWithRootEvent
	event := s.lastEvent()
	require.Equal(s.T(), EventThirdPartyReviewedWithRoot, event.Name)
	s.payload(event, &payload)
	require.Equal(s.T(), root, payload.Root)
	require.Equal(s.T(), memberAddress, payload.Sender)

	// Same authorizations can't be used again
	err = s.registry.ReviewThirdPartyWithRoot(s.ctx, memberAddress, "tp:1", common.HexToHash("0x01"), authorizations[1:])
	require.ErrorIs(s.T(), err, ErrMessageAlreadyProcessed)
	require.Equal(s.T(), root, s.thirdParty("tp:1").Root)

	// A new root with no authorizations
	err = s.registry.ReviewThirdPartyWithRoot(s.ctx, memberAddress, "tp:1", common.HexToHash("0x01"), nil)
	require.Nil(s.T(), err)
	require.Equal(s.T(), common.HexToHash("0x01"), s.thirdParty("tp:1").Root)
}

func (s *RegistryTestSuite) TestReviewWithRootIsAtomic() {
	s.addThirdParty("tp:1", 3)
	authorizations := []ConsumeSlotsParam{
		s.sign(s.managerKey, "tp:1", 2, common.HexToHash("0x01")),
		s.sign(s.managerKey, "tp:1", 2, common.HexToHash("0x02")),
	}

	err := s.registry.ReviewThirdPartyWithRoot(s.ctx, memberAddress, "tp:1", common.HexToHash("0xff"), authorizations)
	require.ErrorIs(s.T(), err, ErrNoItemSlotsAvailable)

	tp := s.thirdParty("tp:1")
	require.False(s.T(), tp.IsApproved)
	require.Zero(s.T(), tp.ConsumedSlots)
	require.Equal(s.T(), common.Hash{}, tp.Root)

	// First authorization wasn't marked as used
	require.Nil(s.T(), s.registry.ConsumeSlots(s.ctx, s.manager, "tp:1", authorizations[:1]))
}

func (s *RegistryTestSuite) TestSetRules() {
	s.addThirdParty("tp:1", 0)

	err := s.registry.SetRules(s.ctx, s.manager, "tp:1", []string{"a"}, []bool{true})
	require.ErrorIs(s.T(), err, ErrOnlyCommittee)

	err = s.registry.SetRules(s.ctx, memberAddress, "tp:1", []string{"a"}, []bool{})
	require.ErrorIs(s.T(), err, ErrLengthMismatch)

	err = s.registry.SetRules(s.ctx, memberAddress, "tp:1", []string{"a", ""}, []bool{true, true})
	require.ErrorIs(s.T(), err, ErrEmptyRuleName)

	err = s.registry.SetRules(s.ctx, memberAddress, "tp:x", []string{"a"}, []bool{true})
	require.ErrorIs(s.T(), err, ErrInvalidThirdParty)

	err = s.registry.SetRules(s.ctx, memberAddress, "tp:1", []string{"a", "b"}, []bool{true, false})
	require.Nil(s.T(), err)

	value, err := s.registry.GetRule(s.ctx, "tp:1", "a")
	require.Nil(s.T(), err)
	require.True(s.T(), value)

	rules, err := s.registry.ListRules(s.ctx, "tp:1")
	require.Nil(s.T(), err)
	require.Equal(s.T(), map[string]bool{"a": true, "b": false}, rules)

	var payload ThirdPartyRuleAddedEvent
	s.payload(s.lastEvent(), &payload)
	require.Equal(s.T(), "b", payload.Rule)
	require.False(s.T(), payload.Value)
}

func (s *RegistryTestSuite) TestCommitteeChange() {
	s.addThirdParty("tp:1", 0)

	// Members come from the committee the settings point at
	newCommittee := common.HexToAddress("0x0000000000000000000000000000000000000c01")
	s.backend.committees[newCommittee] = committee.NewStatic(strangerAddress)
	require.Nil(s.T(), s.registry.SetCommittee(s.ctx, ownerAddress, newCommittee))

	err := s.registry.ReviewThirdParties(s.ctx, memberAddress, []ThirdPartyReviewParam{{Id: "tp:1", Value: true}})
	require.ErrorIs(s.T(), err, ErrOnlyCommittee)

	err = s.registry.ReviewThirdParties(s.ctx, strangerAddress, []ThirdPartyReviewParam{{Id: "tp:1", Value: true}})
	require.Nil(s.T(), err)
}
