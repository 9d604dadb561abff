package registry

import (
	"github.com/stretchr/testify/require"
)

func (s *RegistryTestSuite) TestAddItems() {
	s.addThirdParty("tp:1", 3)

	require.Nil(s.T(), s.addItems("tp:1", "i:1", "i:2"))

	count, err := s.registry.ItemsCount(s.ctx, "tp:1")
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(2), count)

	item, err := s.registry.GetItem(s.ctx, "tp:1", "i:2")
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(1), item.Seq)
	require.Equal(s.T(), "metadata of i:2", item.Metadata)
	require.Empty(s.T(), item.ContentHash)
	require.False(s.T(), item.IsApproved)

	items, err := s.registry.ListItems(s.ctx, "tp:1", 0, 0)
	require.Nil(s.T(), err)
	require.Len(s.T(), items, 2)
	require.Equal(s.T(), "i:1", items[0].Id)

	var payload ItemAddedEvent
	s.payload(s.lastEvent(), &payload)
	require.Equal(s.T(), "i:2", payload.ItemId)
	require.Equal(s.T(), s.manager, payload.Sender)
}

func (s *RegistryTestSuite) TestAddItemsValidation() {
	s.addThirdParty("tp:1", 10)

	require.ErrorIs(s.T(), s.registry.AddItems(s.ctx, strangerAddress, "tp:1", []ItemParam{{Id: "i", Metadata: "m"}}), ErrOnlyManager)
	require.ErrorIs(s.T(), s.registry.AddItems(s.ctx, s.manager, "tp:x", []ItemParam{{Id: "i", Metadata: "m"}}), ErrInvalidThirdParty)
	require.ErrorIs(s.T(), s.registry.AddItems(s.ctx, s.manager, "tp:1", []ItemParam{{Metadata: "m"}}), ErrEmptyId)
	require.ErrorIs(s.T(), s.registry.AddItems(s.ctx, s.manager, "tp:1", []ItemParam{{Id: "i"}}), ErrEmptyMetadata)

	require.Nil(s.T(), s.addItems("tp:1", "i:1"))
	require.ErrorIs(s.T(), s.addItems("tp:1", "i:1"), ErrItemAlreadyExists)
	require.ErrorIs(s.T(), s.addItems("tp:1", "i:2", "i:2"), ErrItemAlreadyExists)

	count, err := s.registry.ItemsCount(s.ctx, "tp:1")
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(1), count)

	_, err = s.registry.GetItem(s.ctx, "tp:1", "i:2")
	require.ErrorIs(s.T(), err, ErrInvalidItem)
}

func (s *RegistryTestSuite) TestAddItemsCapacity() {
	s.addThirdParty("tp:1", 2)

	// Whole batch fails
	require.ErrorIs(s.T(), s.addItems("tp:1", "i:1", "i:2", "i:3"), ErrNoItemSlotsAvailable)
	count, err := s.registry.ItemsCount(s.ctx, "tp:1")
	require.Nil(s.T(), err)
	require.Zero(s.T(), count)

	require.Nil(s.T(), s.addItems("tp:1", "i:1", "i:2"))
	require.ErrorIs(s.T(), s.addItems("tp:1", "i:3"), ErrNoItemSlotsAvailable)

	// No slots at all
	s.addThirdParty("tp:2", 0)
	require.ErrorIs(s.T(), s.addItems("tp:2", "i:1"), ErrNoItemSlotsAvailable)
}

func (s *RegistryTestSuite) TestUpdateItems() {
	s.addThirdParty("tp:1", 2)
	require.Nil(s.T(), s.addItems("tp:1", "i:1", "i:2"))

	err := s.registry.UpdateItems(s.ctx, s.manager, "tp:1", []ItemParam{{Id: "i:1", Metadata: "changed"}})
	require.Nil(s.T(), err)

	item, err := s.registry.GetItem(s.ctx, "tp:1", "i:1")
	require.Nil(s.T(), err)
	require.Equal(s.T(), "changed", item.Metadata)
	require.Equal(s.T(), EventItemUpdated, s.lastEvent().Name)

	require.ErrorIs(s.T(), s.registry.UpdateItems(s.ctx, strangerAddress, "tp:1", []ItemParam{{Id: "i:1", Metadata: "x"}}), ErrOnlyManager)
	require.ErrorIs(s.T(), s.registry.UpdateItems(s.ctx, s.manager, "tp:1", []ItemParam{{Id: "i:1"}}), ErrEmptyMetadata)
	require.ErrorIs(s.T(), s.registry.UpdateItems(s.ctx, s.manager, "tp:1", []ItemParam{{Id: "i:9", Metadata: "x"}}), ErrInvalidItem)
	require.ErrorIs(s.T(), s.registry.UpdateItems(s.ctx, s.manager, "tp:x", []ItemParam{{Id: "i:1", Metadata: "x"}}), ErrInvalidThirdParty)
}

func (s *RegistryTestSuite) TestApprovedItemIsFrozen() {
	s.addThirdParty("tp:1", 2)
	require.Nil(s.T(), s.addItems("tp:1", "i:1", "i:2"))

	err := s.registry.ReviewThirdParties(s.ctx, memberAddress, []ThirdPartyReviewParam{{
		Id:    "tp:1",
		Value: true,
		Items: []ItemReviewParam{{Id: "i:1", ContentHash: "hash-1", Value: true}},
	}})
	require.Nil(s.T(), err)

	// Batch containing an approved item fails as a whole
	err = s.registry.UpdateItems(s.ctx, s.manager, "tp:1", []ItemParam{
		{Id: "i:2", Metadata: "changed"},
		{Id: "i:1", Metadata: "changed"},
	})
	require.ErrorIs(s.T(), err, ErrItemIsApproved)

	item, err := s.registry.GetItem(s.ctx, "tp:1", "i:2")
	require.Nil(s.T(), err)
	require.Equal(s.T(), "metadata of i:2", item.Metadata)

	// The committee still can
	err = s.registry.ReviewThirdParties(s.ctx, memberAddress, []ThirdPartyReviewParam{{
		Id:    "tp:1",
		Value: true,
		Items: []ItemReviewParam{{Id: "i:1", Metadata: "by committee", ContentHash: "hash-2", Value: true}},
	}})
	require.Nil(s.T(), err)

	item, err = s.registry.GetItem(s.ctx, "tp:1", "i:1")
	require.Nil(s.T(), err)
	require.Equal(s.T(), "by committee", item.Metadata)
	require.Equal(s.T(), "hash-2", item.ContentHash)
}
