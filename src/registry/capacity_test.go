package registry

import (
	"context"
	"errors"
	"math"
	"math/big"

	"github.com/decentraland/thirdparty-registry/src/token"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/stretchr/testify/require"
)

func (s *RegistryTestSuite) TestPrice() {
	require.Equal(s.T(), tokens(2000).String(), price(10, itemSlotPrice, defaultRate).String())

	// Rate of 2 reproduces the half price formula
	require.Equal(s.T(), tokens(500).String(), price(10, itemSlotPrice, tokens(2)).String())

	// Rounds down
	require.Equal(s.T(), "3", price(1, big.NewInt(10), big.NewInt(3e18)).String())
}

func (s *RegistryTestSuite) TestQuoteItemSlots() {
	quote, err := s.registry.QuoteItemSlots(s.ctx, 3)
	require.Nil(s.T(), err)
	require.Equal(s.T(), tokens(600).String(), quote.String())

	s.rate = tokens(1)
	quote, err = s.registry.QuoteItemSlots(s.ctx, 3)
	require.Nil(s.T(), err)
	require.Equal(s.T(), tokens(300).String(), quote.String())

	_, err = s.registry.QuoteItemSlots(s.ctx, 0)
	require.ErrorIs(s.T(), err, ErrInvalidQty)
}

func (s *RegistryTestSuite) TestBuyItemSlots() {
	s.addThirdParty("tp:1", 0)
	s.token.Mint(s.manager, tokens(5000))
	s.token.Approve(s.manager, tokens(5000))

	err := s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 10, tokens(2000))
	require.Nil(s.T(), err)

	require.Equal(s.T(), uint64(10), s.thirdParty("tp:1").MaxItems)
	require.Equal(s.T(), tokens(3000).String(), s.token.BalanceOf(s.manager).String())
	require.Equal(s.T(), tokens(2000).String(), s.token.BalanceOf(feesCollectorAddress).String())

	event := s.lastEvent()
	require.Equal(s.T(), EventThirdPartyItemSlotsBought, event.Name)

	var payload ThirdPartyItemSlotsBoughtEvent
	s.payload(event, &payload)
	require.Equal(s.T(), tokens(2000).String(), payload.Price.String())
	require.Equal(s.T(), uint64(10), payload.Value)
	require.Equal(s.T(), s.manager, payload.Sender)
	require.Equal(s.T(), uint64(10), s.registry.report.State.SlotsBought.Load())
}

func (s *RegistryTestSuite) TestBuyItemSlotsAnyone() {
	s.addThirdParty("tp:1", 0)
	s.token.Mint(strangerAddress, tokens(200))
	s.token.Approve(strangerAddress, tokens(200))

	require.Nil(s.T(), s.registry.BuyItemSlots(s.ctx, strangerAddress, "tp:1", 1, tokens(200)))
	require.Equal(s.T(), uint64(1), s.thirdParty("tp:1").MaxItems)
	require.Zero(s.T(), s.token.BalanceOf(strangerAddress).Sign())
}

func (s *RegistryTestSuite) TestBuyItemSlotsValidation() {
	s.addThirdParty("tp:1", 0)

	require.ErrorIs(s.T(), s.registry.BuyItemSlots(s.ctx, s.manager, "tp:x", 1, tokens(200)), ErrInvalidThirdParty)
	require.ErrorIs(s.T(), s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 0, tokens(200)), ErrInvalidQty)
	require.ErrorIs(s.T(), s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 1, nil), ErrInvalidPrice)
	require.ErrorIs(s.T(), s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 1, big.NewInt(-1)), ErrInvalidPrice)
}

func (s *RegistryTestSuite) TestBuyItemSlotsAboveMaxPrice() {
	s.addThirdParty("tp:1", 0)
	s.token.Mint(s.manager, tokens(5000))
	s.token.Approve(s.manager, tokens(5000))
	events := len(s.events())

	// Rate dropped since the quote
	s.rate = tokens(1).Div(tokens(1), big.NewInt(4))
	err := s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 10, tokens(2000))
	require.ErrorIs(s.T(), err, ErrPriceHigherThanMaxPrice)

	require.Zero(s.T(), s.thirdParty("tp:1").MaxItems)
	require.Equal(s.T(), tokens(5000).String(), s.token.BalanceOf(s.manager).String())
	require.Len(s.T(), s.events(), events)
}

func (s *RegistryTestSuite) TestBuyItemSlotsFailedTransfer() {
	s.addThirdParty("tp:1", 0)
	s.token.Mint(s.manager, tokens(5000))
	s.token.Approve(s.manager, tokens(100))
	events := len(s.events())

	err := s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 10, tokens(2000))
	require.ErrorIs(s.T(), err, token.ErrInsufficientAllowance)

	// Slots and event are rolled back with the payment
	require.Zero(s.T(), s.thirdParty("tp:1").MaxItems)
	require.Len(s.T(), s.events(), events)
	require.Equal(s.T(), uint64(1), s.registry.report.Errors.Transfer.Load())
	require.Zero(s.T(), s.registry.report.State.SlotsBought.Load())
}

func (s *RegistryTestSuite) TestBuyItemSlotsFree() {
	require.Nil(s.T(), s.registry.SetItemSlotPrice(s.ctx, ownerAddress, big.NewInt(0)))
	s.addThirdParty("tp:1", 0)

	// Nothing to pay, so no allowance needed
	require.Nil(s.T(), s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 5, big.NewInt(0)))
	require.Equal(s.T(), uint64(5), s.thirdParty("tp:1").MaxItems)
	require.Zero(s.T(), s.token.BalanceOf(feesCollectorAddress).Sign())
}

func (s *RegistryTestSuite) TestBuyItemSlotsOverflow() {
	require.Nil(s.T(), s.registry.SetItemSlotPrice(s.ctx, ownerAddress, big.NewInt(0)))
	s.addThirdParty("tp:1", math.MaxUint64)

	err := s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 1, big.NewInt(0))
	require.ErrorIs(s.T(), err, ErrOverflow)
}

func (s *RegistryTestSuite) TestBuyItemSlotsOracleFailure() {
	s.addThirdParty("tp:1", 0)
	feedErr := errors.New("feed down")
	s.backend.oracles[oracleAddress] = funcOracle(func(ctx context.Context) (*big.Int, error) {
		return nil, feedErr
	})

	err := s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 1, tokens(200))
	require.ErrorIs(s.T(), err, ErrInvalidRateFromOracle)
	require.ErrorIs(s.T(), err, feedErr)

	_, err = s.registry.QuoteItemSlots(s.ctx, 1)
	require.ErrorIs(s.T(), err, ErrInvalidRateFromOracle)
}

func (s *RegistryTestSuite) TestBuyItemSlotsInvalidRate() {
	s.addThirdParty("tp:1", 0)

	for _, rate := range []*big.Int{nil, big.NewInt(0), big.NewInt(-5)} {
		s.backend.oracles[oracleAddress] = funcOracle(func(ctx context.Context) (*big.Int, error) {
			return rate, nil
		})
		err := s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 1, tokens(200))
		require.ErrorIs(s.T(), err, ErrInvalidRateFromOracle)
	}
	require.Zero(s.T(), s.thirdParty("tp:1").MaxItems)
}

// Buy, fill, overflow, approve, freeze
func (s *RegistryTestSuite) TestPurchaseAndReviewScenario() {
	s.addThirdParty("tp1", 0)
	s.token.Mint(s.manager, tokens(2000))
	s.token.Approve(s.manager, tokens(2000))

	quote, err := s.registry.QuoteItemSlots(s.ctx, 10)
	require.Nil(s.T(), err)
	require.Nil(s.T(), s.registry.BuyItemSlots(s.ctx, s.manager, "tp1", 10, quote))
	require.Equal(s.T(), quote.String(), s.token.BalanceOf(feesCollectorAddress).String())
	require.Zero(s.T(), s.token.BalanceOf(s.manager).Sign())

	ids := make([]string, 10)
	reviews := make([]ItemReviewParam, 10)
	for i := range ids {
		ids[i] = "item-" + string(rune('a'+i))
		reviews[i] = ItemReviewParam{Id: ids[i], ContentHash: "hash-" + ids[i], Value: true}
	}
	require.Nil(s.T(), s.addItems("tp1", ids...))
	require.ErrorIs(s.T(), s.addItems("tp1", "item-k"), ErrNoItemSlotsAvailable)

	err = s.registry.ReviewThirdParties(s.ctx, memberAddress, []ThirdPartyReviewParam{{
		Id:    "tp1",
		Value: true,
		Items: reviews,
	}})
	require.Nil(s.T(), err)
	require.True(s.T(), s.thirdParty("tp1").IsApproved)

	for _, id := range ids {
		item, err := s.registry.GetItem(s.ctx, "tp1", id)
		require.Nil(s.T(), err)
		require.True(s.T(), item.IsApproved)
		require.Equal(s.T(), "hash-"+id, item.ContentHash)

		err = s.registry.UpdateItems(s.ctx, s.manager, "tp1", []ItemParam{{Id: id, Metadata: "changed"}})
		require.ErrorIs(s.T(), err, ErrItemIsApproved)
	}
}

func (s *RegistryTestSuite) TestSettingsFromConfig() {
	cfg := s.registryConfig()
	settings, err := SettingsFromConfig(cfg)
	require.Nil(s.T(), err)
	require.Equal(s.T(), ownerAddress, settings.Owner)
	require.Equal(s.T(), model.SettingsId, settings.Id)
	require.Equal(s.T(), "42", settings.ItemSlotPrice.String())
	require.True(s.T(), settings.InitialItemValue)

	cfg.Oracle = "nope"
	_, err = SettingsFromConfig(cfg)
	require.ErrorIs(s.T(), err, ErrInvalidAddress)

	cfg = s.registryConfig()
	cfg.ItemSlotPrice = "-1"
	_, err = SettingsFromConfig(cfg)
	require.ErrorIs(s.T(), err, ErrInvalidPrice)
}
