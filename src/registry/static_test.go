package registry

import (
	"context"
	"math/big"
	"time"

	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/stretchr/testify/require"
)

func (s *RegistryTestSuite) TestOracleReadsRegistry() {
	s.addThirdParty("tp:1", 0)
	require.Nil(s.T(), s.registry.SetItemSlotPrice(s.ctx, ownerAddress, big.NewInt(0)))

	var seen []uint64
	s.backend.oracles[oracleAddress] = funcOracle(func(ctx context.Context) (*big.Int, error) {
		tp, err := s.registry.GetThirdParty(ctx, "tp:1")
		if err != nil {
			return nil, err
		}
		seen = append(seen, tp.MaxItems)
		return tokens(1), nil
	})

	// Reads during a state change don't block on it
	require.Nil(s.T(), s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 2, big.NewInt(0)))
	require.Nil(s.T(), s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 3, big.NewInt(0)))

	_, err := s.registry.QuoteItemSlots(s.ctx, 1)
	require.Nil(s.T(), err)

	require.Equal(s.T(), []uint64{0, 2, 5}, seen)
}

func (s *RegistryTestSuite) TestOracleChangesRegistry() {
	s.addThirdParty("tp:1", 0)
	s.token.Mint(s.manager, tokens(1000))
	s.token.Approve(s.manager, tokens(1000))

	var writeErr error
	s.backend.oracles[oracleAddress] = funcOracle(func(ctx context.Context) (*big.Int, error) {
		// Error ignored on purpose, the registry must notice anyway
		writeErr = s.registry.SetItemSlotPrice(ctx, ownerAddress, big.NewInt(1))
		return tokens(1), nil
	})

	err := s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 1, tokens(1000))
	require.ErrorIs(s.T(), err, ErrInvalidRateFromOracle)
	require.ErrorIs(s.T(), err, ErrStateChangeInStaticCall)
	require.ErrorIs(s.T(), writeErr, ErrStateChangeInStaticCall)

	settings, err := s.registry.GetSettings(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), itemSlotPrice.String(), settings.ItemSlotPrice.String())
	require.Zero(s.T(), s.thirdParty("tp:1").MaxItems)
	require.Equal(s.T(), tokens(1000).String(), s.token.BalanceOf(s.manager).String())

	_, err = s.registry.QuoteItemSlots(s.ctx, 1)
	require.ErrorIs(s.T(), err, ErrStateChangeInStaticCall)
}

func (s *RegistryTestSuite) TestOraclePanics() {
	s.addThirdParty("tp:1", 0)
	s.backend.oracles[oracleAddress] = funcOracle(func(ctx context.Context) (*big.Int, error) {
		panic("boom")
	})

	err := s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 1, tokens(1000))
	require.ErrorIs(s.T(), err, ErrInvalidRateFromOracle)
	require.Zero(s.T(), s.thirdParty("tp:1").MaxItems)
}

func (s *RegistryTestSuite) TestOracleTimeout() {
	s.addThirdParty("tp:1", 0)
	s.registry.WithOracleTimeout(50 * time.Millisecond)
	s.backend.oracles[oracleAddress] = funcOracle(func(ctx context.Context) (*big.Int, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	err := s.registry.BuyItemSlots(s.ctx, s.manager, "tp:1", 1, tokens(1000))
	require.ErrorIs(s.T(), err, ErrInvalidRateFromOracle)
	require.ErrorIs(s.T(), err, context.DeadlineExceeded)
	require.Equal(s.T(), uint64(1), s.registry.report.Errors.Oracle.Load())
}

func (s *RegistryTestSuite) TestStaticCallWindow() {
	err := s.store.View(s.ctx, func(state store.State) error {
		call := &staticCall{state: state}

		err := call.view(func(state store.State) error {
			_, err := state.GetSettings()
			require.Nil(s.T(), err)
			return state.PutThirdParty(&model.ThirdParty{Id: "tp:1"})
		})
		require.ErrorIs(s.T(), err, store.ErrReadOnly)
		require.False(s.T(), call.finish())

		// Closed once the query returned
		err = call.view(func(state store.State) error { return nil })
		require.ErrorIs(s.T(), err, ErrStaticCallFinished)
		return nil
	})
	require.Nil(s.T(), err)

	call := &staticCall{}
	ctx := withStaticCall(s.ctx, call)
	require.Same(s.T(), call, staticCallFrom(ctx))
	require.Nil(s.T(), staticCallFrom(s.ctx))

	require.ErrorIs(s.T(), s.registry.SetInitialItemValue(ctx, ownerAddress, true), ErrStateChangeInStaticCall)
	require.True(s.T(), call.finish())
}
