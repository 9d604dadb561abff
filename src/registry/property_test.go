package registry

import (
	"fmt"
	"math/big"
	"time"

	"github.com/decentraland/thirdparty-registry/src/store"
	"github.com/decentraland/thirdparty-registry/src/utils/eth"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"pgregory.net/rapid"
)

// Random sequences of capacity changes never break the counters
func (s *RegistryTestSuite) TestCapacityProperty() {
	rapid.Check(s.T(), func(t *rapid.T) {
		registry := NewRegistry(store.NewMemory(), s.backend, s.domain).
			WithClock(func() time.Time { return s.now })

		settings := s.settings()
		settings.ItemSlotPrice = model.NewBigInt(big.NewInt(0))
		if err := registry.Initialize(s.ctx, settings); err != nil {
			t.Fatalf("initialize: %v", err)
		}

		initial := rapid.Uint64Range(0, 5).Draw(t, "initial")
		err := registry.AddThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{{
			Id:            "tp",
			Metadata:      "m",
			Resolver:      "r",
			Managers:      []common.Address{s.manager},
			ManagerValues: []bool{true},
			Slots:         initial,
		}})
		if err != nil {
			t.Fatalf("add third party: %v", err)
		}

		var (
			maxItems, itemsCount, consumed uint64 = initial, 0, 0
			nextItem, nextSalt             int
			used                           []ConsumeSlotsParam
		)

		sign := func(qty uint64) ConsumeSlotsParam {
			nextSalt++
			salt := common.BigToHash(big.NewInt(int64(nextSalt)))
			digest, err := eth.ConsumeSlotsHash(s.domain, "tp", qty, salt)
			if err != nil {
				t.Fatalf("hash: %v", err)
			}
			signature, err := eth.Sign(digest, s.managerKey)
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			return ConsumeSlotsParam{Qty: qty, Salt: salt, Signature: signature}
		}

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			n := rapid.Uint64Range(1, 4).Draw(t, "n")
			switch rapid.IntRange(0, 4).Draw(t, "action") {
			case 0:
				err = registry.BuyItemSlots(s.ctx, strangerAddress, "tp", n, big.NewInt(0))
				if err != nil {
					t.Fatalf("buy: %v", err)
				}
				maxItems += n
			case 1:
				err = registry.UpdateThirdParties(s.ctx, aggregatorAddress, []ThirdPartyParam{{Id: "tp", Slots: n}})
				if err != nil {
					t.Fatalf("grant: %v", err)
				}
				maxItems += n
			case 2:
				items := make([]ItemParam, n)
				for j := range items {
					nextItem++
					items[j] = ItemParam{Id: fmt.Sprintf("item-%d", nextItem), Metadata: "m"}
				}
				err = registry.AddItems(s.ctx, s.manager, "tp", items)
				fits := itemsCount+n <= maxItems
				if fits != (err == nil) {
					t.Fatalf("add %d items with %d of %d used: %v", n, itemsCount, maxItems, err)
				}
				if fits {
					itemsCount += n
				}
			case 3:
				authorization := sign(n)
				err = registry.ConsumeSlots(s.ctx, s.manager, "tp", []ConsumeSlotsParam{authorization})
				fits := consumed+n <= maxItems && itemsCount+n <= maxItems
				if fits != (err == nil) {
					t.Fatalf("consume %d with %d consumed, %d items of %d: %v", n, consumed, itemsCount, maxItems, err)
				}
				if fits {
					consumed += n
					itemsCount += n
					used = append(used, authorization)
				}
			case 4:
				if len(used) == 0 {
					continue
				}
				replay := used[rapid.IntRange(0, len(used)-1).Draw(t, "replay")]
				err = registry.ConsumeSlots(s.ctx, s.manager, "tp", []ConsumeSlotsParam{replay})
				if err == nil {
					t.Fatalf("replayed authorization accepted")
				}
			}

			tp, err := registry.GetThirdParty(s.ctx, "tp")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if tp.MaxItems != maxItems || tp.ItemsCount != itemsCount || tp.ConsumedSlots != consumed {
				t.Fatalf("counters %d/%d/%d, expected %d/%d/%d",
					tp.MaxItems, tp.ItemsCount, tp.ConsumedSlots, maxItems, itemsCount, consumed)
			}
			if tp.ConsumedSlots > tp.MaxItems || tp.ItemsCount > tp.MaxItems {
				t.Fatalf("capacity exceeded: %+v", tp)
			}
		}
	})
}

// Authorizations of one key never verify for another
func (s *RegistryTestSuite) TestSignerProperty() {
	rapid.Check(s.T(), func(t *rapid.T) {
		qty := rapid.Uint64Range(1, 1000).Draw(t, "qty")
		salt := common.BytesToHash(rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "salt"))

		key, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("key: %v", err)
		}
		digest, err := eth.ConsumeSlotsHash(s.domain, "tp", qty, salt)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		signature, err := eth.Sign(digest, key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}

		signer, err := eth.RecoverSigner(digest, signature)
		if err != nil {
			t.Fatalf("recover: %v", err)
		}
		if signer != crypto.PubkeyToAddress(key.PublicKey) || signer == s.manager {
			t.Fatalf("unexpected signer %s", signer.Hex())
		}
	})
}
