package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type ItemReviewParam struct {
	Id string `json:"id"`

	// Empty keeps the current metadata
	Metadata string `json:"metadata"`

	// Required when approving
	ContentHash string `json:"contentHash"`

	Value bool `json:"value"`
}

type ThirdPartyReviewParam struct {
	Id    string            `json:"id"`
	Value bool              `json:"value"`
	Items []ItemReviewParam `json:"items"`
}

// Approves or rejects third parties and their items. Only committee members can do it.
func (self *Registry) ReviewThirdParties(ctx context.Context, caller common.Address, params []ThirdPartyReviewParam) error {
	return self.execute(ctx, "reviewThirdParties", caller, func(op *operation) (err error) {
		err = self.onlyCommittee(op)
		if err != nil {
			return
		}

		for _, param := range params {
			thirdParty, err := getThirdParty(op.state, param.Id)
			if err != nil {
				return err
			}

			thirdParty.IsApproved = param.Value
			err = op.state.PutThirdParty(thirdParty)
			if err != nil {
				return err
			}

			err = op.emit(EventThirdPartyReviewed, param.Id, &ThirdPartyReviewedEvent{
				ThirdPartyId: param.Id,
				Value:        param.Value,
				Sender:       op.caller,
			})
			if err != nil {
				return err
			}

			for _, review := range param.Items {
				err = self.reviewItem(op, param.Id, review)
				if err != nil {
					return err
				}
			}
		}
		return
	})
}

func (self *Registry) reviewItem(op *operation, thirdPartyId string, review ItemReviewParam) (err error) {
	item, err := getItem(op.state, thirdPartyId, review.Id)
	if err != nil {
		return
	}

	if review.Value && review.ContentHash == "" {
		return ErrInvalidContentHash
	}

	if review.Metadata != "" {
		item.Metadata = review.Metadata
	}
	item.ContentHash = review.ContentHash
	item.IsApproved = review.Value

	err = op.state.PutItem(item)
	if err != nil {
		return
	}

	return op.emit(EventItemReviewed, thirdPartyId, &ItemReviewedEvent{
		ThirdPartyId: thirdPartyId,
		ItemId:       review.Id,
		Metadata:     item.Metadata,
		ContentHash:  item.ContentHash,
		Value:        item.IsApproved,
		Sender:       op.caller,
	})
}

// Approves a third party whose items are tracked off-registry under root.
// The attached authorizations are consumed in the same operation.
func (self *Registry) ReviewThirdPartyWithRoot(ctx context.Context, caller common.Address, thirdPartyId string, root common.Hash, authorizations []ConsumeSlotsParam) error {
	return self.execute(ctx, "reviewThirdPartyWithRoot", caller, func(op *operation) (err error) {
		err = self.onlyCommittee(op)
		if err != nil {
			return
		}

		if root == (common.Hash{}) {
			return ErrInvalidRoot
		}

		thirdParty, err := getThirdParty(op.state, thirdPartyId)
		if err != nil {
			return
		}

		err = self.consume(op, thirdParty, authorizations)
		if err != nil {
			return
		}

		thirdParty.Root = root
		thirdParty.IsApproved = true
		err = op.state.PutThirdParty(thirdParty)
		if err != nil {
			return
		}

		return op.emit(EventThirdPartyReviewedWithRoot, thirdPartyId, &ThirdPartyReviewedWithRootEvent{
			ThirdPartyId: thirdPartyId,
			Root:         root,
			IsApproved:   true,
			Sender:       op.caller,
		})
	})
}

// Sets named boolean rules of a third party. Only committee members can do it.
func (self *Registry) SetRules(ctx context.Context, caller common.Address, thirdPartyId string, names []string, values []bool) error {
	return self.execute(ctx, "setRules", caller, func(op *operation) (err error) {
		err = self.onlyCommittee(op)
		if err != nil {
			return
		}

		_, err = getThirdParty(op.state, thirdPartyId)
		if err != nil {
			return
		}

		if len(names) != len(values) {
			return ErrLengthMismatch
		}

		for i, name := range names {
			if name == "" {
				return ErrEmptyRuleName
			}

			err = op.state.SetRule(thirdPartyId, name, values[i])
			if err != nil {
				return
			}

			err = op.emit(EventThirdPartyRuleAdded, thirdPartyId, &ThirdPartyRuleAddedEvent{
				ThirdPartyId: thirdPartyId,
				Rule:         name,
				Value:        values[i],
				Sender:       op.caller,
			})
			if err != nil {
				return
			}
		}
		return
	})
}
