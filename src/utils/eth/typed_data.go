package eth

import (
	"fmt"

	"github.com/decentraland/thirdparty-registry/src/utils/config"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const ConsumeSlotsPrimaryType = "ConsumeSlots"

var consumeSlotsTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	ConsumeSlotsPrimaryType: {
		{Name: "thirdPartyId", Type: "string"},
		{Name: "qty", Type: "uint256"},
		{Name: "salt", Type: "bytes32"},
	},
}

// Domain separating registry signatures from other deployments
type Domain struct {
	Name              string
	Version           string
	ChainId           int64
	VerifyingContract common.Address
}

func NewDomain(config *config.Domain) (self Domain, err error) {
	if !common.IsHexAddress(config.VerifyingContract) {
		err = fmt.Errorf("invalid verifying contract address: %q", config.VerifyingContract)
		return
	}
	self = Domain{
		Name:              config.Name,
		Version:           config.Version,
		ChainId:           config.ChainId,
		VerifyingContract: common.HexToAddress(config.VerifyingContract),
	}
	return
}

func (self Domain) typedDataDomain() apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              self.Name,
		Version:           self.Version,
		ChainId:           math.NewHexOrDecimal256(self.ChainId),
		VerifyingContract: self.VerifyingContract.Hex(),
	}
}

// EIP-712 typed data of an authorization to consume qty slots of a third party
func ConsumeSlotsTypedData(domain Domain, thirdPartyId string, qty uint64, salt common.Hash) apitypes.TypedData {
	return apitypes.TypedData{
		Types:       consumeSlotsTypes,
		PrimaryType: ConsumeSlotsPrimaryType,
		Domain:      domain.typedDataDomain(),
		Message: apitypes.TypedDataMessage{
			"thirdPartyId": thirdPartyId,
			"qty":          fmt.Sprintf("%d", qty),
			"salt":         hexutil.Encode(salt[:]),
		},
	}
}

// Digest a manager signs to authorize consumption
func ConsumeSlotsHash(domain Domain, thirdPartyId string, qty uint64, salt common.Hash) (digest common.Hash, err error) {
	hash, _, err := apitypes.TypedDataAndHash(ConsumeSlotsTypedData(domain, thirdPartyId, qty, salt))
	if err != nil {
		return
	}
	return common.BytesToHash(hash), nil
}
