package registry

import (
	"fmt"
	"math/big"

	"github.com/decentraland/thirdparty-registry/src/utils/config"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
)

// Initial settings from the configuration
func SettingsFromConfig(config *config.Registry) (settings *model.Settings, err error) {
	settings = &model.Settings{
		Id:                     model.SettingsId,
		InitialThirdPartyValue: config.InitialThirdPartyValue,
		InitialItemValue:       config.InitialItemValue,
	}

	for _, field := range []struct {
		name  string
		value string
		out   *common.Address
	}{
		{"owner", config.Owner, &settings.Owner},
		{"aggregator", config.Aggregator, &settings.Aggregator},
		{"fees collector", config.FeesCollector, &settings.FeesCollector},
		{"committee", config.Committee, &settings.Committee},
		{"accepted token", config.AcceptedToken, &settings.AcceptedToken},
		{"oracle", config.Oracle, &settings.Oracle},
	} {
		if !common.IsHexAddress(field.value) {
			return nil, fmt.Errorf("%w: %s %q", ErrInvalidAddress, field.name, field.value)
		}
		*field.out = common.HexToAddress(field.value)
	}

	price, ok := new(big.Int).SetString(config.ItemSlotPrice, 10)
	if !ok || price.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, config.ItemSlotPrice)
	}
	settings.ItemSlotPrice = model.NewBigInt(price)

	return
}
