package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/decentraland/thirdparty-registry/src/gateway/request"
	. "github.com/decentraland/thirdparty-registry/src/utils/logger"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

var ErrUnknownSetting = errors.New("unknown setting")

func parseAddress(raw json.RawMessage) (out common.Address, err error) {
	var s string
	err = json.Unmarshal(raw, &s)
	if err != nil {
		return
	}
	if !common.IsHexAddress(s) {
		return out, fmt.Errorf("invalid address: %q", s)
	}
	return common.HexToAddress(s), nil
}

func (self *Server) onSetSetting(c *gin.Context) {
	var in request.SetSetting
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	ctx, caller, name := c.Request.Context(), getCaller(c), c.Param("name")

	var apply func() error
	switch name {
	case "itemSlotPrice":
		var price model.BigInt
		err = json.Unmarshal(in.Value, &price)
		apply = func() error { return self.registry.SetItemSlotPrice(ctx, caller, price.Big()) }
	case "initialThirdPartyValue", "initialItemValue":
		var value bool
		err = json.Unmarshal(in.Value, &value)
		apply = func() error {
			if name == "initialItemValue" {
				return self.registry.SetInitialItemValue(ctx, caller, value)
			}
			return self.registry.SetInitialThirdPartyValue(ctx, caller, value)
		}
	default:
		setters := map[string]func(common.Address) error{
			"owner":                func(v common.Address) error { return self.registry.TransferOwnership(ctx, caller, v) },
			"thirdPartyAggregator": func(v common.Address) error { return self.registry.SetThirdPartyAggregator(ctx, caller, v) },
			"feesCollector":        func(v common.Address) error { return self.registry.SetFeesCollector(ctx, caller, v) },
			"committee":            func(v common.Address) error { return self.registry.SetCommittee(ctx, caller, v) },
			"acceptedToken":        func(v common.Address) error { return self.registry.SetAcceptedToken(ctx, caller, v) },
			"oracle":               func(v common.Address) error { return self.registry.SetOracle(ctx, caller, v) },
		}
		setter, ok := setters[name]
		if !ok {
			self.badRequest(c, fmt.Errorf("%w: %q", ErrUnknownSetting, name))
			return
		}
		var address common.Address
		address, err = parseAddress(in.Value)
		apply = func() error { return setter(address) }
	}
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = apply()
	if err != nil {
		self.abort(c, err)
		return
	}

	LOG(c).WithField("name", name).Info("Setting changed")
	c.Status(http.StatusNoContent)
}

func (self *Server) onGetSettings(c *gin.Context) {
	settings, err := self.registry.GetSettings(c.Request.Context())
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
