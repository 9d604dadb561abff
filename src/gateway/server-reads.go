package gateway

import (
	"fmt"
	"net/http"

	"github.com/decentraland/thirdparty-registry/src/gateway/request"
	"github.com/decentraland/thirdparty-registry/src/gateway/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
)

func (self *Server) onIsThirdPartyManager(c *gin.Context) {
	if !common.IsHexAddress(c.Param("address")) {
		self.badRequest(c, fmt.Errorf("invalid address: %q", c.Param("address")))
		return
	}
	address := common.HexToAddress(c.Param("address"))

	isManager, err := self.registry.IsThirdPartyManager(c.Request.Context(), c.Param("id"), address)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, &response.Manager{
		ThirdPartyId: c.Param("id"),
		Address:      address,
		IsManager:    isManager,
	})
}

func (self *Server) onIsMessageProcessed(c *gin.Context) {
	buf, err := hexutil.Decode(c.Param("hash"))
	if err != nil || len(buf) != common.HashLength {
		self.badRequest(c, fmt.Errorf("invalid hash: %q", c.Param("hash")))
		return
	}
	hash := common.BytesToHash(buf)

	processed, err := self.registry.IsMessageProcessed(c.Request.Context(), hash)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, &response.Message{Hash: hash, Processed: processed})
}

func (self *Server) onGetEvents(c *gin.Context) {
	var in request.Events
	err := c.ShouldBindQuery(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}
	if in.Limit <= 0 || in.Limit > self.Config.Gateway.MaxPageSize {
		in.Limit = self.Config.Gateway.MaxPageSize
	}

	events, err := self.registry.Events(c.Request.Context(), in.AfterSeq, in.Limit)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, &response.Events{Events: events})
}
