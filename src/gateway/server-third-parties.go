package gateway

import (
	"net/http"

	"github.com/decentraland/thirdparty-registry/src/gateway/request"
	"github.com/decentraland/thirdparty-registry/src/gateway/response"
	. "github.com/decentraland/thirdparty-registry/src/utils/logger"
	"github.com/decentraland/thirdparty-registry/src/utils/model"

	"github.com/gin-gonic/gin"
)

func (self *Server) onAddThirdParties(c *gin.Context) {
	var in request.ThirdParties
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = self.registry.AddThirdParties(c.Request.Context(), getCaller(c), in.ThirdParties)
	if err != nil {
		self.abort(c, err)
		return
	}

	LOG(c).WithField("num", len(in.ThirdParties)).Debug("Third parties added")
	c.Status(http.StatusNoContent)
}

func (self *Server) onUpdateThirdParties(c *gin.Context) {
	var in request.ThirdParties
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = self.registry.UpdateThirdParties(c.Request.Context(), getCaller(c), in.ThirdParties)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (self *Server) onBuyItemSlots(c *gin.Context) {
	var in request.BuyItemSlots
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = self.registry.BuyItemSlots(c.Request.Context(), getCaller(c), c.Param("id"), in.Qty, in.MaxPrice.Big())
	if err != nil {
		self.abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (self *Server) onQuoteItemSlots(c *gin.Context) {
	var in request.Quote
	err := c.ShouldBindQuery(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	_, err = self.registry.GetThirdParty(ctx, c.Param("id"))
	if err != nil {
		self.abort(c, err)
		return
	}

	price, err := self.registry.QuoteItemSlots(ctx, in.Qty)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, &response.Quote{
		ThirdPartyId: c.Param("id"),
		Qty:          in.Qty,
		Price:        model.NewBigInt(price),
	})
}

func (self *Server) onGetThirdParty(c *gin.Context) {
	ctx := c.Request.Context()
	thirdParty, err := self.registry.GetThirdParty(ctx, c.Param("id"))
	if err != nil {
		self.abort(c, err)
		return
	}

	rules, err := self.registry.ListRules(ctx, thirdParty.Id)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ThirdPartyToResponse(thirdParty, rules))
}

func (self *Server) onListThirdParties(c *gin.Context) {
	in, ok := self.page(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	thirdParties, err := self.registry.ListThirdParties(ctx, in.Offset, in.Limit)
	if err != nil {
		self.abort(c, err)
		return
	}

	total, err := self.registry.ThirdPartiesCount(ctx)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ThirdPartiesToResponse(thirdParties, total))
}

// Paging parameters, limit bounded by the configured page size
func (self *Server) page(c *gin.Context) (in request.Page, ok bool) {
	err := c.ShouldBindQuery(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}
	if in.Offset < 0 {
		in.Offset = 0
	}
	if in.Limit <= 0 || in.Limit > self.Config.Gateway.MaxPageSize {
		in.Limit = self.Config.Gateway.MaxPageSize
	}
	return in, true
}
