package gateway

import (
	"net/http"

	"github.com/decentraland/thirdparty-registry/src/gateway/request"
	"github.com/decentraland/thirdparty-registry/src/gateway/response"
	. "github.com/decentraland/thirdparty-registry/src/utils/logger"

	"github.com/gin-gonic/gin"
)

func (self *Server) onAddItems(c *gin.Context) {
	var in request.Items
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = self.registry.AddItems(c.Request.Context(), getCaller(c), c.Param("id"), in.Items)
	if err != nil {
		self.abort(c, err)
		return
	}

	LOG(c).WithField("num", len(in.Items)).Debug("Items added")
	c.Status(http.StatusNoContent)
}

func (self *Server) onUpdateItems(c *gin.Context) {
	var in request.Items
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = self.registry.UpdateItems(c.Request.Context(), getCaller(c), c.Param("id"), in.Items)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (self *Server) onGetItem(c *gin.Context) {
	item, err := self.registry.GetItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (self *Server) onListItems(c *gin.Context) {
	in, ok := self.page(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	items, err := self.registry.ListItems(ctx, c.Param("id"), in.Offset, in.Limit)
	if err != nil {
		self.abort(c, err)
		return
	}

	total, err := self.registry.ItemsCount(ctx, c.Param("id"))
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, &response.Items{Items: items, Total: total})
}
