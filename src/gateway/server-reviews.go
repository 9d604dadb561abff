package gateway

import (
	"net/http"

	"github.com/decentraland/thirdparty-registry/src/gateway/request"
	. "github.com/decentraland/thirdparty-registry/src/utils/logger"

	"github.com/gin-gonic/gin"
)

func (self *Server) onReviewThirdParties(c *gin.Context) {
	var in request.ReviewThirdParties
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = self.registry.ReviewThirdParties(c.Request.Context(), getCaller(c), in.ThirdParties)
	if err != nil {
		self.abort(c, err)
		return
	}

	LOG(c).WithField("num", len(in.ThirdParties)).Debug("Third parties reviewed")
	c.Status(http.StatusNoContent)
}

func (self *Server) onReviewThirdPartyWithRoot(c *gin.Context) {
	var in request.ReviewThirdPartyWithRoot
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = self.registry.ReviewThirdPartyWithRoot(c.Request.Context(), getCaller(c), c.Param("id"), in.Root, in.Authorizations)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (self *Server) onConsumeSlots(c *gin.Context) {
	var in request.ConsumeSlots
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = self.registry.ConsumeSlots(c.Request.Context(), getCaller(c), c.Param("id"), in.Authorizations)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (self *Server) onSetRules(c *gin.Context) {
	var in request.SetRules
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = self.registry.SetRules(c.Request.Context(), getCaller(c), c.Param("id"), in.Names, in.Values)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
