package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/decentraland/thirdparty-registry/src/gateway/response"
	"github.com/decentraland/thirdparty-registry/src/registry"
	"github.com/decentraland/thirdparty-registry/src/token"
	. "github.com/decentraland/thirdparty-registry/src/utils/logger"

	"github.com/gin-gonic/gin"
)

// HTTP status and code describing err
func toStatus(err error) (status int, code string) {
	if registryErr, ok := registry.AsError(err); ok {
		code = registryErr.Code
		switch {
		case errors.Is(err, registry.ErrNotInitialized):
			status = http.StatusServiceUnavailable
		case registryErr.Kind == registry.KindAuthorization:
			status = http.StatusForbidden
		case registryErr.Kind == registry.KindNotFound:
			status = http.StatusNotFound
		case registryErr.Kind == registry.KindConflict,
			registryErr.Kind == registry.KindState:
			status = http.StatusConflict
		case registryErr.Kind == registry.KindExternal:
			status = http.StatusBadGateway
		default:
			status = http.StatusUnprocessableEntity
		}
		return
	}

	switch {
	case errors.Is(err, token.ErrInsufficientAllowance),
		errors.Is(err, token.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, "PAYMENT_FAILED"
	case errors.Is(err, token.ErrTransferFailed):
		return http.StatusBadGateway, "PAYMENT_FAILED"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// Responds with the error and logs it
func (self *Server) abort(c *gin.Context, err error) {
	status, code := toStatus(err)

	log := LOG(c).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		self.monitor.GetReport().Gateway.Errors.Internal.Inc()
		log.Error("Request failed")
	} else {
		log.Info("Request rejected")
	}

	c.AbortWithStatusJSON(status, &response.Error{Code: code, Message: err.Error()})
}

func (self *Server) badRequest(c *gin.Context, err error) {
	self.monitor.GetReport().Gateway.Errors.BadRequest.Inc()
	LOG(c).WithError(err).Info("Failed to parse request")
	c.AbortWithStatusJSON(http.StatusBadRequest, &response.Error{Code: "BAD_REQUEST", Message: err.Error()})
}
