package gateway

import (
	"context"
	"net/http"

	"github.com/decentraland/thirdparty-registry/src/gateway/response"
	. "github.com/decentraland/thirdparty-registry/src/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"
	"golang.org/x/time/rate"
)

const HeaderRequestId = "X-Request-Id"

// Tags the request and its logs with a unique id
func (self *Server) requestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := xid.New().String()
		c.Header(HeaderRequestId, id)
		c.Set(ContextKeyLog, self.Log.
			WithField("request_id", id).
			WithField("method", c.Request.Method).
			WithField("path", c.FullPath()))

		c.Next()

		self.monitor.GetReport().Gateway.State.RequestsServed.Inc()
		LOG(c).WithField("status", c.Writer.Status()).Trace("Request served")
	}
}

func (self *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		v, ok := self.limiters.Get(ip)
		if !ok {
			limiter := rate.NewLimiter(rate.Limit(self.Config.Gateway.RateLimit), self.Config.Gateway.RateLimitBurst)
			if self.limiters.Add(ip, limiter, cache.DefaultExpiration) != nil {
				// Added by a concurrent request
				v, _ = self.limiters.Get(ip)
			} else {
				v = limiter
			}
		}

		limiter, ok := v.(*rate.Limiter)
		if ok && !limiter.Allow() {
			self.monitor.GetReport().Gateway.Errors.RateLimited.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, &response.Error{
				Code:    "RATE_LIMITED",
				Message: "too many requests",
			})
			return
		}

		c.Next()
	}
}

// Bounds the time the handlers may spend on a request
func (self *Server) timeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), self.Config.Gateway.ServerRequestTimeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
