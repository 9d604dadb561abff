package logger

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Key of the request scoped logger in gin.Context
const ContextKeyLog = "log"

// Request scoped logger set by the gateway
func LOG(c *gin.Context) *logrus.Entry {
	v, ok := c.Get(ContextKeyLog)
	if ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return NewSublogger("gateway")
}
