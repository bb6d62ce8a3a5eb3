package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joy095/shareit/logger"
	"github.com/joy095/shareit/utils"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// GinLogger tags each request with an ID (reusing an incoming X-Request-ID)
// and logs one line per request once the handler chain has finished.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if userID, err := utils.GetUserIDFromContext(c); err == nil {
			fields["user_id"] = userID
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.ErrorLogger.WithFields(fields).Error("Request failed")
		case status >= 400:
			logger.WarnLogger.WithFields(fields).Warn("Request rejected")
		default:
			logger.InfoLogger.WithFields(fields).Info("Request handled")
		}
	}
}
