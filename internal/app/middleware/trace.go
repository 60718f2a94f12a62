package middleware

import (
	"loanservicing/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceHeader = "X-Trace-Id"

// AttachTraceID puts a trace id on every request context so the structured
// logs of one request can be stitched together. An inbound X-Trace-Id is
// honored, otherwise a fresh one is minted.
func AttachTraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))
		c.Writer.Header().Set(traceHeader, traceID)
		c.Next()
	}
}
