package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionKey    = "sessionId"
	sessionHeader = "X-Session-ID"
)

// SessionMiddleware tạo sessionId nếu chưa có và gán vào context
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionId := c.GetHeader(sessionHeader)
		if _, err := uuid.Parse(sessionId); err != nil {
			sessionId = uuid.NewString()
		}

		c.Set(sessionKey, sessionId)
		c.Writer.Header().Set(sessionHeader, sessionId)

		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
