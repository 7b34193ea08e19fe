package middleware

import (
	"context"
	"net/http"
	"strings"

	"hotelbooking/constants"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"

	"github.com/gin-gonic/gin"
)

const (
	userKey     = "currentUser"
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// Authenticator resolves a session token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// tokenFromRequest đọc token từ cookie auth_token, sau đó tới header Authorization
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// AuthMiddleware xử lý authentication
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.CodeOf(err) == errors.ErrCodeUnauthorized {
				response.Unauthorized(c)
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}

		role := constants.RoleUser
		if user.IsAdmin {
			role = constants.RoleAdmin
		}
		// Lưu thông tin user vào context
		c.Set(userKey, user)
		c.Set(userIDKey, user.ID)
		c.Set(userRoleKey, role)
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !user.IsAdmin {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// Requester trả về người gọi hiện tại; zero value nếu chưa đăng nhập
func Requester(c *gin.Context) services.Requester {
	user := CurrentUser(c)
	if user == nil {
		return services.Requester{}
	}
	return services.Requester{UserID: user.ID, IsAdmin: user.IsAdmin}
}

// ErrorHandler logs every error attached to a request that ended in a 5xx.
// The response body has already been written by response.Error.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Status() < http.StatusInternalServerError {
			return
		}
		sessionID, _ := c.Get(sessionKey)
		for _, e := range c.Errors {
			log.WithField("session", sessionID).
				Error("%s %s -> %d: %v", c.Request.Method, c.FullPath(), c.Writer.Status(), e.Err)
		}
	}
}
