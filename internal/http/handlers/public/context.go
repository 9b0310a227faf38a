package public

import (
	"github.com/ordering-next/internal/http/response"
	"github.com/ordering-next/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	sessionTokenContextKey = "session_token"
	userIDContextKey       = "user_id"
)

// currentSession 取出鉴权中间件写入的会话，缺失时直接响应 401
func (h *Handler) currentSession(c *gin.Context) (*session.Session, bool) {
	token, ok := c.Get(sessionTokenContextKey)
	if !ok {
		response.Unauthorized(c, "session token missing")
		return nil, false
	}
	tokenString, ok := token.(string)
	if !ok || tokenString == "" {
		response.Unauthorized(c, "session token invalid")
		return nil, false
	}
	userID := uint(0)
	if value, exists := c.Get(userIDContextKey); exists {
		if id, valid := value.(uint); valid {
			userID = id
		}
	}
	if userID == 0 {
		response.Unauthorized(c, "session token invalid")
		return nil, false
	}
	return h.Sessions.Get(tokenString, userID), true
}
