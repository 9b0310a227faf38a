package public

import (
	"github.com/ordering-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Logout 结束当前购物会话
// 清空购物车、重置优惠码；在途的同步结果此后一律按 no-op 处理。
func (h *Handler) Logout(c *gin.Context) {
	sess, ok := h.currentSession(c)
	if !ok {
		return
	}
	h.Sessions.Logout(sess.Token)
	response.SuccessWithMsg(c, "logged out", nil)
}
