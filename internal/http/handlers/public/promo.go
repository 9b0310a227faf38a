package public

import (
	"github.com/ordering-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PromoRequest 优惠码提交请求
type PromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyPromo 提交优惠码并返回状态机结果
// 校验被拒不是传输错误：结果以状态形式返回，折扣保持为 0。
func (h *Handler) ApplyPromo(c *gin.Context) {
	sess, ok := h.currentSession(c)
	if !ok {
		return
	}
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid promo request", err)
		return
	}

	status := sess.Promo.Submit(c.Request.Context(), req.Code)

	response.Success(c, gin.H{
		"promo":   status,
		"summary": h.snapshot(sess),
	})
}
