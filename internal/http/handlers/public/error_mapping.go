package public

import (
	"errors"

	"github.com/ordering-next/internal/http/response"
	"github.com/ordering-next/internal/logger"
	"github.com/ordering-next/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLog 提供携带 request_id 的日志实例。
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondError 返回错误响应，并在有原始错误时记录日志。
func respondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// respondUpstreamError 按上游错误分类返回错误响应
// 任何失败都有可读的提示，且不终结会话本身。
func respondUpstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		respondError(c, response.CodeUnauthorized, "session is not authorized, please log in again", err)
	case errors.Is(err, upstream.ErrNotFound):
		respondError(c, response.CodeNotFound, "item is no longer available", err)
	case errors.Is(err, upstream.ErrValidationRejected):
		respondError(c, response.CodeBadRequest, "request was rejected by the ordering service", err)
	case errors.Is(err, upstream.ErrNetworkUnavailable):
		respondError(c, response.CodeUpstream, "ordering service is unreachable, please try again", err)
	default:
		respondError(c, response.CodeInternal, "unexpected error, please try again", err)
	}
}
