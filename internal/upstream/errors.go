package upstream

import "errors"

// 上游调用的统一错误分类，供各层用 errors.Is 判断
var (
	// ErrNetworkUnavailable 网络不可达或请求超时
	ErrNetworkUnavailable = errors.New("upstream network unavailable")
	// ErrUnauthorized 令牌缺失或无效
	ErrUnauthorized = errors.New("upstream unauthorized")
	// ErrValidationRejected 请求被上游校验拒绝（如无效优惠码）
	ErrValidationRejected = errors.New("upstream validation rejected")
	// ErrNotFound 上游不再识别该资源
	ErrNotFound = errors.New("upstream resource not found")
	// ErrUnexpectedStatus 其它非 2xx 状态
	ErrUnexpectedStatus = errors.New("upstream unexpected status")
)
