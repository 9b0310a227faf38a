package catalog

import (
	"context"
	"time"

	"github.com/ordering-next/internal/logger"
)

// Refresher 目录后台刷新服务
// 启动时加载一次，之后按固定间隔整体刷新；单次失败只记日志，
// 继续使用上一份快照。
type Refresher struct {
	cache    *Cache
	source   Source
	interval time.Duration
}

// NewRefresher 创建目录刷新服务
func NewRefresher(cache *Cache, source Source, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Refresher{cache: cache, source: source, interval: interval}
}

// Name 服务名称
func (r *Refresher) Name() string {
	return "catalog-refresher"
}

// Start 启动刷新循环，直到上下文取消
func (r *Refresher) Start(ctx context.Context) error {
	if err := r.cache.Reload(ctx, r.source); err != nil {
		logger.Warnw("catalog_initial_load_failed", "error", err)
	} else {
		logger.Infow("catalog_loaded", "items", r.cache.Len())
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.cache.Reload(ctx, r.source); err != nil {
				logger.Warnw("catalog_refresh_failed", "error", err)
				continue
			}
			logger.Debugw("catalog_refreshed", "items", r.cache.Len())
		}
	}
}

// Stop 停止服务（刷新循环随上下文取消退出）
func (r *Refresher) Stop(ctx context.Context) error {
	return nil
}
