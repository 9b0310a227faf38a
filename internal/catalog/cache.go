package catalog

import (
	"context"
	"sync"

	"github.com/ordering-next/internal/models"
)

// Source 目录数据来源
type Source interface {
	FetchItems(ctx context.Context) ([]models.Item, error)
}

// Cache 商品目录缓存
// 从购物车的视角只读；重载时整体替换，不做增量合并。
type Cache struct {
	mu    sync.RWMutex
	items map[string]models.Item
	order []string
}

// NewCache 创建空目录缓存
func NewCache() *Cache {
	return &Cache{items: make(map[string]models.Item)}
}

// Reload 从来源拉取并整体替换目录
// 拉取失败时保留原有快照。
func (c *Cache) Reload(ctx context.Context, source Source) error {
	items, err := source.FetchItems(ctx)
	if err != nil {
		return err
	}
	c.Replace(items)
	return nil
}

// Replace 整体替换目录内容
func (c *Cache) Replace(items []models.Item) {
	next := make(map[string]models.Item, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if _, exists := next[item.ID]; !exists {
			order = append(order, item.ID)
		}
		next[item.ID] = item
	}

	c.mu.Lock()
	c.items = next
	c.order = order
	c.mu.Unlock()
}

// Get 按 ID 查询商品
func (c *Cache) Get(itemID string) (models.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[itemID]
	return item, ok
}

// Items 返回目录全量快照（按加载顺序）
func (c *Cache) Items() []models.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]models.Item, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id])
	}
	return items
}

// Len 返回目录条目数
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
