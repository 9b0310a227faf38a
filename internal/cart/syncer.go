package cart

import (
	"context"

	"github.com/ordering-next/internal/logger"
	"github.com/ordering-next/internal/upstream"
)

// Backend 同步所需的上游购物车接口
type Backend interface {
	AddCartItem(ctx context.Context, token string, m upstream.CartMutation) error
	RemoveCartItem(ctx context.Context, token string, m upstream.CartMutation) error
}

// Syncer 购物车同步适配器
// 策略：先乐观更新本地数量，再上报上游；上报失败时按本次实际
// 应用的增量做一次等量回滚。每次变更只拥有一个回滚动作，
// 失败重试属于新的变更，不会叠加补偿。
type Syncer struct {
	store   *Store
	backend Backend
}

// NewSyncer 创建同步适配器
func NewSyncer(store *Store, backend Backend) *Syncer {
	return &Syncer{store: store, backend: backend}
}

// Store 返回底层购物车
func (s *Syncer) Store() *Store {
	return s.store
}

// AddItem 乐观新增：本地加量，上游失败则回滚并返回错误
func (s *Syncer) AddItem(ctx context.Context, token string, userID uint, itemID string, delta int) (int, error) {
	if delta < 1 {
		delta = 1
	}
	epoch := s.store.Epoch()
	quantity := s.store.AddItem(itemID, delta)

	err := s.backend.AddCartItem(ctx, token, upstream.CartMutation{
		ItemID:   itemID,
		Quantity: delta,
		UserID:   userID,
	})
	if err != nil {
		if s.store.compensate(epoch, itemID, -delta) {
			logger.Warnw("cart_add_rolled_back", "item_id", itemID, "delta", delta, "error", err)
		} else {
			logger.Debugw("cart_add_rollback_skipped", "item_id", itemID, "reason", "cart cleared")
		}
		return s.store.Quantity(itemID), err
	}
	return quantity, nil
}

// RemoveItem 乐观移除：本地减量，上游失败则按实际减少量回补
// 数量本就为 0 时本地与上游都不动。
func (s *Syncer) RemoveItem(ctx context.Context, token string, userID uint, itemID string, delta int) (int, error) {
	if delta < 1 {
		delta = 1
	}
	epoch := s.store.Epoch()
	removed := s.store.RemoveItem(itemID, delta)
	if removed == 0 {
		return 0, nil
	}

	err := s.backend.RemoveCartItem(ctx, token, upstream.CartMutation{
		ItemID:   itemID,
		Quantity: removed,
		UserID:   userID,
	})
	if err != nil {
		if s.store.compensate(epoch, itemID, removed) {
			logger.Warnw("cart_remove_rolled_back", "item_id", itemID, "delta", removed, "error", err)
		} else {
			logger.Debugw("cart_remove_rollback_skipped", "item_id", itemID, "reason", "cart cleared")
		}
		return s.store.Quantity(itemID), err
	}
	return s.store.Quantity(itemID), nil
}
