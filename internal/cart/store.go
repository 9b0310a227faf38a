package cart

import (
	"sync"

	"github.com/ordering-next/internal/models"
)

// Store 会话内购物车（商品 ID -> 期望数量）
// 数量恒 >= 0；数量降为 0 的行直接删除，读取时视为不在购物车中。
// 同一购物车上的变更由内部互斥锁串行化。
type Store struct {
	mu    sync.Mutex
	lines map[string]int
	epoch uint64
}

// NewStore 创建空购物车
func NewStore() *Store {
	return &Store{lines: make(map[string]int)}
}

// AddItem 增加商品数量并返回新数量
// delta 小于 1 时按 1 处理；未知商品 ID 照常接受，目录校验交给上游。
func (s *Store) AddItem(itemID string, delta int) int {
	if delta < 1 {
		delta = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[itemID] += delta
	return s.lines[itemID]
}

// RemoveItem 减少商品数量（最低到 0），返回实际减少的数量
func (s *Store) RemoveItem(itemID string, delta int) int {
	if delta < 1 {
		delta = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.lines[itemID]
	if current == 0 {
		return 0
	}
	removed := delta
	if removed > current {
		removed = current
	}
	next := current - removed
	if next == 0 {
		delete(s.lines, itemID)
	} else {
		s.lines[itemID] = next
	}
	return removed
}

// Quantity 返回商品当前数量，不存在时为 0
func (s *Store) Quantity(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines[itemID]
}

// Clear 清空购物车（登出或手动清空时调用）
// 同时递增 epoch，使仍在途的同步补偿失效。
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[string]int)
	s.epoch++
}

// Epoch 返回当前代次
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Lines 返回数量大于 0 的行快照
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]models.CartLine, 0, len(s.lines))
	for itemID, quantity := range s.lines {
		if quantity <= 0 {
			continue
		}
		lines = append(lines, models.CartLine{ItemID: itemID, Quantity: quantity})
	}
	return lines
}

// compensate 按给定增量回补数量，仅在 epoch 未变时生效
// 购物车被清空后，迟到的补偿必须是 no-op。
func (s *Store) compensate(epoch uint64, itemID string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return false
	}
	next := s.lines[itemID] + delta
	if next <= 0 {
		delete(s.lines, itemID)
		return true
	}
	s.lines[itemID] = next
	return true
}
