package promo

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ordering-next/internal/logger"
	"github.com/ordering-next/internal/upstream"

	"github.com/shopspring/decimal"
)

// State 优惠码引擎状态
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateApplied    State = "applied"
	StateRejected   State = "rejected"
)

// Validator 优惠码校验所需的上游接口
type Validator interface {
	ValidatePromoCode(ctx context.Context, code string) (decimal.Decimal, error)
}

// Status 引擎对外快照
type Status struct {
	State           State           `json:"state"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Reason          string          `json:"reason,omitempty"`
}

// Engine 优惠码引擎
// 状态机：Idle -> Validating -> Applied | Rejected。
// 同一时刻只有一个生效的优惠码；新的提交取代（而非排队等待）
// 仍在途的校验，校验期间不保留旧折扣。
type Engine struct {
	mu      sync.Mutex
	backend Validator

	state   State
	code    string
	percent decimal.Decimal
	reason  string
	seq     uint64
}

// NewEngine 创建优惠码引擎
func NewEngine(backend Validator) *Engine {
	return &Engine{backend: backend, state: StateIdle}
}

// Submit 提交优惠码并等待校验结果
// 若等待期间出现更新的提交，本次结果直接丢弃。
func (e *Engine) Submit(ctx context.Context, code string) Status {
	code = strings.TrimSpace(code)

	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.state = StateValidating
	e.code = code
	e.percent = decimal.Zero
	e.reason = ""
	e.mu.Unlock()

	percent, err := e.backend.ValidatePromoCode(ctx, code)

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.seq {
		logger.Debugw("promo_result_superseded", "code", code)
		return e.statusLocked()
	}
	if err != nil {
		e.state = StateRejected
		e.percent = decimal.Zero
		e.reason = rejectionReason(err)
		logger.Infow("promo_rejected", "code", code, "reason", e.reason)
		return e.statusLocked()
	}
	e.state = StateApplied
	e.percent = percent
	e.reason = ""
	logger.Infow("promo_applied", "code", code, "discount_percent", percent.String())
	return e.statusLocked()
}

// Status 返回当前状态快照
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked()
}

// DiscountPercent 返回当前生效的折扣百分比（未生效时为 0）
func (e *Engine) DiscountPercent() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateApplied {
		return decimal.Zero
	}
	return e.percent
}

// Reset 重置状态机（登出时调用），并使在途校验失效
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	e.state = StateIdle
	e.code = ""
	e.percent = decimal.Zero
	e.reason = ""
}

func (e *Engine) statusLocked() Status {
	return Status{
		State:           e.state,
		Code:            e.code,
		DiscountPercent: e.percent,
		Reason:          e.reason,
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, upstream.ErrNetworkUnavailable):
		return "promo validation unavailable, please try again"
	case errors.Is(err, upstream.ErrValidationRejected):
		msg := err.Error()
		if idx := strings.Index(msg, ": "); idx >= 0 {
			return msg[idx+2:]
		}
		return "promo code rejected"
	default:
		return "promo code could not be validated"
	}
}
