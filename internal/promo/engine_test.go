package promo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ordering-next/internal/upstream"

	"github.com/shopspring/decimal"
)

type fakeValidator struct {
	mu      sync.Mutex
	results map[string]decimal.Decimal
	errs    map[string]error
	block   map[string]chan struct{}
}

func (f *fakeValidator) ValidatePromoCode(ctx context.Context, code string) (decimal.Decimal, error) {
	f.mu.Lock()
	ch := f.block[code]
	f.mu.Unlock()
	if ch != nil {
		<-ch
	}
	if err := f.errs[code]; err != nil {
		return decimal.Zero, err
	}
	return f.results[code], nil
}

func TestSubmitAcceptedCode(t *testing.T) {
	validator := &fakeValidator{
		results: map[string]decimal.Decimal{"SAVE10": decimal.NewFromInt(10)},
	}
	engine := NewEngine(validator)

	status := engine.Submit(context.Background(), "SAVE10")
	if status.State != StateApplied {
		t.Fatalf("expected applied, got %s", status.State)
	}
	if !engine.DiscountPercent().Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected discount 10, got %s", engine.DiscountPercent())
	}
}

func TestSubmitRejectedCodeLeavesDiscountZero(t *testing.T) {
	validator := &fakeValidator{
		errs: map[string]error{"BAD": upstream.ErrValidationRejected},
	}
	engine := NewEngine(validator)

	status := engine.Submit(context.Background(), "BAD")
	if status.State != StateRejected {
		t.Fatalf("expected rejected, got %s", status.State)
	}
	if status.Reason == "" {
		t.Fatalf("expected human-readable reason")
	}
	if !engine.DiscountPercent().IsZero() {
		t.Fatalf("expected zero discount, got %s", engine.DiscountPercent())
	}
}

func TestNetworkFailureRejects(t *testing.T) {
	validator := &fakeValidator{
		errs: map[string]error{"SAVE10": upstream.ErrNetworkUnavailable},
	}
	engine := NewEngine(validator)

	status := engine.Submit(context.Background(), "SAVE10")
	if status.State != StateRejected {
		t.Fatalf("expected rejected on network failure, got %s", status.State)
	}
	if !engine.DiscountPercent().IsZero() {
		t.Fatalf("expected zero discount, got %s", engine.DiscountPercent())
	}
}

func TestResubmitReplacesPriorDiscount(t *testing.T) {
	validator := &fakeValidator{
		results: map[string]decimal.Decimal{"SAVE10": decimal.NewFromInt(10)},
		errs:    map[string]error{"BAD": upstream.ErrValidationRejected},
	}
	engine := NewEngine(validator)

	engine.Submit(context.Background(), "SAVE10")
	engine.Submit(context.Background(), "BAD")

	if engine.Status().State != StateRejected {
		t.Fatalf("expected rejected after resubmit, got %s", engine.Status().State)
	}
	if !engine.DiscountPercent().IsZero() {
		t.Fatalf("expected stale discount replaced by 0, got %s", engine.DiscountPercent())
	}
}

func TestNewSubmitSupersedesPending(t *testing.T) {
	release := make(chan struct{})
	validator := &fakeValidator{
		results: map[string]decimal.Decimal{
			"SLOW": decimal.NewFromInt(50),
			"FAST": decimal.NewFromInt(10),
		},
		block: map[string]chan struct{}{"SLOW": release},
	}
	engine := NewEngine(validator)

	done := make(chan Status, 1)
	go func() {
		done <- engine.Submit(context.Background(), "SLOW")
	}()

	// 等第一个提交进入 Validating 后再提交第二个
	for engine.Status().State != StateValidating {
		time.Sleep(time.Millisecond)
	}
	engine.Submit(context.Background(), "FAST")
	close(release)
	<-done

	status := engine.Status()
	if status.State != StateApplied || status.Code != "FAST" {
		t.Fatalf("expected latest code applied, got %+v", status)
	}
	if !engine.DiscountPercent().Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected discount of latest code, got %s", engine.DiscountPercent())
	}
}

func TestResetClearsState(t *testing.T) {
	validator := &fakeValidator{
		results: map[string]decimal.Decimal{"SAVE10": decimal.NewFromInt(10)},
	}
	engine := NewEngine(validator)
	engine.Submit(context.Background(), "SAVE10")

	engine.Reset()

	status := engine.Status()
	if status.State != StateIdle || status.Code != "" {
		t.Fatalf("expected idle after reset, got %+v", status)
	}
	if !engine.DiscountPercent().IsZero() {
		t.Fatalf("expected zero discount after reset, got %s", engine.DiscountPercent())
	}
}
