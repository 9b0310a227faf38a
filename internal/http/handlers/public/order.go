package public

import (
	"sort"

	"github.com/ordering-next/internal/http/response"
	"github.com/ordering-next/internal/upstream"

	"github.com/gin-gonic/gin"
)

// Checkout 以当前结算快照向上游下单
// 下单成功后清空购物车并重置优惠码。
func (h *Handler) Checkout(c *gin.Context) {
	sess, ok := h.currentSession(c)
	if !ok {
		return
	}

	snapshot := h.snapshot(sess)
	if snapshot.Subtotal.Decimal.IsZero() {
		respondError(c, response.CodeBadRequest, "cart is empty", nil)
		return
	}

	lines := sess.Cart.Store().Lines()
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })
	orderLines := make([]upstream.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, upstream.OrderLine{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	promoStatus := sess.Promo.Status()
	order := upstream.OrderRequest{
		UserID:      sess.UserID,
		Lines:       orderLines,
		Subtotal:    snapshot.Subtotal,
		DeliveryFee: snapshot.DeliveryFee,
		Discount:    snapshot.DiscountAmount,
		Total:       snapshot.Total,
	}
	if !promoStatus.DiscountPercent.IsZero() {
		order.PromoCode = promoStatus.Code
	}

	if err := h.Upstream.CreateOrder(c.Request.Context(), sess.Token, order); err != nil {
		respondUpstreamError(c, err)
		return
	}

	sess.Cart.Store().Clear()
	sess.Promo.Reset()

	response.SuccessWithMsg(c, "order placed", gin.H{
		"summary": snapshot,
	})
}
