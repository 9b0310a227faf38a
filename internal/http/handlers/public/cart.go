package public

import (
	"sort"
	"strconv"

	"github.com/ordering-next/internal/http/response"
	"github.com/ordering-next/internal/models"
	"github.com/ordering-next/internal/pricing"
	"github.com/ordering-next/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CartMutationRequest 购物车变更请求
type CartMutationRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// CartLineResponse 购物车行响应
type CartLineResponse struct {
	ItemID    string       `json:"item_id"`
	Name      string       `json:"name"`
	UnitPrice models.Money `json:"unit_price"`
	PhotoRef  string       `json:"photo_ref"`
	Quantity  int          `json:"quantity"`
	LineTotal models.Money `json:"line_total"`
	InCatalog bool         `json:"in_catalog"`
}

// snapshot 计算当前会话的结算快照
func (h *Handler) snapshot(sess *session.Session) models.CartSnapshot {
	return pricing.Compute(
		sess.Cart.Store().Lines(),
		h.Catalog.Get,
		sess.Promo.DiscountPercent(),
		h.DeliveryFee,
	)
}

// GetCart 获取购物车与结算快照
func (h *Handler) GetCart(c *gin.Context) {
	sess, ok := h.currentSession(c)
	if !ok {
		return
	}

	lines := sess.Cart.Store().Lines()
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })

	respLines := make([]CartLineResponse, 0, len(lines))
	for _, line := range lines {
		resp := CartLineResponse{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		}
		if item, found := h.Catalog.Get(line.ItemID); found {
			resp.Name = item.Name
			resp.UnitPrice = item.UnitPrice
			resp.PhotoRef = item.PhotoRef
			resp.LineTotal = models.NewMoneyFromDecimal(
				item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
			resp.InCatalog = true
		}
		respLines = append(respLines, resp)
	}

	response.Success(c, gin.H{
		"lines":   respLines,
		"summary": h.snapshot(sess),
		"promo":   sess.Promo.Status(),
	})
}

// AddCartItem 乐观添加购物车项
func (h *Handler) AddCartItem(c *gin.Context) {
	sess, ok := h.currentSession(c)
	if !ok {
		return
	}
	var req CartMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart request", err)
		return
	}

	quantity, err := sess.Cart.AddItem(c.Request.Context(), sess.Token, sess.UserID, req.ItemID, req.Quantity)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	response.Success(c, gin.H{
		"item_id":  req.ItemID,
		"quantity": quantity,
		"summary":  h.snapshot(sess),
	})
}

// RemoveCartItem 乐观移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	sess, ok := h.currentSession(c)
	if !ok {
		return
	}
	itemID := c.Param("item_id")
	if itemID == "" {
		respondError(c, response.CodeBadRequest, "invalid cart request", nil)
		return
	}
	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(c, response.CodeBadRequest, "invalid quantity", err)
			return
		}
		quantity = parsed
	}

	remaining, err := sess.Cart.RemoveItem(c.Request.Context(), sess.Token, sess.UserID, itemID, quantity)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	response.Success(c, gin.H{
		"item_id":  itemID,
		"quantity": remaining,
		"summary":  h.snapshot(sess),
	})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sess, ok := h.currentSession(c)
	if !ok {
		return
	}
	sess.Cart.Store().Clear()
	response.Success(c, gin.H{
		"cleared": true,
		"summary": h.snapshot(sess),
	})
}
