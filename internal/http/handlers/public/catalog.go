package public

import (
	"github.com/ordering-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCatalogItems 获取商品目录
func (h *Handler) GetCatalogItems(c *gin.Context) {
	items := h.Catalog.Items()
	response.Success(c, gin.H{
		"items":    items,
		"currency": h.Config.Pricing.Currency,
	})
}
