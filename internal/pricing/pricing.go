package pricing

import (
	"github.com/ordering-next/internal/models"

	"github.com/shopspring/decimal"
)

// Lookup 目录查询函数，返回商品及其是否存在
type Lookup func(itemID string) (models.Item, bool)

// Compute 由购物车行、目录与折扣百分比计算结算快照
// 纯函数，每次读取重算，内部使用精确的十进制运算：
//   - 目录中不存在的行按 0 计入（目录刷新后残留的行不会使计价失败）
//   - 配送费仅在有效小计为 0 时免除
//   - 折扣金额不超过小计，总价不会为负
func Compute(lines []models.CartLine, lookup Lookup, discountPercent decimal.Decimal, deliveryFee models.Money) models.CartSnapshot {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		item, ok := lookup(line.ItemID)
		if !ok {
			continue
		}
		lineTotal := item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
	}

	fee := decimal.Zero
	if subtotal.GreaterThan(decimal.Zero) {
		fee = deliveryFee.Decimal
	}

	percent := discountPercent
	if percent.LessThan(decimal.Zero) {
		percent = decimal.Zero
	}
	discount := subtotal.Mul(percent).Div(decimal.NewFromInt(100))
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	total := subtotal.Sub(discount).Add(fee)

	return models.CartSnapshot{
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		DeliveryFee:    models.NewMoneyFromDecimal(fee),
		DiscountAmount: models.NewMoneyFromDecimal(discount),
		Total:          models.NewMoneyFromDecimal(total),
	}
}
