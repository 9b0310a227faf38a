package models

// CartLine 购物车行（商品 + 期望数量，数量恒 >= 0）
type CartLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CartSnapshot 购物车结算快照（每次读取重新计算，从不持久化）
type CartSnapshot struct {
	Subtotal       Money `json:"subtotal"`
	DeliveryFee    Money `json:"delivery_fee"`
	DiscountAmount Money `json:"discount_amount"`
	Total          Money `json:"total"`
}
