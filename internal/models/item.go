package models

// Item 商品条目（目录由上游后端下发，加载后只读）
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unit_price"`
	Category  string `json:"category"`
	PhotoRef  string `json:"photo_ref"`
}
