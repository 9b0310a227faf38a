package provider

import (
	"github.com/ordering-next/internal/catalog"
	"github.com/ordering-next/internal/config"
	"github.com/ordering-next/internal/logger"
	"github.com/ordering-next/internal/models"
	"github.com/ordering-next/internal/session"
	"github.com/ordering-next/internal/upstream"

	"github.com/shopspring/decimal"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	Upstream    *upstream.Client
	Catalog     *catalog.Cache
	Sessions    *session.Manager
	DeliveryFee models.Money
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout())

	fee, err := models.NewMoneyFromString(cfg.Pricing.DeliveryFee)
	if err != nil {
		logger.Warnw("pricing_delivery_fee_invalid", "value", cfg.Pricing.DeliveryFee, "error", err)
		fee = models.NewMoneyFromDecimal(decimal.NewFromInt(2))
	}

	return &Container{
		Config:      cfg,
		Upstream:    client,
		Catalog:     catalog.NewCache(),
		Sessions:    session.NewManager(client),
		DeliveryFee: fee,
	}
}
