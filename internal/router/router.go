package router

import (
	"github.com/ordering-next/internal/config"
	publichandlers "github.com/ordering-next/internal/http/handlers/public"
	"github.com/ordering-next/internal/http/response"
	"github.com/ordering-next/internal/logger"
	"github.com/ordering-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/catalog/items", publicHandler.GetCatalogItems)
		}

		// 购物会话接口（需鉴权）
		user := apiV1.Group("")
		user.Use(SessionAuthMiddleware(cfg.Session.JWTSecret))
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.DELETE("/cart/items/:item_id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/promocode", publicHandler.ApplyPromo)
			user.POST("/checkout", publicHandler.Checkout)
			user.POST("/logout", publicHandler.Logout)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, response.CodeNotFound, "route not found")
	})

	return r
}
