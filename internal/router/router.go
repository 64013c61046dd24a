package router

import (
	"fmt"
	"strings"

	"github.com/solemart/solemart/internal/cache"
	"github.com/solemart/solemart/internal/config"
	adminhandlers "github.com/solemart/solemart/internal/http/handlers/admin"
	publichandlers "github.com/solemart/solemart/internal/http/handlers/public"
	"github.com/solemart/solemart/internal/logger"
	"github.com/solemart/solemart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sm"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.CheckoutRateLimit.BlockSeconds,
		MessageKey:    "error.order_too_many",
	}

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
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/products/:id/reviews", publicHandler.GetProductReviews)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/flash-sales", publicHandler.GetFlashSales)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/orders", RateLimitMiddleware(redisClient, checkoutRule, KeyByUserID), publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			user.POST("/reviews", publicHandler.CreateReview)
		}

		// 管理员接口（需鉴权）
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
		{
			// 商品管理
			admin.GET("/products", adminHandler.AdminListProducts)
			admin.POST("/products", adminHandler.AdminCreateProduct)
			admin.PUT("/products/:id", adminHandler.AdminUpdateProduct)
			admin.DELETE("/products/:id", adminHandler.AdminDeleteProduct)
			admin.PUT("/products/:id/sizes", adminHandler.AdminUpsertProductSize)

			// 分类管理
			admin.GET("/categories", adminHandler.AdminListCategories)
			admin.POST("/categories", adminHandler.AdminCreateCategory)
			admin.PUT("/categories/:id", adminHandler.AdminUpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.AdminDeleteCategory)

			// 限时抢购管理
			admin.GET("/flash-sales", adminHandler.AdminListFlashSales)
			admin.GET("/flash-sales/:id", adminHandler.AdminGetFlashSale)
			admin.POST("/flash-sales", adminHandler.AdminCreateFlashSale)
			admin.PUT("/flash-sales/:id", adminHandler.AdminUpdateFlashSale)
			admin.DELETE("/flash-sales/:id", adminHandler.AdminDeleteFlashSale)

			// 订单管理
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
			admin.GET("/orders/:id/payment", adminHandler.AdminGetOrderPayment)
			admin.GET("/orders/:id/shipping", adminHandler.AdminGetOrderShipping)

			// 支付与物流
			admin.POST("/payments", adminHandler.AdminCreatePayment)
			admin.PATCH("/payments/:id/status", adminHandler.AdminUpdatePaymentStatus)
			admin.POST("/shippings", adminHandler.AdminCreateShipping)
			admin.PUT("/shippings/:id", adminHandler.AdminUpdateShippingTracking)
			admin.PUT("/shippings/:id/delivered", adminHandler.AdminMarkShippingDelivered)

			// 评价管理
			admin.GET("/reviews", adminHandler.AdminListReviews)
			admin.PATCH("/reviews/:id/visibility", adminHandler.AdminSetReviewVisibility)
			admin.DELETE("/reviews/:id", adminHandler.AdminDeleteReview)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
