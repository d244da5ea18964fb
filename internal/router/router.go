package router

import (
	"fmt"

	"github.com/parceldesk/internal/cache"
	"github.com/parceldesk/internal/config"
	consolehandlers "github.com/parceldesk/internal/http/handlers/console"
	publichandlers "github.com/parceldesk/internal/http/handlers/public"
	"github.com/parceldesk/internal/logger"
	"github.com/parceldesk/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按公开/控制台分组）
	publicHandler := publichandlers.New(c)
	consoleHandler := consolehandlers.New(c)
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", cache.Prefix()),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, try again in %d seconds",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 承运商 webhook：签名校验在 handler 内完成，响应体形状是对外契约
		webhooks := apiV1.Group("/webhooks")
		{
			webhooks.POST("/ship24", publicHandler.Ship24Webhook)
			webhooks.GET("/ship24", publicHandler.Ship24WebhookHealth)
			webhooks.HEAD("/ship24", publicHandler.Ship24WebhookHead)
			webhooks.OPTIONS("/ship24", publicHandler.Ship24WebhookOptions)
		}

		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login",
				RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")),
				publicHandler.Login,
			)
		}

		// 控制台接口（需要登录）
		console := apiV1.Group("/console")
		console.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			console.GET("/purchases", consoleHandler.ListPurchases)
			console.GET("/purchases/:id", consoleHandler.GetPurchase)
			console.POST("/purchases", consoleHandler.CreatePurchase)
			console.PUT("/purchases/:id", consoleHandler.UpdatePurchase)
			console.DELETE("/purchases/:id", consoleHandler.DeletePurchase)

			console.GET("/shipments", consoleHandler.ListShipments)
			console.GET("/shipments/:id", consoleHandler.GetShipment)
			console.POST("/shipments", consoleHandler.CreateShipment)
			console.PUT("/shipments/:id", consoleHandler.UpdateShipment)
			console.PUT("/shipments/:id/status", consoleHandler.UpdateShipmentStatus)
			console.DELETE("/shipments/:id", consoleHandler.DeleteShipment)

			console.GET("/refunds", consoleHandler.ListRefunds)
			console.GET("/refunds/:id", consoleHandler.GetRefund)
			console.POST("/refunds", consoleHandler.CreateRefund)
			console.PUT("/refunds/:id", consoleHandler.UpdateRefund)
			console.DELETE("/refunds/:id", consoleHandler.DeleteRefund)

			console.GET("/claims", consoleHandler.ListClaims)
			console.GET("/claims/:id", consoleHandler.GetClaim)
			console.POST("/claims", consoleHandler.CreateClaim)
			console.PUT("/claims/:id", consoleHandler.UpdateClaim)
			console.DELETE("/claims/:id", consoleHandler.DeleteClaim)

			console.GET("/dashboard/stats", consoleHandler.GetDashboardStats)

			console.GET("/settings", consoleHandler.GetSettings)
			console.PUT("/settings", consoleHandler.UpdateSettings)

			console.POST("/notify", consoleHandler.SendNotification)
			console.POST("/track", consoleHandler.RegisterTracker)
		}
	}

	return r
}
