package router

import (
	"github.com/slideboard-next/internal/config"
	adminhandlers "github.com/slideboard-next/internal/http/handlers/admin"
	internalhandlers "github.com/slideboard-next/internal/http/handlers/internalapi"
	"github.com/slideboard-next/internal/http/response"
	"github.com/slideboard-next/internal/logger"
	"github.com/slideboard-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	internalHandler := internalhandlers.New(c)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		{
			admin.GET("/commissions", adminHandler.ListCommissions)
			admin.GET("/commissions/:id", adminHandler.GetCommission)
			admin.GET("/commission-adjustments", adminHandler.ListCommissionAdjustments)
		}

		internal := apiV1.Group("/internal/commission")
		{
			internal.POST("/events", internalHandler.HandleOrderEvent)
			internal.POST("/refunds", internalHandler.HandleOrderRefund)
		}
	}

	return r
}
