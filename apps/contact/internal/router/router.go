package router

import (
	"ContactServer/apps/contact/internal/handler"
	"ContactServer/apps/contact/internal/middleware"
	"ContactServer/config"
	"ContactServer/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitRouter 初始化路由
// 处理器通过参数注入，路由层不持有任何业务状态
func InitRouter(cfg config.ServerConfig, authHandler *handler.AuthHandler, contactHandler *handler.ContactHandler) *gin.Engine {
	r := gin.New()

	// 恢复中间件
	r.Use(middleware.GinRecovery(true))

	// 追踪中间件 (生成 trace_id)
	r.Use(util.TraceLogger())

	// 客户端 IP 中间件
	r.Use(middleware.ClientIPMiddleware())

	// 日志中间件
	r.Use(middleware.GinLogger())

	// Prometheus 监控中间件
	r.Use(middleware.PrometheusMiddleware())

	// 跨域中间件
	r.Use(middleware.CorsMiddleware())

	// IP 限流中间件
	r.Use(middleware.IPRateLimitMiddleware())

	// 请求超时中间件
	r.Use(middleware.TimeoutMiddleware(cfg.RequestTimeout))

	// 健康检查（无需认证）
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Prometheus 指标暴露接口
	// Prometheus 会定时访问这个接口来拉取监控数据
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 公开接口（不需要认证）
		public := api.Group("/public")
		{
			user := public.Group("/user")
			{
				user.POST("/register", authHandler.Register)
				user.POST("/login", authHandler.Login)
			}
		}

		// 需要认证的接口
		auth := api.Group("/auth")
		auth.Use(middleware.JWTAuthMiddleware())
		{
			contacts := auth.Group("/contacts")
			{
				contacts.GET("", contactHandler.List)
				contacts.POST("", contactHandler.Create)
				contacts.GET("/:id", contactHandler.Get)
				contacts.DELETE("/:id", contactHandler.Delete)
			}
		}
	}

	return r
}
